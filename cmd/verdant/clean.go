package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verdant/internal/driver"
)

func newCleanCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the trees stored by --disk-cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			disk, err := driver.OpenDiskCache("verdant")
			if err != nil {
				return fmt.Errorf("failed to open disk cache: %w", err)
			}
			if err := disk.DropAll(); err != nil {
				return fmt.Errorf("failed to clear disk cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "disk cache cleared")
			return nil
		},
	}
}
