package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verdant/internal/diagfmt"
	"verdant/internal/driver"
)

func newTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [flags] file.vd",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(a, cmd, args[0])
		},
	}
	cmd.Flags().Bool("trivia", false, "list the trivia of every token")
	cmd.Flags().Bool("structure", false, "expand directives and skipped text (implies --trivia)")
	cmd.Flags().Int("width", 32, "maximum width of quoted token text")
	return cmd
}

func runTree(a *app, cmd *cobra.Command, path string) error {
	trivia, _ := cmd.Flags().GetBool("trivia")
	width, _ := cmd.Flags().GetInt("width")
	structure := a.cfg.Parse.VisitStructuredTrivia
	if cmd.Flags().Changed("structure") {
		structure, _ = cmd.Flags().GetBool("structure")
	}

	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	fr, err := driver.ParseFile(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	if err := a.printDiagnostics(cmd.ErrOrStderr(), []diagfmt.Unit{unitOf(fr)}); err != nil {
		return err
	}
	tree := fr.Tree()
	if tree == nil {
		return fmt.Errorf("%s: %w", path, errReported)
	}
	return diagfmt.FormatTree(cmd.OutOrStdout(), tree, fr.File, diagfmt.TreeOpts{
		Color:     a.color,
		Trivia:    trivia,
		Structure: structure,
		Width:     width,
	})
}
