package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verdant/internal/diagfmt"
	"verdant/internal/driver"
)

func newTokensCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] file.vd",
		Short: "Print the tokens of a source file",
		Long:  `Tokens lexes a file and prints every token with its span and trivia kinds`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(a, cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokens(a *app, cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	endLex := a.timer.Track("lex")
	result, err := driver.Tokenize(path, opts)
	endLex("")
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	unit := diagfmt.Unit{Path: result.File.Path, File: result.File, Bag: result.Bag}
	if err := a.printDiagnostics(cmd.ErrOrStderr(), []diagfmt.Unit{unit}); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.File)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
