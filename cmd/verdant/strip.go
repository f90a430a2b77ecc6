package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verdant/internal/diagfmt"
	"verdant/internal/driver"
	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/rewrite"
)

func newStripCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [flags] file.vd",
		Short: "Print a file with its comments removed",
		Long: `Strip rewrites the tree of a file, dropping comment trivia (and with
--disabled the text of inactive #if branches), and prints the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(a, cmd, args[0])
		},
	}
	cmd.Flags().Bool("disabled", false, "also drop text of inactive preprocessor branches")
	cmd.Flags().BoolP("write", "w", false, "write the result back to the file")
	return cmd
}

// stripper drops the trivia kinds selected by drop.
func stripper(f green.Factory, drop func(kind.Kind) bool) *rewrite.Rewriter {
	return &rewrite.Rewriter{
		Factory: f,
		Trivia: func(t *green.Trivia) green.Node {
			if drop(t.Kind()) {
				return nil
			}
			return t
		},
	}
}

func runStrip(a *app, cmd *cobra.Command, path string) error {
	disabled, _ := cmd.Flags().GetBool("disabled")
	write, _ := cmd.Flags().GetBool("write")

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
		return errReported
	}

	drop := func(k kind.Kind) bool {
		return k.IsComment() || (disabled && k == kind.DisabledTextTrivia)
	}
	endRewrite := a.timer.Track("rewrite")
	out := rewrite.Tree(tree.Root(), stripper(green.Default, drop))
	endRewrite("")

	text := out.ToFullString()
	if !write {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if out == tree.Root() {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
