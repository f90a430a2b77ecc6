package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"verdant/internal/diag"
	"verdant/internal/diagfmt"
	"verdant/internal/driver"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] path...",
		Short: "Parse files and verify their syntax trees",
		Long: `Check parses every file (directories are searched for *.vd files), reports
the diagnostics and verifies the tree invariants: round trip, widths, flags,
lists and positions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(a, cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	cmd.Flags().Bool("verify", true, "verify tree invariants after parsing")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

func runCheck(a *app, cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	verify, _ := cmd.Flags().GetBool("verify")
	uiValue, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, err := driver.ListFiles(args)
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}

	var (
		res        *driver.Result
		violations []error
	)
	run := func(sink driver.ProgressSink) error {
		opts.Progress = sink
		var err error
		if res, err = driver.ParseFiles(cmd.Context(), files, opts); err != nil {
			return err
		}
		if verify {
			endVerify := a.timer.Track("verify")
			violations = driver.Verify(cmd.Context(), res, sink)
			endVerify(fmt.Sprintf("%d violations", len(violations)))
		}
		return nil
	}
	if format == "pretty" && shouldUseTUI(mode) {
		err = runWithUI(cmd.Context(), "checking", files, run)
	} else {
		err = run(nil)
	}
	if err != nil {
		return err
	}

	units := make([]diagfmt.Unit, len(res.Files))
	for i := range res.Files {
		units[i] = unitOf(&res.Files[i])
	}
	if format == "json" {
		if err := diagfmt.JSON(cmd.OutOrStdout(), units, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
			return err
		}
	} else if err := a.printDiagnostics(cmd.OutOrStdout(), units); err != nil {
		return err
	}

	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "invariant violated: %v\n", v)
	}
	errs, warns := countDiagnostics(units)
	printCheckSummary(cmd.ErrOrStderr(), len(files), errs, warns, res)

	if errs > 0 || len(violations) > 0 {
		return errReported
	}
	return nil
}

func countDiagnostics(units []diagfmt.Unit) (errs, warns int) {
	for _, u := range units {
		if u.Bag == nil {
			continue
		}
		for _, d := range u.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	return errs, warns
}

func printCheckSummary(w io.Writer, files, errs, warns int, res *driver.Result) {
	fromDisk := 0
	for i := range res.Files {
		if res.Files[i].FromDisk {
			fromDisk++
		}
	}
	fmt.Fprintf(w, "checked %d files: %d errors, %d warnings", files, errs, warns)
	if fromDisk > 0 {
		fmt.Fprintf(w, ", %d from disk cache", fromDisk)
	}
	if s := res.Cache; s.Lookups > 0 {
		fmt.Fprintf(w, ", node cache %d/%d hits", s.Hits, s.Lookups)
	}
	fmt.Fprintln(w)
}
