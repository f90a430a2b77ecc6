// Command verdant inspects source files through the verdant syntax tree:
// it lexes, parses, checks tree invariants, prints trees and encodes them.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"verdant/internal/version"
)

// errReported ends a command whose failure was already printed.
var errReported = errors.New("diagnostics reported")

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "verdant",
		Short:         "Inspect source files through an immutable syntax tree",
		Long:          `verdant lexes and parses files into green/red syntax trees and checks, prints and encodes them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("config", "", "path to verdant.toml (default: searched upwards from the working directory)")
	flags.Bool("timings", false, "show timing information")
	flags.Int("jobs", 0, "files parsed at once (0: from config, else GOMAXPROCS)")
	flags.StringSliceP("define", "D", nil, "preprocessor symbols defined before every file")
	flags.Uint("max-errors", 0, "maximum number of parser diagnostics per file (0: unlimited)")
	flags.Bool("no-cache", false, "disable the shared node cache")
	flags.Bool("disk-cache", false, "reuse trees stored in the user cache directory")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "", "trace storage mode (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime execution trace to file")

	rootCmd.AddCommand(
		newTokensCmd(a),
		newTreeCmd(a),
		newCheckCmd(a),
		newStatsCmd(a),
		newEncodeCmd(a),
		newStripCmd(a),
		newCleanCmd(a),
		newVersionCmd(),
	)
	return rootCmd, a
}

func main() {
	rootCmd, a := newRootCmd()
	err := rootCmd.Execute()
	a.finish(rootCmd, err)
	if err != nil {
		if !errors.Is(err, errReported) {
			rootCmd.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
