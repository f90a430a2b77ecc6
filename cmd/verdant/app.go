package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"verdant/internal/config"
	"verdant/internal/diagfmt"
	"verdant/internal/driver"
	"verdant/internal/observ"
	"verdant/internal/prof"
)

// app carries what the persistent flags and verdant.toml resolve to.
type app struct {
	cfg     config.Config
	color   bool
	timer   *observ.Timer
	profile *prof.Session
	cleanup func(failed bool)
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		a.color = true
	case "off":
		a.color = false
	case "auto", "":
		a.color = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !a.color

	if a.cfg, err = loadConfig(cmd); err != nil {
		return err
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		a.timer = observ.NewTimer()
	}

	if a.profile, err = setupProfiling(cmd); err != nil {
		return err
	}
	a.cleanup, err = setupTracing(cmd, a.cfg)
	return err
}

// finish stops the profilers, prints timings and closes the tracer. It runs
// after Execute, so it also runs when the command failed.
func (a *app) finish(cmd *cobra.Command, runErr error) {
	if err := a.profile.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
	if a.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), a.timer.Summary())
	}
	if a.cleanup != nil {
		a.cleanup(runErr != nil)
	}
}

// loadConfig reads --config or discovers verdant.toml, then applies the
// flags that override it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("jobs") {
		if cfg.Parse.Jobs, err = flags.GetInt("jobs"); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("no-cache") {
		noCache, _ := flags.GetBool("no-cache")
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("disk-cache") {
		cfg.Parse.DiskCache, _ = flags.GetBool("disk-cache")
	}
	if flags.Changed("trace") {
		cfg.Trace.Output, _ = flags.GetString("trace")
		// выход указан без уровня: включаем фазы
		if !flags.Changed("trace-level") && (cfg.Trace.Level == "" || cfg.Trace.Level == "off") {
			cfg.Trace.Level = "phase"
		}
	}
	if flags.Changed("trace-level") {
		cfg.Trace.Level, _ = flags.GetString("trace-level")
	}
	if flags.Changed("trace-mode") {
		cfg.Trace.Mode, _ = flags.GetString("trace-mode")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// driverOptions builds the parse options from the resolved settings.
func (a *app) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	opts := driver.OptionsFromConfig(a.cfg)
	opts.Timer = a.timer

	defines, err := flags.GetStringSlice("define")
	if err != nil {
		return opts, fmt.Errorf("failed to get define flag: %w", err)
	}
	opts.Defines = defines
	if opts.MaxErrors, err = flags.GetUint("max-errors"); err != nil {
		return opts, fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	if a.cfg.Parse.DiskCache {
		if opts.Disk, err = driver.OpenDiskCache("verdant"); err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	return opts, nil
}

// printDiagnostics writes the pretty form of every non-empty unit.
func (a *app) printDiagnostics(w io.Writer, units []diagfmt.Unit) error {
	opts := diagfmt.PrettyOpts{Color: a.color, Context: 1}
	for _, u := range units {
		if u.Bag == nil || u.Bag.Len() == 0 {
			continue
		}
		if err := diagfmt.Pretty(w, u, opts); err != nil {
			return err
		}
	}
	return nil
}

func unitOf(fr *driver.FileResult) diagfmt.Unit {
	return diagfmt.Unit{Path: fr.Path, File: fr.File, Bag: fr.Bag}
}
