package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verdant/internal/config"
	"verdant/internal/trace"
)

// setupTracing creates the tracer described by cfg and the trace flags and
// attaches it to the command context. The returned cleanup flushes and
// closes it. When the tracer keeps a ring, a failed run dumps it to stderr.
func setupTracing(cmd *cobra.Command, cfg config.Config) (func(failed bool), error) {
	root := cmd.Root()

	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	settings, err := cfg.TraceSettings()
	if err != nil {
		return nil, fmt.Errorf("invalid trace settings: %w", err)
	}
	settings.RingSize = ringSize

	if settings.Level == trace.LevelOff {
		ctx := trace.WithTracer(cmd.Context(), trace.Nop)
		cmd.SetContext(ctx)
		return func(bool) {}, nil
	}

	tracer, err := trace.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	root.SetContext(ctx)

	cleanup := func(failed bool) {
		if d, ok := tracer.(trace.Dumper); ok && failed {
			if err := d.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
