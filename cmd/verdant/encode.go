package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"verdant/internal/diagfmt"
	"verdant/internal/driver"
	"verdant/internal/green"
	"verdant/internal/serial"
	"verdant/internal/trace"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [flags] file",
		Short: "Write the green tree of a file in the binary tree format",
		Long: `Encode parses a file and writes its green tree with msgpack. With --decode the
input is an encoded tree and its source text is printed back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(a, cmd, args[0])
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: input with .vgt appended, \"-\" for stdout)")
	cmd.Flags().Bool("decode", false, "read an encoded tree and print its text")
	cmd.Flags().Bool("check", false, "decode the result again and compare it with the parsed tree")
	return cmd
}

func runEncode(a *app, cmd *cobra.Command, path string) error {
	decode, _ := cmd.Flags().GetBool("decode")
	if decode {
		return runDecode(a, cmd, path)
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = path + ".vgt"
	}
	check, _ := cmd.Flags().GetBool("check")

	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	fr, err := driver.ParseFile(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	if fr.Root == nil {
		_ = a.printDiagnostics(cmd.ErrOrStderr(), []diagfmt.Unit{unitOf(fr)})
		return errReported
	}

	_, span := trace.Start(cmd.Context(), trace.ScopePass, "encode")
	endEncode := a.timer.Track("encode")
	data, err := serial.Marshal(fr.Root)
	endEncode(fmt.Sprintf("%d bytes", len(data)))
	span.End("")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if check {
		back, err := serial.Unmarshal(data, green.Default)
		if err != nil {
			return fmt.Errorf("decode check: %w", err)
		}
		if !green.Equivalent(fr.Root, back) || green.ToFullString(back) != string(fr.File.Content) {
			return fmt.Errorf("decode check: %s does not survive the round trip", path)
		}
	}

	if output == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes for %d source bytes)\n", output, len(data), len(fr.File.Content))
	return nil
}

func runDecode(a *app, cmd *cobra.Command, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		// #nosec G304 -- path is provided by the user
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	endDecode := a.timer.Track("decode")
	root, err := serial.Read(bytes.NewReader(data), green.Default)
	endDecode("")
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	_, err = green.WriteTo(cmd.OutOrStdout(), root)
	return err
}
