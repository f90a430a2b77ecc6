package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"verdant/internal/driver"
	"verdant/internal/green"
)

type statsFile struct {
	Path string `json:"path"`
	driver.Stats
}

type statsPayload struct {
	Files []statsFile      `json:"files"`
	Total driver.Stats     `json:"total"`
	Cache green.CacheStats `json:"cache"`
}

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [flags] path...",
		Short: "Count nodes, tokens and trivia per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(a, cmd, args)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("structure", false, "count inside directives and skipped text")
	return cmd
}

func runStats(a *app, cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	structure := a.cfg.Parse.VisitStructuredTrivia
	if cmd.Flags().Changed("structure") {
		structure, _ = cmd.Flags().GetBool("structure")
	}

	files, err := driver.ListFiles(args)
	if err != nil {
		return err
	}
	opts, err := a.driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := driver.ParseFiles(cmd.Context(), files, opts)
	if err != nil {
		return err
	}

	endCount := a.timer.Track("count")
	payload := statsPayload{Cache: res.Cache}
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Root == nil {
			continue
		}
		s := driver.Collect(fr.Root, structure)
		payload.Files = append(payload.Files, statsFile{Path: fr.Path, Stats: s})
		payload.Total.Add(s)
	}
	endCount(fmt.Sprintf("%d files", len(payload.Files)))

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		fmt.Fprintln(cmd.OutOrStdout(), renderStatsTable(payload))
		fmt.Fprintf(cmd.OutOrStdout(), "node cache: %d slots, %d lookups, %d hits, %d adds\n",
			payload.Cache.Size, payload.Cache.Lookups, payload.Cache.Hits, payload.Cache.Adds)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func statsRow(name string, s driver.Stats) []string {
	cells := []int{s.Nodes, s.Lists, s.Tokens, s.Trivia, s.Directives, s.Missing, s.Skipped, s.Diagnostics, s.Bytes, s.Distinct}
	row := []string{name}
	for _, c := range cells {
		row = append(row, strconv.Itoa(c))
	}
	return row
}

func renderStatsTable(p statsPayload) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("file", "nodes", "lists", "tokens", "trivia", "directives", "missing", "skipped", "diags", "bytes", "distinct").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, f := range p.Files {
		t.Row(statsRow(f.Path, f.Stats)...)
	}
	if len(p.Files) > 1 {
		t.Row(statsRow("total", p.Total)...)
	}
	return t.String()
}
