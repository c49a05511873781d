// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/binconv/internal/history"
	"github.com/pdiddy/binconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history (list, export, clear)",
	Long: `History manages the local SQLite database of recorded conversions.
Conversions are recorded when history is enabled with --history or
history.enabled in binconv.yaml.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	entries, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []types.Conversion, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []types.Conversion{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-7s  %-24s  %s\n", "Time", "Dir", "Input", "Result")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, c := range entries {
		input := c.Input
		if len(input) > 24 {
			input = input[:21] + "..."
		}
		result := c.Output
		if c.Failed() {
			result = "error: " + c.Error
		}
		fmt.Fprintf(w, "%-20s  %-7s  %-24s  %s\n",
			c.CreatedAt.Local().Format("2006-01-02 15:04:05"), c.Direction, input, result)
	}
	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history to YAML or JSON",
	Long: `Export writes recorded conversions (or a filtered subset) to
history.yaml or history.json in the history directory, or to --output.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	var n int
	switch format {
	case "yaml", "":
		if output == "" {
			output = filepath.Join(store.Dir(), "history.yaml")
		}
		n, err = store.ExportYAML(cmd.Context(), opts, output)
	case "json":
		if output == "" {
			output = filepath.Join(store.Dir(), "history.json")
		}
		n, err = store.ExportJSON(cmd.Context(), opts, output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversions to %s\n", n, output)
	return nil
}

// --- clear subcommand ---

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded conversion",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d conversions\n", n)
		return nil
	},
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) (history.ListOptions, error) {
	dirName, _ := cmd.Flags().GetString("direction")
	failed, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := history.ListOptions{FailedOnly: failed, Limit: limit}
	if dirName != "" {
		dir, err := types.ParseDirection(dirName)
		if err != nil {
			return opts, err
		}
		opts.Direction = dir
	}
	return opts, nil
}

// recordHistory stores conversions when history is enabled. Failures are
// logged and never fail the command.
func recordHistory(ctx context.Context, records []types.Conversion) {
	if !cfg.History.Enabled || len(records) == 0 {
		return
	}
	store, err := history.NewStore(cfg.History)
	if err != nil {
		logger.Warn().Err(err).Msg("opening history failed")
		return
	}
	defer store.Close()

	if err := store.RecordAll(ctx, records); err != nil {
		logger.Warn().Err(err).Msg("recording history failed")
		return
	}
	logger.Debug().Int("count", len(records)).Str("dir", store.Dir()).Msg("recorded conversions")
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("direction", "", "filter by direction: bin2dec or dec2bin")
		c.Flags().Bool("failed", false, "only conversions that failed")
	}
	historyListCmd.Flags().Int("limit", 0, "maximum entries (0 = use history.max_results)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("output", "", "output file (default: <history-dir>/history.<format>)")
	historyExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
