// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/material-summary/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export previously generated summaries",
	Long: `History reads the SQLite log of generated summaries. Recording is enabled
with history.enabled in the config file (or MATERIAL_SUMMARY_HISTORY_ENABLED);
the database location is history.db_path.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list [component]",
	Short: "List generated summaries, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	q := history.Query{Limit: limit}
	if len(args) > 0 {
		q.Component = args[0]
	}

	entries, err := store.List(context.Background(), q)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryList(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistoryList(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No summaries recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-20s  %-12s  %-4s  %s\n", "Generated", "Component", "Date", "Obs", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		component := e.Component
		if len(component) > 20 {
			component = component[:17] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-20s  %-12s  %-4d  %s\n",
			e.GeneratedAt.Local().Format("2006-01-02 15:04:05"), component, e.ReportDate, len(e.Observations), e.OutputPath)
	}
	fmt.Fprintf(w, "\n%d summaries\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export [component]",
	Short: "Export recorded summaries to YAML or JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outFile, _ := cmd.Flags().GetString("output")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	var q history.Query
	if len(args) > 0 {
		q.Component = args[0]
	}

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outFile, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background(), q, w)
	case "json":
		err = store.ExportJSON(context.Background(), q, w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outFile)
	}
	return nil
}

// --- shared helpers ---

func openHistory() (*history.Store, error) {
	app, err := loadAppConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return history.NewStore(app.History)
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum summaries to list (0 = default of 20)")
	historyListCmd.Flags().Bool("json", false, "output results as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
