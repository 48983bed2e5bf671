// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the material-summary CLI. The root
// command prompts for a directory of inspection reports and a component name,
// then writes a Material Analysis summary PDF for the first matching report.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/material-summary/internal/history"
	"github.com/pdiddy/material-summary/internal/pipeline"
	"github.com/pdiddy/material-summary/internal/render"
	"github.com/pdiddy/material-summary/internal/textextract"
	"github.com/pdiddy/material-summary/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the material-summary CLI.
var rootCmd = &cobra.Command{
	Use:   "material-summary",
	Short: "Summarise the Material Analysis report of a component",
	Long: `material-summary scans a directory of PDF inspection reports for the first
one that mentions a component, checks that it is a Material Analysis report,
and extracts its date, summary of analysis, and Cu/Fe/C observations into
<component>_material_analysis_summary.pdf.

The directory and component are read interactively from standard input.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSummary,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./material-summary.yaml or ~/.config/material-summary/material-summary.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("material-summary")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "material-summary"))
		}
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables are
// picked up by Unmarshal even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("extractor.backend", string(types.BackendLedongthuc))
	v.SetDefault("extractor.pdftotext", "pdftotext")
	v.SetDefault("output.dir", ".")
	v.SetDefault("pipeline.continue_on_wrong_category", false)
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.db_path", "material-summary.db")
	v.SetDefault("log.level", "info")
}

// bindEnv maps MATERIAL_SUMMARY_<SECTION>_<KEY> environment variables onto
// config keys, e.g. MATERIAL_SUMMARY_OUTPUT_DIR -> output.dir.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("MATERIAL_SUMMARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadAppConfig decodes the merged config file, environment, and defaults.
func loadAppConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Defaults()
	return cfg, nil
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// runSummary reports every failure as a status line and returns nil, so the
// process exits normally whatever the outcome.
func runSummary(cmd *cobra.Command, args []string) error {
	if err := summarize(cmd); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return nil
}

func summarize(cmd *cobra.Command) error {
	app, err := loadAppConfig(viper.GetViper())
	if err != nil {
		return err
	}
	logger := newLogger(app.Log.Level, cmd.ErrOrStderr())

	cfg, err := promptConfig(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ex, err := textextract.New(app.Extractor)
	if err != nil {
		return err
	}
	p := pipeline.New(ex, render.NewPDFRenderer(), app.Pipeline, app.Output.Dir, logger)

	if app.History.Enabled {
		store, err := history.NewStore(app.History)
		if err != nil {
			return err
		}
		defer store.Close()
		p.History = store
	}

	_, err = p.Run(context.Background(), cfg, cmd.OutOrStdout())
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
