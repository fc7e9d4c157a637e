// Package cmd implements the dagctl command tree: a demo CLI that wires
// pkg/config, internal/streamlog, pkg/telemetry, internal/ingest, and
// pkg/engine/pkg/aggexec together the way the teacher's cmd/cli wires its
// own config/logger/pprof/analyzer stack.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dagflow/internal/streamlog"
	"github.com/katalvlaran/dagflow/pkg/config"
	apperrors "github.com/katalvlaran/dagflow/pkg/errors"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// cfg is loaded once in PersistentPreRunE and shared by subcommands.
	cfg    *config.Config
	logger streamlog.Logger
)

// rootCmd is the base command for the dagctl demo CLI.
var rootCmd = &cobra.Command{
	Use:   "dagctl",
	Short: "Drive a streaming operator DAG engine from row data",
	Long: `dagctl is a demonstration CLI for the dagflow streaming operator DAG
engine. It loads a configuration (or defaults), wires a small reference
pipeline built from pkg/ops, pkg/windows, and pkg/aggregators, and drives
it from a CSV file or stdin through internal/ingest.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := streamlog.LevelInfo
		if verbose {
			logLevel = streamlog.LevelDebug
		}
		logger = streamlog.NewDefaultLogger(logLevel, os.Stdout)
		streamlog.SetGlobalLogger(logger)

		loaded, err := config.Load(configPath)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeConfigError, "failed to load configuration", err)
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a dagflow config file (defaults searched if empty)")

	binName := BinName()
	rootCmd.Example = `  # Drive the OHLC demo pipeline from a CSV file
  ` + binName + ` run -i ./prices.csv --window 3

  # Drive it from stdin with a counter-window sum pipeline
  cat ticks.csv | ` + binName + ` run --pipeline sum --window 5

  # Print version information
  ` + binName + ` version`
}

// GetLogger returns the logger configured in PersistentPreRunE.
func GetLogger() streamlog.Logger { return logger }

// GetConfig returns the configuration loaded in PersistentPreRunE.
func GetConfig() *config.Config { return cfg }

// BinName returns the base name of the current executable.
func BinName() string { return filepath.Base(os.Args[0]) }
