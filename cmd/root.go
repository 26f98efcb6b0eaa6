// =============================================================================
// INI to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── convertCmd (converter convert)
//   ├── inspectCmd (converter inspect)
//   └── versionCmd (converter version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --no-color)
//   2. Loading the configuration file
//   3. Setting up the diagnostics reporter
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/report"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug diagnostics when set to true.
var verbose bool

// noColor disables coloured diagnostics.
var noColor bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "INI to CSV Converter - Flatten INI configuration files into a CSV table",
	Long: `INI to CSV Converter reads an INI file whose text encoding is not known in
advance and writes it as a CSV table: one row per section, one column per
distinct key.

Key Features:
  - Encoding detection by fallback (UTF-8, Windows-1252, Latin-1, IBM code pages)
  - Sorted, deterministic columns; missing keys become empty cells
  - Atomic output: a failed run never leaves a partial file behind
  - Optional XLSX copy of the table

Example Usage:
  converter convert                             # preprocess.ini -> output.csv
  converter convert -i app.ini -o app.csv       # Explicit paths
  converter convert --xlsx app.xlsx             # Also write a spreadsheet
  converter inspect -i app.ini                  # Show what the decoder finds`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional unless set explicitly)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable coloured output",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration file and applies the global flags.
// The file is only required when --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.NoColor = true
	}

	return cfg, nil
}

// newReporter creates the console reporter for a command.
func newReporter(cmd *cobra.Command, cfg *config.MainConfig) report.Reporter {
	return report.NewConsole(cmd.OutOrStdout(), report.Options{
		Level:   cfg.LogLevel,
		NoColor: cfg.NoColor,
	})
}
