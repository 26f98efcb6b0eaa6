// =============================================================================
// INI to CSV Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool.
//
// COMMAND USAGE:
//   converter convert [flags]
//
// FLAGS:
//   --input, -i    : INI file to read (default preprocess.ini)
//   --output, -o   : CSV file to write (default output.csv)
//   --xlsx         : Also write the table to this spreadsheet
//   --sheet        : Worksheet name for --xlsx
//   --allow-empty  : Accept a document with no sections (header-only CSV)
//
// PROCESSING PIPELINE:
//   1. Load configuration, apply flags
//   2. Remove temp files left behind by an interrupted run
//   3. Decode, flatten and write (see internal/converter)
//   4. Print the summary
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/report"
	"github.com/ginjaninja78/INI-to-CSV-conversion/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputFile  string
	outputFile string
	xlsxFile   string
	sheetName  string
	allowEmpty bool
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an INI file to CSV",
	Long: `The convert command reads the INI input, trying a fixed list of text
encodings until one produces at least one section, and writes the sections
as a CSV table.

The header row is "Section" followed by every key name in sorted order. Each
section becomes one row; keys a section does not define are left empty.

On error nothing is written and the existing output file is left as it was.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyConvertFlags(cmd, cfg); err != nil {
			return err
		}
		return runConvert(cmd, cfg, newReporter(cmd, cfg))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "INI file to read (default "+config.DefaultInputFile+")")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "CSV file to write (default "+config.DefaultOutputFile+")")
	convertCmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Also write the table to this .xlsx file")
	convertCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name for --xlsx (default "+config.DefaultSheetName+")")
	convertCmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Write a header-only CSV when the input has no sections")
}

// applyConvertFlags overrides configuration values with any flags that were set.
func applyConvertFlags(cmd *cobra.Command, cfg *config.MainConfig) error {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputFile = inputFile
	}
	if flags.Changed("output") {
		cfg.OutputFile = outputFile
	}
	if flags.Changed("xlsx") {
		cfg.XLSXFile = xlsxFile
	}
	if flags.Changed("sheet") {
		cfg.SheetName = sheetName
	}
	if flags.Changed("allow-empty") {
		cfg.AllowEmpty = allowEmpty
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command, cfg *config.MainConfig, reporter report.Reporter) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== INI to CSV Converter ===")
	fmt.Fprintf(out, "Input:  %s\n", cfg.InputFile)
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputFile)

	for _, target := range []string{cfg.OutputFile, cfg.XLSXFile} {
		if target == "" {
			continue
		}
		removed, err := utils.CleanTempFiles(target)
		if err != nil {
			reporter.Warn("Could not remove stale temp files for %s: %v", target, err)
		} else if removed > 0 {
			reporter.Debug("Removed %d stale temp file(s) for %s", removed, target)
		}
	}

	result := converter.New(cfg, reporter).Run()
	if result.Error != nil {
		return fmt.Errorf("conversion failed: %w", result.Error)
	}

	fmt.Fprintln(out, "\n=== Conversion Complete ===")
	for _, line := range result.Summary() {
		fmt.Fprintln(out, line)
	}

	return nil
}
