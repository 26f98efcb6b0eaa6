// =============================================================================
// INI to CSV Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates a single
// run, from reading the INI file to writing the CSV (and optional XLSX).
//
// CONVERSION PIPELINE:
//   1. Decode the input file (encoding fallback chain)
//   2. Flatten the document into a table
//   3. Check the table shape, then write the CSV output
//   4. Write the XLSX output, if configured
//
// Output is only written after the whole input has been decoded, so a failed
// decode never touches the output files.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/decoder"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/flattener"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/report"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/validation"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/xlsxwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a conversion run.
type Result struct {
	// InputFile is the INI file that was read.
	InputFile string

	// OutputFile is the CSV file that was written.
	// This is empty if the run failed before writing.
	OutputFile string

	// XLSXFile is the spreadsheet that was written, if any.
	XLSXFile string

	// Encoding is the candidate that decoded the input.
	Encoding string

	// Lossy is true when the permissive fallback decoded the input.
	Lossy bool

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	// This is a *types.Error whose Kind names the failure.
	Error error

	// Stats contains run statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// Sections is the number of sections read.
	Sections int

	// UniqueKeys is the number of distinct keys across all sections.
	UniqueKeys int

	// Rows is the number of CSV rows written, including the header.
	Rows int

	// Columns is the number of CSV columns.
	Columns int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs a single INI to CSV conversion.
type Converter struct {
	// cfg holds the input and output paths and decoding options.
	cfg *config.MainConfig

	// reporter receives progress and diagnostics.
	reporter report.Reporter
}

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The run configuration. nil means config.Default().
//   - reporter: Receives diagnostics. nil discards them.
func New(cfg *config.MainConfig, reporter report.Reporter) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if reporter == nil {
		reporter = report.Nop()
	}
	return &Converter{cfg: cfg, reporter: reporter}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result struct containing the outcome of the run.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{InputFile: c.cfg.InputFile}

	// =========================================================================
	// STEP 1: DECODE INPUT
	// =========================================================================

	decoded, err := c.Inspect()
	if err != nil {
		result.Error = err
		return result
	}

	result.Encoding = decoded.Encoding
	result.Lossy = decoded.Lossy
	result.Stats.Sections = len(decoded.Document.Sections)

	// =========================================================================
	// STEP 2 + 3: FLATTEN AND WRITE CSV
	// =========================================================================

	table, err := c.Write(decoded.Document, c.cfg.OutputFile)
	if err != nil {
		result.Error = err
		return result
	}

	result.OutputFile = c.cfg.OutputFile
	result.Stats.UniqueKeys = len(table.Keys())
	result.Stats.Rows = table.RowCount()
	result.Stats.Columns = table.ColumnCount()

	// =========================================================================
	// STEP 4: WRITE XLSX
	// =========================================================================

	if c.cfg.XLSXFile != "" {
		if err := xlsxwriter.Write(table, c.cfg.XLSXFile, c.cfg.SheetName); err != nil {
			result.Error = err
			return result
		}
		result.XLSXFile = c.cfg.XLSXFile
		c.reporter.Info("Wrote spreadsheet to %s (sheet %q)", c.cfg.XLSXFile, c.cfg.SheetName)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// Inspect decodes the configured input without writing anything.
func (c *Converter) Inspect() (*decoder.Result, error) {
	dec := decoder.New(c.reporter, decoder.Options{
		AllowEmpty:  c.cfg.AllowEmpty,
		ShowPreview: c.cfg.Preview(),
	})

	decoded, err := dec.Decode(c.cfg.InputFile)
	if err != nil {
		c.reporter.Error("%v", err)
		return nil, err
	}

	if decoded.Lossy {
		c.reporter.Warn("Decoded with %s, some characters may have been dropped", decoded.Encoding)
	}
	c.reporter.Info("Found %d sections: %v", len(decoded.Document.Sections), decoded.Document.SectionNames())

	return decoded, nil
}

// Write flattens doc and writes it as CSV to outputPath.
//
// RETURNS:
//   - The table that was written.
//   - A KindWrite *types.Error if the file cannot be produced.
func (c *Converter) Write(doc *types.ConfigDocument, outputPath string) (*types.FlatTable, error) {
	table := flattener.Flatten(doc)

	check := validation.ValidateTable(table)
	for _, w := range check.Warnings() {
		c.reporter.Warn("%s", w.Error())
	}
	if !check.IsValid {
		err := types.NewError(types.KindWrite, outputPath, fmt.Errorf("refusing to write malformed table:\n%s", validation.FormatErrors(check.Fatal())))
		c.reporter.Error("%v", err)
		return nil, err
	}

	if err := csvwriter.Write(table, outputPath); err != nil {
		c.reporter.Error("%v", err)
		return nil, err
	}

	c.reporter.Info("Wrote %d rows x %d columns to %s", table.RowCount(), table.ColumnCount(), outputPath)
	return table, nil
}

// Convert reads inputPath and writes the CSV to outputPath with default settings.
func Convert(inputPath, outputPath string) error {
	cfg := config.Default()
	cfg.InputFile = inputPath
	cfg.OutputFile = outputPath

	if err := cfg.Validate(); err != nil {
		return types.NewError(types.KindConfig, "", err)
	}

	result := New(cfg, nil).Run()
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Summary returns the human-readable lines printed after a successful run.
func (r Result) Summary() []string {
	encoding := r.Encoding
	if r.Lossy {
		encoding += " (lossy)"
	}

	lines := []string{
		fmt.Sprintf("Encoding used: %s", encoding),
		fmt.Sprintf("Sections:      %d", r.Stats.Sections),
		fmt.Sprintf("Unique keys:   %d", r.Stats.UniqueKeys),
		fmt.Sprintf("CSV output:    %s (%d rows x %d columns)", r.OutputFile, r.Stats.Rows, r.Stats.Columns),
	}
	if r.XLSXFile != "" {
		lines = append(lines, fmt.Sprintf("XLSX output:   %s", r.XLSXFile))
	}
	lines = append(lines, fmt.Sprintf("Elapsed:       %s", r.Stats.ProcessingTime.Round(time.Millisecond)))
	return lines
}
