// =============================================================================
// INI to CSV Converter - CSV Writer Module
// =============================================================================
//
// This module writes a FlatTable as a CSV file.
//
// OUTPUT FORMAT:
//   Section,host,port,ttl        # header: Section + sorted key union
//   db,x,1,                      # one row per section
//   cache,y,,5                   # missing keys are empty cells
//
//   - UTF-8, no byte order mark
//   - Comma delimiter, "\r\n" row terminator
//   - Cells containing the delimiter, a quote or a line break are quoted,
//     embedded quotes are doubled. Line breaks inside a cell are written
//     unchanged.
//   - Cells starting with a space are quoted as well (encoding/csv rule);
//     readers get the same value back
//
// The file is written to a temp file in the same directory and renamed into
// place, so a failed run never leaves a partial output file behind.
//
// =============================================================================

package csvwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/pkg/utils"
)

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// WriteOptions contains options for CSV output.
type WriteOptions struct {
	// Delimiter separates cells.
	// Default: ','
	Delimiter rune

	// UseCRLF ends rows with "\r\n" instead of "\n".
	// Line breaks inside a cell are not affected.
	// Default: true
	UseCRLF bool
}

// DefaultWriteOptions returns the default output options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Delimiter: ',',
		UseCRLF:   true,
	}
}

// =============================================================================
// CSV GENERATION FUNCTIONS
// =============================================================================

// Write creates or replaces the CSV file at path with table.
//
// PARAMETERS:
//   - table: The flattened document.
//   - path: The output file path. Parent directories are created.
//
// RETURNS:
//   - A KindWrite *types.Error if the file cannot be produced.
func Write(table *types.FlatTable, path string) error {
	return WriteWithOptions(table, path, DefaultWriteOptions())
}

// WriteWithOptions is Write with explicit options.
func WriteWithOptions(table *types.FlatTable, path string, options WriteOptions) error {
	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(w, table, options)
	})
	if err != nil {
		return types.NewError(types.KindWrite, path, err)
	}
	return nil
}

// Encode writes table to w as CSV.
func Encode(w io.Writer, table *types.FlatTable, options WriteOptions) error {
	if table == nil || len(table.Header) == 0 {
		return fmt.Errorf("table has no header")
	}

	terminator := "\n"
	if options.UseCRLF {
		terminator = "\r\n"
	}

	// Rows are encoded one at a time with "\n" endings and the terminator
	// swapped afterwards, so csv.Writer never rewrites line breaks in cells.
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if options.Delimiter != 0 {
		cw.Comma = options.Delimiter
	}

	writeRow := func(row []string) error {
		buf.Reset()
		if err := cw.Write(row); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		line := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
		if _, err := w.Write(line); err != nil {
			return err
		}
		_, err := io.WriteString(w, terminator)
		return err
	}

	if err := writeRow(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Header) {
			return fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(table.Header))
		}
		if err := writeRow(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return nil
}
