// =============================================================================
// INI to CSV Converter - XLSX Writer Module
// =============================================================================
//
// This module writes the same table as the CSV output into a spreadsheet.
//
// SHEET LAYOUT:
//   | A       | B    | C    | D    |
//   |---------|------|------|------|
//   | Section | host | port | ttl  |   <- bold, frozen
//   | db      | x    | 1    |      |
//   | cache   | y    |      | 5    |
//
// Every cell is stored as text. Values are never converted to numbers or
// dates, so "007" stays "007".
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when no sheet name is given.
const DefaultSheetName = "Sections"

// Write creates or replaces the spreadsheet at path with table.
//
// PARAMETERS:
//   - table: The flattened document.
//   - path: The output .xlsx path. Parent directories are created.
//   - sheetName: The worksheet name. Empty means DefaultSheetName.
//
// RETURNS:
//   - A KindWrite *types.Error if the workbook cannot be built or saved.
func Write(table *types.FlatTable, path, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f, err := Build(table, sheetName)
	if err != nil {
		return types.NewError(types.KindWrite, path, err)
	}
	defer f.Close()

	err = utils.WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		return types.NewError(types.KindWrite, path, err)
	}
	return nil
}

// Build creates an in-memory workbook holding table on a single sheet.
func Build(table *types.FlatTable, sheetName string) (*excelize.File, error) {
	if table == nil || len(table.Header) == 0 {
		return nil, fmt.Errorf("table has no header")
	}

	f := excelize.NewFile()

	// A new workbook always starts with one sheet; rename it.
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("invalid sheet name %q: %w", sheetName, err)
	}

	if err := writeRow(f, sheetName, 1, table.Header); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := styleHeader(f, sheetName, len(table.Header)); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// writeRow stores cells as strings starting at column A of rowNum.
func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", rowNum, err)
		}
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

// styleHeader makes the first row bold and freezes it.
func styleHeader(f *excelize.File, sheet string, columns int) error {
	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	err = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return nil
}

// ReadRows opens a workbook and returns the rows of sheetName.
// Trailing empty cells are trimmed from each row.
func ReadRows(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}
