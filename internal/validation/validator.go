// =============================================================================
// INI to CSV Converter - Table Validation Module
// =============================================================================
//
// This module checks a FlatTable before it is written. Values are never
// validated (they are copied verbatim); only the shape of the table is.
//
// VALIDATION RULES:
//   - header     : the first header cell is "Section"
//   - sorted     : the remaining header cells are unique and sorted
//   - width      : every row has exactly as many cells as the header
//   - section    : section names are non-empty and unique
//   - multiline  : a cell contains a line break (warning only, it will be quoted)
//
// Errors mean the table is malformed and must not be written. Warnings are
// reported and the run continues.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Rule is the name of the rule that was violated.
	Rule string

	// Message is a human-readable description.
	Message string

	// Row is the 1-based output row (the header is row 1), or 0 for the whole table.
	Row int

	// Column is the header name of the offending cell, if any.
	Column string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	location := "table"
	if e.Row > 0 {
		location = fmt.Sprintf("row %d", e.Row)
		if e.Column != "" {
			location += fmt.Sprintf(", column '%s'", e.Column)
		}
	}
	return fmt.Sprintf("[%s] %s: %s (%s)", strings.ToUpper(e.Severity), location, e.Message, e.Rule)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Errors contains every finding, warnings included.
	Errors []*ValidationError

	// ErrorCount is the number of errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int
}

// Fatal returns only the findings with error severity.
func (r *ValidationResult) Fatal() []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if e.Severity == SeverityError {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns only the findings with warning severity.
func (r *ValidationResult) Warnings() []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateTable checks table against every rule.
//
// PARAMETERS:
//   - table: The table about to be written.
//
// RETURNS:
//   - A ValidationResult. IsValid is false if any error was found.
func ValidateTable(table *types.FlatTable) *ValidationResult {
	result := &ValidationResult{}

	if table == nil || len(table.Header) == 0 || table.Header[0] != types.SectionColumn {
		result.add(&ValidationError{
			Severity: SeverityError,
			Rule:     "header",
			Message:  fmt.Sprintf("first column must be %q", types.SectionColumn),
			Row:      1,
		})
		result.IsValid = false
		return result
	}

	keys := table.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			result.add(&ValidationError{
				Severity: SeverityError,
				Rule:     "sorted",
				Message:  fmt.Sprintf("key %q does not sort after %q", keys[i], keys[i-1]),
				Row:      1,
				Column:   keys[i],
			})
		}
	}

	seen := make(map[string]int, len(table.Rows))
	for i, row := range table.Rows {
		rowNum := i + 2

		if len(row) != len(table.Header) {
			result.add(&ValidationError{
				Severity: SeverityError,
				Rule:     "width",
				Message:  fmt.Sprintf("row has %d cells, header has %d", len(row), len(table.Header)),
				Row:      rowNum,
			})
			continue
		}

		name := row[0]
		if name == "" {
			result.add(&ValidationError{
				Severity: SeverityError,
				Rule:     "section",
				Message:  "section name is empty",
				Row:      rowNum,
				Column:   types.SectionColumn,
			})
		} else if first, dup := seen[name]; dup {
			result.add(&ValidationError{
				Severity: SeverityError,
				Rule:     "section",
				Message:  fmt.Sprintf("section %q already appears in row %d", name, first),
				Row:      rowNum,
				Column:   types.SectionColumn,
			})
		} else {
			seen[name] = rowNum
		}

		for col, cell := range row[1:] {
			if strings.ContainsAny(cell, "\r\n") {
				result.add(&ValidationError{
					Severity: SeverityWarning,
					Rule:     "multiline",
					Message:  "value spans multiple lines",
					Row:      rowNum,
					Column:   keys[col],
				})
			}
		}
	}

	result.IsValid = result.ErrorCount == 0
	return result
}

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}
