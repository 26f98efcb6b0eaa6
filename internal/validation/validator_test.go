package validation

import (
	"testing"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTable_Valid(t *testing.T) {
	table := &types.FlatTable{
		Header: []string{"Section", "host", "port"},
		Rows: [][]string{
			{"db", "localhost", "5432"},
			{"cache", "127.0.0.1", ""},
		},
	}

	result := ValidateTable(table)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "No validation errors.", FormatErrors(result.Errors))
}

func TestValidateTable_Errors(t *testing.T) {
	tests := []struct {
		name  string
		table *types.FlatTable
		rule  string
	}{
		{"nil table", nil, "header"},
		{"wrong first column", &types.FlatTable{Header: []string{"Name"}}, "header"},
		{"unsorted keys", &types.FlatTable{Header: []string{"Section", "b", "a"}}, "sorted"},
		{"duplicate keys", &types.FlatTable{Header: []string{"Section", "a", "a"}}, "sorted"},
		{"ragged row", &types.FlatTable{
			Header: []string{"Section", "a"},
			Rows:   [][]string{{"x"}},
		}, "width"},
		{"duplicate section", &types.FlatTable{
			Header: []string{"Section"},
			Rows:   [][]string{{"x"}, {"x"}},
		}, "section"},
		{"empty section name", &types.FlatTable{
			Header: []string{"Section"},
			Rows:   [][]string{{""}},
		}, "section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateTable(tt.table)

			assert.False(t, result.IsValid)
			fatal := result.Fatal()
			require.NotEmpty(t, fatal)
			assert.Equal(t, tt.rule, fatal[0].Rule)
		})
	}
}

func TestValidateTable_MultilineWarning(t *testing.T) {
	table := &types.FlatTable{
		Header: []string{"Section", "motd"},
		Rows:   [][]string{{"a", "line1\nline2"}},
	}

	result := ValidateTable(table)

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings(), 1)
	warning := result.Warnings()[0]
	assert.Equal(t, 2, warning.Row)
	assert.Equal(t, "motd", warning.Column)
	assert.Equal(t, "[WARNING] row 2, column 'motd': value spans multiple lines (multiline)", warning.Error())
	assert.Contains(t, FormatErrors(result.Errors), "1 finding(s)")
}
