// Package flattener turns a ConfigDocument into a rectangular table: one row
// per section, one column per distinct key name across all sections.
package flattener

import (
	"sort"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
)

// Flatten builds the table for doc.
//
// The header is "Section" followed by the union of every section's key names
// in ascending byte order. Rows follow section order; a key a section does
// not define becomes an empty cell.
func Flatten(doc *types.ConfigDocument) *types.FlatTable {
	keys := KeyUnion(doc)

	header := make([]string, 0, len(keys)+1)
	header = append(header, types.SectionColumn)
	header = append(header, keys...)

	table := &types.FlatTable{Header: header}
	if doc == nil {
		return table
	}

	table.Rows = make([][]string, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		row := make([]string, 0, len(header))
		row = append(row, section.Name)
		for _, key := range keys {
			row = append(row, section.Get(key))
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// KeyUnion returns every distinct key name in doc, sorted.
func KeyUnion(doc *types.ConfigDocument) []string {
	if doc == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	for _, section := range doc.Sections {
		for _, key := range section.Keys {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
