// =============================================================================
// INI to CSV Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - decoder
//   - flattener
//   - csvwriter / xlsxwriter
//   - converter
//
// =============================================================================

package types

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// SectionColumn is the fixed name of the first column in every table.
const SectionColumn = "Section"

// ConfigDocument is the decoded INI file: its sections in file order.
// Section names are unique.
type ConfigDocument struct {
	// Sections holds every named section, excluding the DEFAULT section.
	Sections []Section
}

// Section is a named group of key/value pairs.
type Section struct {
	// Name is the text between the brackets of the section header.
	Name string

	// Keys lists the key names in the order they were first seen.
	// Inherited DEFAULT keys come after the section's own keys.
	Keys []string

	// Values maps each key name to its raw string value.
	Values map[string]string
}

// NewSection creates an empty section.
func NewSection(name string) Section {
	return Section{
		Name:   name,
		Values: make(map[string]string),
	}
}

// Set assigns a value, recording the key order on first assignment.
func (s *Section) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if _, exists := s.Values[key]; !exists {
		s.Keys = append(s.Keys, key)
	}
	s.Values[key] = value
}

// Get returns the value for key, or the empty string if the key is absent.
func (s Section) Get(key string) string {
	return s.Values[key]
}

// Has reports whether the section defines key.
func (s Section) Has(key string) bool {
	_, ok := s.Values[key]
	return ok
}

// SectionNames returns the names of all sections in document order.
func (d *ConfigDocument) SectionNames() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

// =============================================================================
// TABLE TYPES
// =============================================================================

// FlatTable is the rectangular form of a ConfigDocument.
// Header is "Section" followed by the sorted key union; every row has
// exactly len(Header) cells.
type FlatTable struct {
	// Header is the first output row.
	Header []string

	// Rows holds one row per section, in section order.
	Rows [][]string
}

// Keys returns the sorted key union (the header without the Section column).
func (t *FlatTable) Keys() []string {
	if len(t.Header) == 0 {
		return nil
	}
	return t.Header[1:]
}

// RowCount returns the number of output rows including the header.
func (t *FlatTable) RowCount() int {
	return len(t.Rows) + 1
}

// ColumnCount returns the number of output columns.
func (t *FlatTable) ColumnCount() int {
	return len(t.Header)
}
