package decoder

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"gopkg.in/ini.v1"
)

// loadOptions keeps go-ini from rewriting values: whole-line comments only,
// no backslash continuation, quotes left in place and no bare keys.
// Indented continuation lines never reach go-ini; foldEntries joins them.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=:",
}

// ParseText parses decoded INI text into a ConfigDocument.
//
// Key names are lowercased; section names and values are kept exactly as
// written. Keys that appear before the first section header, or under
// [DEFAULT], are not a section of their own. They are inherited by every
// named section that does not define the same key.
func ParseText(text string) (*types.ConfigDocument, error) {
	folded, err := foldEntries(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	file, err := ini.LoadSources(loadOptions, []byte(folded.text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	defaults := file.Section(ini.DefaultSection)

	doc := &types.ConfigDocument{}
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}

		section := types.NewSection(sec.Name())
		for _, key := range sec.Keys() {
			section.Set(folded.restore(key.Name()), folded.restore(key.Value()))
		}
		for _, key := range defaults.Keys() {
			name := folded.restore(key.Name())
			if !section.Has(name) {
				section.Set(name, folded.restore(key.Value()))
			}
		}

		doc.Sections = append(doc.Sections, section)
	}

	return doc, nil
}

// =============================================================================
// LINE FOLDING
// =============================================================================

// foldedText is INI text with one line per entry. Keys and values go-ini
// would alter are replaced by placeholders that restore maps back.
type foldedText struct {
	text      string
	marker    string
	originals map[string]string
	tokens    map[string]string
}

// protect returns raw, or a placeholder standing in for it.
func (f *foldedText) protect(raw string) string {
	if tok, ok := f.tokens[raw]; ok {
		return tok
	}
	tok := f.marker + strconv.Itoa(len(f.tokens)) + f.marker
	f.tokens[raw] = tok
	f.originals[tok] = raw
	return tok
}

// restore maps a placeholder back to its original text.
func (f *foldedText) restore(s string) string {
	if raw, ok := f.originals[s]; ok {
		return raw
	}
	return s
}

// entry is a key line plus its continuation lines.
type entry struct {
	key    string
	lines  []string
	indent int
}

// foldEntries reads text line by line and writes every entry on a single
// line. A line indented deeper than its key line continues the value;
// blank lines inside a value are kept, trailing ones dropped, and comment
// lines skipped.
func foldEntries(text string) (*foldedText, error) {
	f := &foldedText{
		marker:    "\x00",
		originals: make(map[string]string),
		tokens:    make(map[string]string),
	}
	for strings.Contains(text, f.marker) {
		f.marker += "\x00"
	}

	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)

	var out strings.Builder
	var cur *entry

	flush := func() {
		if cur == nil {
			return
		}
		value := strings.TrimRightFunc(strings.Join(cur.lines, "\n"), unicode.IsSpace)
		key := cur.key
		if !safeKey(key) {
			key = f.protect(key)
		}
		if !safeValue(value) {
			value = f.protect(value)
		}
		fmt.Fprintf(&out, "%s = %s\n", key, value)
		cur = nil
	}

	for i, line := range strings.Split(text, "\n") {
		value := strings.TrimSpace(line)
		comment := strings.HasPrefix(value, "#") || strings.HasPrefix(value, ";")

		if value == "" || comment {
			if !comment && cur != nil {
				cur.lines = append(cur.lines, "")
			}
			continue
		}

		indent := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
		if cur != nil && indent > cur.indent {
			cur.lines = append(cur.lines, value)
			continue
		}
		flush()

		if name, ok := sectionName(value); ok {
			fmt.Fprintf(&out, "[%s]\n", name)
			continue
		}

		idx := strings.IndexAny(value, "=:")
		if idx < 0 {
			return nil, fmt.Errorf("line %d: key-value delimiter not found: %s", i+1, value)
		}
		key := strings.TrimSpace(value[:idx])
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key name: %s", i+1, value)
		}

		cur = &entry{
			key:    strings.ToLower(key),
			lines:  []string{strings.TrimSpace(value[idx+1:])},
			indent: indent,
		}
	}
	flush()

	f.text = out.String()
	return f, nil
}

// sectionName reports whether line is a "[name]" header. Text after the
// last closing bracket is ignored.
func sectionName(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false
	}
	end := strings.LastIndex(line, "]")
	if end < 2 {
		return "", false
	}
	return line[1:end], true
}

// safeKey reports whether go-ini reads key back unchanged.
func safeKey(key string) bool {
	switch {
	case key == "-":
		return false
	case strings.ContainsAny(key[:1], "\"`'["):
		return false
	case strings.HasPrefix(key, "\ufeff"):
		return false
	}
	return true
}

// safeValue reports whether go-ini reads value back unchanged.
func safeValue(value string) bool {
	switch {
	case strings.ContainsAny(value, "\n\x00"):
		return false
	case strings.HasPrefix(value, "`"), strings.HasPrefix(value, `"""`):
		return false
	}
	return true
}
