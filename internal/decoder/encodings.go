package decoder

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Candidate is one text encoding tried by the decoder.
type Candidate struct {
	// Name is the label shown in diagnostics.
	Name string

	// decode converts raw bytes to UTF-8 text, failing on any byte the
	// encoding does not define.
	decode func(raw []byte) (string, error)
}

// Decode strictly decodes raw with this candidate.
func (c Candidate) Decode(raw []byte) (string, error) {
	return c.decode(raw)
}

// DecodeError reports the first byte a candidate could not decode.
type DecodeError struct {
	Encoding string
	Offset   int
	Byte     byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode byte 0x%02x at position %d", e.Encoding, e.Byte, e.Offset)
}

// Candidates returns the fixed, ordered list of encodings the decoder tries.
//
// utf-8 keeps a byte order mark as a leading U+FEFF, which turns the first
// header into a line without a delimiter and fails the parse. Files with a
// BOM are therefore read by utf-8-sig, which strips it.
//
// Windows-1252 is tried before Latin-1: Latin-1 accepts every byte, so
// anything after it only runs when parsing (not decoding) failed.
func Candidates() []Candidate {
	return []Candidate{
		{Name: "utf-8", decode: decodeUTF8},
		{Name: "utf-8-sig", decode: decodeUTF8BOM},
		singleByte("windows-1252", charmap.Windows1252, 0x81, 0x8D, 0x8F, 0x90, 0x9D),
		singleByte("latin-1", charmap.ISO8859_1),
		singleByte("iso-8859-1", charmap.ISO8859_1),
		singleByte("iso-8859-15", charmap.ISO8859_15),
		singleByte("cp850", charmap.CodePage850),
		singleByte("cp437", charmap.CodePage437),
	}
}

// CandidateNames returns the names of Candidates in order.
func CandidateNames() []string {
	cs := Candidates()
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

func decodeUTF8(raw []byte) (string, error) {
	if off := invalidUTF8Offset(raw); off >= 0 {
		return "", &DecodeError{Encoding: "utf-8", Offset: off, Byte: raw[off]}
	}
	return string(raw), nil
}

func decodeUTF8BOM(raw []byte) (string, error) {
	if off := invalidUTF8Offset(raw); off >= 0 {
		return "", &DecodeError{Encoding: "utf-8-sig", Offset: off, Byte: raw[off]}
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("utf-8-sig: %w", err)
	}
	return string(out), nil
}

// invalidUTF8Offset returns the offset of the first invalid UTF-8 sequence, or -1.
func invalidUTF8Offset(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// singleByte builds a strict candidate for a code page. undefined lists bytes
// the code page leaves unassigned even where the charmap table maps them.
func singleByte(name string, cm *charmap.Charmap, undefined ...byte) Candidate {
	var holes [256]bool
	for _, b := range undefined {
		holes[b] = true
	}

	return Candidate{
		Name: name,
		decode: func(raw []byte) (string, error) {
			for i, b := range raw {
				if holes[b] || cm.DecodeByte(b) == utf8.RuneError {
					return "", &DecodeError{Encoding: name, Offset: i, Byte: b}
				}
			}
			out, err := cm.NewDecoder().Bytes(raw)
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			return string(out), nil
		},
	}
}

// LossyName labels the permissive fallback decode in diagnostics.
const LossyName = "latin-1 (ignoring undecodable bytes)"

// decodeLossy maps every byte through Latin-1 and drops replacement characters.
func decodeLossy(raw []byte) string {
	t := transform.Chain(
		charmap.ISO8859_1.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.Bytes(t, raw)
	if err != nil {
		// Latin-1 maps every byte, so this only happens on internal errors.
		return string(raw)
	}
	return string(out)
}
