// =============================================================================
// INI to CSV Converter - Decoder Module
// =============================================================================
//
// This module turns an INI file of unknown encoding into a ConfigDocument.
//
// DECODING STRATEGY:
//   1. Read the whole file into memory
//   2. For each candidate encoding, in a fixed order:
//      a. Decode the bytes strictly (any undefined byte fails the candidate)
//      b. Parse the text as INI
//      c. Stop at the first candidate that yields at least one section
//   3. If every candidate fails, decode with Latin-1 dropping anything
//      undecodable, then parse once more
//   4. If that also yields no sections the file is unreadable
//
// Every attempt is recorded in Result.Attempts and reported as it happens.
//
// =============================================================================

package decoder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/report"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/pkg/utils"
)

// PreviewBytes is how many leading bytes the hex preview shows.
const PreviewBytes = 100

// =============================================================================
// RESULT TYPES
// =============================================================================

// Outcome describes how a single candidate attempt ended.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeEmpty       Outcome = "accepted (no sections)"
	OutcomeDecodeError Outcome = "decode error"
	OutcomeParseError  Outcome = "parse error"
	OutcomeNoSections  Outcome = "no sections"
)

// Attempt records one candidate tried by the decoder.
type Attempt struct {
	Encoding string
	Outcome  Outcome
	Sections int
	Err      error
}

// Result is a decoded document plus what it took to get there.
type Result struct {
	// Document is the parsed INI content.
	Document *types.ConfigDocument

	// Encoding names the candidate that produced Document.
	Encoding string

	// Lossy is true when Document came from the permissive fallback.
	Lossy bool

	// Empty is true when a zero-section document was accepted.
	Empty bool

	// Size is the input size in bytes.
	Size int

	// Hint is the detector's charset guess, or nil.
	Hint *Hint

	// Attempts lists every candidate tried, in order.
	Attempts []Attempt
}

// =============================================================================
// DECODER
// =============================================================================

// Options controls decoding.
type Options struct {
	// AllowEmpty accepts a cleanly parsed document with zero sections.
	AllowEmpty bool

	// ShowPreview reports a hex dump of the first PreviewBytes bytes.
	ShowPreview bool
}

// Decoder reads INI files of unknown encoding.
type Decoder struct {
	reporter   report.Reporter
	options    Options
	candidates []Candidate
}

// New creates a Decoder. A nil reporter discards diagnostics.
func New(reporter report.Reporter, opts Options) *Decoder {
	if reporter == nil {
		reporter = report.Nop()
	}
	return &Decoder{
		reporter:   reporter,
		options:    opts,
		candidates: Candidates(),
	}
}

// Decode reads path and decodes it with the default options.
func Decode(path string) (*types.ConfigDocument, error) {
	res, err := New(nil, Options{}).Decode(path)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// Decode reads and decodes the file at path.
//
// PARAMETERS:
//   - path: The INI file to read.
//
// RETURNS:
//   - The decoded Result.
//   - A KindNotFound, KindIO or KindUnreadable *types.Error on failure.
func (d *Decoder) Decode(path string) (*Result, error) {
	size, err := utils.GetFileSize(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.KindNotFound, path, nil)
		}
		return nil, types.NewError(types.KindIO, path, err)
	}

	d.reporter.Info("Reading %s", path)
	d.reporter.Debug("%s is %d bytes on disk", path, size)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.KindIO, path, err)
	}

	return d.decode(raw, path)
}

// DecodeBytes decodes raw as if it had been read from a file.
func (d *Decoder) DecodeBytes(raw []byte) (*Result, error) {
	return d.decode(raw, "")
}

func (d *Decoder) decode(raw []byte, path string) (*Result, error) {
	res := &Result{Size: len(raw), Hint: DetectHint(raw)}

	d.reporter.Info("File size: %d bytes", len(raw))
	if d.options.ShowPreview {
		d.reporter.Info("First %d bytes (hex): %s", PreviewBytes, utils.HexPreview(raw, PreviewBytes))
	}
	if res.Hint != nil {
		d.reporter.Debug("Charset hint: %s (%d%% confidence)", res.Hint.Charset, res.Hint.Confidence)
	}

	for _, c := range d.candidates {
		text, err := c.Decode(raw)
		if err != nil {
			d.record(res, Attempt{Encoding: c.Name, Outcome: OutcomeDecodeError, Err: err})
			continue
		}

		if d.accept(res, c.Name, text) {
			return res, nil
		}
	}

	d.reporter.Warn("No candidate encoding worked, falling back to %s", LossyName)
	res.Lossy = true
	if d.accept(res, LossyName, decodeLossy(raw)) {
		return res, nil
	}

	res.Lossy = false
	return nil, types.NewError(types.KindUnreadable, path,
		fmt.Errorf("%w: tried %d encodings; the file is empty, corrupt or not INI", types.ErrUnreadableConfig, len(res.Attempts)))
}

// accept parses text decoded as encoding and stores it in res if usable.
func (d *Decoder) accept(res *Result, encoding, text string) bool {
	doc, err := ParseText(text)
	if err != nil {
		d.record(res, Attempt{Encoding: encoding, Outcome: OutcomeParseError, Err: err})
		return false
	}

	n := len(doc.Sections)
	switch {
	case n > 0:
		d.record(res, Attempt{Encoding: encoding, Outcome: OutcomeAccepted, Sections: n})
	case d.options.AllowEmpty:
		d.record(res, Attempt{Encoding: encoding, Outcome: OutcomeEmpty})
		res.Empty = true
	default:
		d.record(res, Attempt{Encoding: encoding, Outcome: OutcomeNoSections})
		return false
	}

	res.Document = doc
	res.Encoding = encoding
	return true
}

func (d *Decoder) record(res *Result, a Attempt) {
	res.Attempts = append(res.Attempts, a)

	switch a.Outcome {
	case OutcomeAccepted:
		d.reporter.Info("✓ Successfully read with %s", a.Encoding)
	case OutcomeEmpty:
		d.reporter.Warn("✓ %s: File read but no sections found, continuing with an empty table", a.Encoding)
	case OutcomeNoSections:
		d.reporter.Info("✗ %s: File read but no sections found", a.Encoding)
	case OutcomeDecodeError:
		var de *DecodeError
		if errors.As(a.Err, &de) {
			d.reporter.Info("✗ %s: decode error at position %d", a.Encoding, de.Offset)
		} else {
			d.reporter.Info("✗ %s: %v", a.Encoding, a.Err)
		}
	case OutcomeParseError:
		d.reporter.Info("✗ %s: %v", a.Encoding, a.Err)
	}
}
