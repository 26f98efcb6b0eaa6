package decoder

import (
	"strings"

	"github.com/saintfish/chardet"
)

// hintSampleSize bounds how much of the input the detector examines.
const hintSampleSize = 4096

// Hint is a statistical guess at the input charset. It is diagnostic only
// and never changes the order in which candidates are tried.
type Hint struct {
	Charset    string
	Language   string
	Confidence int
}

// DetectHint guesses the charset of raw. It returns nil when raw is empty
// or the detector has no answer.
func DetectHint(raw []byte) *Hint {
	if len(raw) == 0 {
		return nil
	}
	if len(raw) > hintSampleSize {
		raw = raw[:hintSampleSize]
	}

	det, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || det == nil {
		return nil
	}

	return &Hint{
		Charset:    strings.ToLower(det.Charset),
		Language:   det.Language,
		Confidence: det.Confidence,
	}
}
