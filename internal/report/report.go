// =============================================================================
// INI to CSV Converter - Diagnostics Reporter
// =============================================================================
//
// The decoder, writers and converter never print directly. They emit
// informational, warning and error events through the Reporter interface.
//
// IMPLEMENTATIONS:
//   - Console  : human-readable lines via zerolog's ConsoleWriter (default)
//   - Recorder : keeps events in memory, used by tests
//   - Nop      : discards everything
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Reporter receives progress and diagnostic events.
// Messages are printf-style format strings.
type Reporter interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSOLE REPORTER
// =============================================================================

// Options controls the console reporter.
type Options struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string

	// NoColor disables ANSI colours in the output.
	NoColor bool

	// TimeFormat is the timestamp layout. An empty value omits timestamps.
	TimeFormat string
}

// Console writes events as human-readable lines.
type Console struct {
	logger zerolog.Logger
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer, opts Options) *Console {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: opts.TimeFormat,
	}
	if opts.TimeFormat == "" {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	logger := zerolog.New(cw).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return &Console{logger: logger}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (c *Console) Debug(msg string, args ...interface{}) {
	c.logger.Debug().Msgf(msg, args...)
}

func (c *Console) Info(msg string, args ...interface{}) {
	c.logger.Info().Msgf(msg, args...)
}

func (c *Console) Warn(msg string, args ...interface{}) {
	c.logger.Warn().Msgf(msg, args...)
}

func (c *Console) Error(msg string, args ...interface{}) {
	c.logger.Error().Msgf(msg, args...)
}

// =============================================================================
// NOP REPORTER
// =============================================================================

type nop struct{}

// Nop returns a Reporter that discards every event.
func Nop() Reporter { return nop{} }

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}

// =============================================================================
// RECORDER
// =============================================================================

// Event is a single recorded diagnostic.
type Event struct {
	Level   string
	Message string
	At      time.Time
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, msg string, args []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		Level:   level,
		Message: fmt.Sprintf(msg, args...),
		At:      time.Now(),
	})
}

func (r *Recorder) Debug(msg string, args ...interface{}) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...interface{})  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...interface{})  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...interface{}) { r.record("error", msg, args) }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the messages recorded at level, or all messages if level is empty.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Events() {
		if level == "" || e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, m := range r.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
