// =============================================================================
// INI to CSV Converter - Error Taxonomy
// =============================================================================
//
// Every failure that ends a run is reported as an *Error carrying a Kind.
// Callers branch on the kind with errors.Is against the sentinel values or
// with IsKind.
//
//   KindNotFound   : the input path does not exist
//   KindIO         : the input exists but could not be read
//   KindUnreadable : no encoding produced a document with at least one section
//   KindWrite      : an output file could not be created or written
//   KindConfig     : the run configuration is missing or invalid
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a run failure.
type Kind string

const (
	KindNotFound   Kind = "not found"
	KindIO         Kind = "io"
	KindUnreadable Kind = "unreadable config"
	KindWrite      Kind = "write"
	KindConfig     Kind = "config"
)

// Sentinel errors matched by (*Error).Is.
var (
	ErrNotFound         = errors.New("input file not found")
	ErrIO               = errors.New("input file could not be read")
	ErrUnreadableConfig = errors.New("no encoding produced a readable INI document")
	ErrWrite            = errors.New("output file could not be written")
	ErrConfig           = errors.New("invalid configuration")
)

// Error wraps an underlying error with its Kind and the path involved.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// NewError creates an *Error. A nil err is replaced by the kind's sentinel.
func NewError(kind Kind, path string, err error) error {
	if err == nil {
		err = sentinelFor(kind)
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap gives errors.Is/As access to the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel error of the same kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == sentinelFor(e.Kind)
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func sentinelFor(kind Kind) error {
	switch kind {
	case KindNotFound:
		return ErrNotFound
	case KindIO:
		return ErrIO
	case KindUnreadable:
		return ErrUnreadableConfig
	case KindWrite:
		return ErrWrite
	case KindConfig:
		return ErrConfig
	default:
		return errors.New(string(kind))
	}
}
