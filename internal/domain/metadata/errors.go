package metadata

import (
	"errors"
	"fmt"
)

// Sentinel kinds for load errors. A *LoadError matches exactly one of them
// with errors.Is.
var (
	ErrNotARegularFile = errors.New("metadata is not a regular file")
	ErrReadFailure     = errors.New("failed to read metadata")
	ErrParseFailure    = errors.New("failed to parse metadata")
)

// Kind identifies the loader step that failed.
type Kind int

// Load failure kinds.
const (
	NotARegularFile Kind = iota + 1
	ReadFailure
	ParseFailure
)

func (k Kind) String() string {
	switch k {
	case NotARegularFile:
		return "not_a_regular_file"
	case ReadFailure:
		return "read_failure"
	case ParseFailure:
		return "parse_failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case NotARegularFile:
		return ErrNotARegularFile
	case ReadFailure:
		return ErrReadFailure
	case ParseFailure:
		return ErrParseFailure
	default:
		return nil
	}
}

// LoadError is returned by Load and Parse.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	msg := "metadata load failed"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the sentinel of the error's kind.
func (e *LoadError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Unwrap returns the underlying filesystem or parser error, if any.
func (e *LoadError) Unwrap() error {
	return e.Err
}
