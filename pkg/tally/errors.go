package tally

import (
	"errors"
	"fmt"

	"github.com/modoterra/tally/pkg/core"
)

// ErrNoSources is returned when a run is started without any source.
var ErrNoSources = errors.New("at least one source is required")

// SourceOpenError reports a source that could not be opened.
type SourceOpenError struct {
	Source core.SourceID
	Err    error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("cannot open source %s: %v", e.Source, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// SourceReadError reports a failure after a source was opened. Line is 0 when
// the failure was not tied to a particular line, e.g. a command exiting non-zero.
type SourceReadError struct {
	Source core.SourceID
	Line   int
	Err    error
}

func (e *SourceReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("read source %s line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("read source %s: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
