package manifest

import (
	"fmt"

	"github.com/modoterra/tally/pkg/core"
)

// Validate checks the manifest for structural correctness.
func Validate(m *Manifest) []error {
	var errs []error

	if m.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", m.Version))
	}

	if m.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("max_line_length must not be negative, got %d", m.MaxLineLength))
	}

	errs = append(errs, ValidateSources(m.Sources)...)
	return errs
}

// ValidateSources checks a combined source list, e.g. manifest sources plus
// command-line arguments.
func ValidateSources(srcs []string) []error {
	var errs []error
	stdin := 0
	for i, s := range srcs {
		id, err := core.ParseSourceID(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %d: %w", i+1, err))
			continue
		}
		if id.Kind == core.KindStdin {
			stdin++
		}
	}
	if stdin > 1 {
		errs = append(errs, fmt.Errorf("stdin is listed %d times; it can be read only once", stdin))
	}
	return errs
}
