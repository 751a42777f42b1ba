package sources

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/modoterra/tally/pkg/core"
)

// ErrStdinInUse is returned when standard input is opened a second time.
var ErrStdinInUse = errors.New("stdin can be read by only one source")

// StdinOpener hands out standard input exactly once.
type StdinOpener struct {
	r    io.Reader
	used atomic.Bool
}

// NewStdinOpener wraps r, or os.Stdin when r is nil.
func NewStdinOpener(r io.Reader) *StdinOpener {
	if r == nil {
		r = os.Stdin
	}
	return &StdinOpener{r: r}
}

func (o *StdinOpener) Kind() core.SourceKind { return core.KindStdin }

// Open returns standard input. Closing it does not close the underlying reader.
func (o *StdinOpener) Open(_ context.Context, _ string) (io.ReadCloser, error) {
	if !o.used.CompareAndSwap(false, true) {
		return nil, ErrStdinInUse
	}
	return io.NopCloser(o.r), nil
}
