package tally

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/modoterra/tally/pkg/core"
)

// Opener opens a source for reading. *sources.Registry satisfies it.
type Opener interface {
	Open(ctx context.Context, id core.SourceID) (io.ReadCloser, error)
}

// Worker reads a single source into the shared aggregate.
type Worker struct {
	id      core.TaskID
	shared  *Shared
	opener  Opener
	maxLine int
	logger  *slog.Logger
}

// NewWorker creates a worker. A non-positive maxLine selects DefaultMaxLineLength.
func NewWorker(id core.TaskID, shared *Shared, opener Opener, maxLine int, logger *slog.Logger) *Worker {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	return &Worker{
		id:      id,
		shared:  shared,
		opener:  opener,
		maxLine: maxLine,
		logger:  logger.With("task", string(id)),
	}
}

// ID returns the worker's task identity.
func (w *Worker) ID() core.TaskID { return w.id }

// Process claims the marker if nobody has, counts every name in src and
// finally deletes the marker if this worker created it. An error means the
// run must be abandoned; the marker is then left as it is.
func (w *Worker) Process(ctx context.Context, src core.SourceID) error {
	w.claimMarker()

	if err := w.scan(ctx, src); err != nil {
		return err
	}

	w.releaseMarker()
	return nil
}

func (w *Worker) claimMarker() {
	m := w.shared.Marker
	m.LockCreate()
	res, owner := m.Create(w.id)
	m.UnlockCreate()

	switch res {
	case Created:
		w.shared.Log.Logf(w.id, "This is %s and I created the marker", w.id)
	case AlreadyLive:
		w.shared.Log.Logf(w.id, "This is %s and I can access the marker created by %s", w.id, owner)
	case Retired:
		w.shared.Log.Logf(w.id, "This is %s and the marker created by %s is already deleted", w.id, owner)
	}
}

func (w *Worker) releaseMarker() {
	m := w.shared.Marker
	m.LockDelete()
	deleted := m.DeleteIfOwner(w.id)
	m.UnlockDelete()

	if deleted {
		w.shared.Log.Logf(w.id, "This is %s and I deleted the marker", w.id)
	} else {
		w.shared.Log.Logf(w.id, "This is %s and I leave the marker to its creator", w.id)
	}
}

// scan holds the aggregate lock from the first line read to the last.
func (w *Worker) scan(ctx context.Context, src core.SourceID) (err error) {
	rc, err := w.opener.Open(ctx, src)
	if err != nil {
		return &SourceOpenError{Source: src, Err: err}
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = &SourceReadError{Source: src, Err: cerr}
		}
	}()
	w.shared.Log.Logf(w.id, "opened file %s", src)

	agg := w.shared.Aggregate
	agg.Lock()
	defer agg.Unlock()

	lr := newLineReader(rc, w.maxLine)
	for lineNo := 1; ; lineNo++ {
		line, truncated, rerr := lr.next()
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return &SourceReadError{Source: src, Line: lineNo, Err: rerr}
		}
		if len(line) == 0 {
			w.logger.Warn("empty line skipped", "source", src.String(), "line", lineNo)
			continue
		}
		if truncated {
			w.logger.Warn("line truncated", "source", src.String(), "line", lineNo, "max", w.maxLine)
		}
		agg.Increment(string(line))
	}
}
