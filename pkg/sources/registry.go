// Package sources opens the line sources a tally run reads from.
package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/modoterra/tally/pkg/core"
)

// Registry dispatches Open calls to the opener registered for each source kind.
type Registry struct {
	openers map[core.SourceKind]core.Opener
	logger  *slog.Logger
}

// Options configures the default openers.
type Options struct {
	// Root is the base directory for relative file sources and the working
	// directory for command sources.
	Root string
	// Stdin backs the "-" source.
	Stdin io.Reader
}

// NewRegistry returns a registry with the file, stdin, exec and journal openers.
func NewRegistry(opts Options, logger *slog.Logger) *Registry {
	r := &Registry{
		openers: make(map[core.SourceKind]core.Opener),
		logger:  logger,
	}
	r.Register(NewFileOpener(opts.Root, logger))
	r.Register(NewStdinOpener(opts.Stdin))
	r.Register(NewExecOpener(opts.Root, logger))
	r.Register(NewJournalOpener(logger))
	return r
}

// Register adds or replaces the opener for o.Kind().
func (r *Registry) Register(o core.Opener) {
	r.openers[o.Kind()] = o
}

// Open opens the given source.
func (r *Registry) Open(ctx context.Context, id core.SourceID) (io.ReadCloser, error) {
	o, ok := r.openers[id.Kind]
	if !ok {
		return nil, fmt.Errorf("no opener for source kind %q", id.Kind)
	}
	rc, err := o.Open(ctx, id.Target)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("source opened", "source", id.String(), "kind", id.Kind)
	return rc, nil
}
