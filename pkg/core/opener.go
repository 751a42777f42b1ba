package core

import (
	"context"
	"io"
)

// Opener is the interface every source kind implements.
type Opener interface {
	// Kind returns the source kind this opener serves.
	Kind() SourceKind

	// Open starts reading the given target. The caller must Close the returned
	// reader; for process-backed sources Close reports how the process exited.
	Open(ctx context.Context, target string) (io.ReadCloser, error)
}
