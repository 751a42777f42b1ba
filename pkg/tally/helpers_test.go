package tally

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/modoterra/tally/pkg/core"
	"github.com/modoterra/tally/pkg/seqlog"
)

// memOpener serves sources from memory.
type memOpener struct {
	files   map[string]string
	readers map[string]io.Reader
}

func (o memOpener) Open(_ context.Context, id core.SourceID) (io.ReadCloser, error) {
	if r, ok := o.readers[id.String()]; ok {
		return io.NopCloser(r), nil
	}
	content, ok := o.files[id.String()]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", id)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type fixture struct {
	shared *Shared
	logOut *bytes.Buffer
	diag   *bytes.Buffer
	logger *slog.Logger
}

func newFixture() *fixture {
	var logOut, diag bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&diag, nil))
	return &fixture{
		shared: NewShared(seqlog.New(&logOut, logger)),
		logOut: &logOut,
		diag:   &diag,
		logger: logger,
	}
}

func sourceIDs(names ...string) []core.SourceID {
	ids := make([]core.SourceID, len(names))
	for i, n := range names {
		ids[i] = core.MustParseSourceID(n)
	}
	return ids
}
