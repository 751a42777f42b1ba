package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modoterra/tally/pkg/core"
)

// FileOpener reads regular files from the local filesystem.
type FileOpener struct {
	root   string
	logger *slog.Logger
}

// NewFileOpener creates a file opener resolving relative paths against root.
func NewFileOpener(root string, logger *slog.Logger) *FileOpener {
	return &FileOpener{root: root, logger: logger}
}

func (o *FileOpener) Kind() core.SourceKind { return core.KindFile }

// Open opens the file for reading.
func (o *FileOpener) Open(_ context.Context, target string) (io.ReadCloser, error) {
	path := target
	if o.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(o.root, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: is a directory", path)
	}
	return f, nil
}
