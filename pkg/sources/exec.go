package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/modoterra/tally/pkg/core"
)

// ExecOpener reads the standard output of a command.
type ExecOpener struct {
	dir    string
	logger *slog.Logger
}

// NewExecOpener creates an opener running commands in dir.
func NewExecOpener(dir string, logger *slog.Logger) *ExecOpener {
	return &ExecOpener{dir: dir, logger: logger}
}

func (o *ExecOpener) Kind() core.SourceKind { return core.KindExec }

// Open starts the command. The target is split on whitespace; no shell is involved.
func (o *ExecOpener) Open(ctx context.Context, target string) (io.ReadCloser, error) {
	parts := strings.Fields(target)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	rc, err := startCommand(ctx, o.dir, parts[0], parts[1:]...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("command started", "command", target, "pid", rc.cmd.Process.Pid)
	return rc, nil
}
