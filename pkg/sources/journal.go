package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/modoterra/tally/pkg/core"
)

// JournalOpener reads the current journal contents of a systemd unit.
type JournalOpener struct {
	logger *slog.Logger
}

// NewJournalOpener creates a journal opener.
func NewJournalOpener(logger *slog.Logger) *JournalOpener {
	return &JournalOpener{logger: logger}
}

func (o *JournalOpener) Kind() core.SourceKind { return core.KindJournal }

// Open runs journalctl for the unit. Unlike a live tail this ends once the
// existing entries have been printed.
func (o *JournalOpener) Open(ctx context.Context, unit string) (io.ReadCloser, error) {
	bin, err := exec.LookPath("journalctl")
	if err != nil {
		return nil, fmt.Errorf("journal %s: %w", unit, err)
	}
	rc, err := startCommand(ctx, "", bin, journalArgs(unit)...)
	if err != nil {
		return nil, fmt.Errorf("journal %s: %w", unit, err)
	}
	o.logger.Info("reading journal", "unit", unit)
	return rc, nil
}

func journalArgs(unit string) []string {
	return []string{"-u", unit, "-o", "cat", "--no-pager", "-q"}
}
