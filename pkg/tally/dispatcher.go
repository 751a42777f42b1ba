package tally

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/modoterra/tally/pkg/core"
)

// DefaultHeader precedes the report lines.
const DefaultHeader = "====================== Name Count Result ======================"

// Config holds the knobs of a run.
type Config struct {
	MaxLineLength int
	Header        string
}

// Dispatcher runs one worker per source and reports the combined counts.
type Dispatcher struct {
	shared *Shared
	opener Opener
	out    io.Writer
	cfg    Config
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher writing its report to out.
func NewDispatcher(shared *Shared, opener Opener, out io.Writer, cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.Header == "" {
		cfg.Header = DefaultHeader
	}
	return &Dispatcher{
		shared: shared,
		opener: opener,
		out:    out,
		cfg:    cfg,
		logger: logger,
	}
}

// Run processes every source concurrently and blocks until all workers are
// done. When any worker fails, the joined errors are returned and no report
// is written.
func (d *Dispatcher) Run(ctx context.Context, srcs []core.SourceID) error {
	if len(srcs) == 0 {
		return ErrNoSources
	}

	errs := make([]error, len(srcs))
	var wg sync.WaitGroup
	for i, src := range srcs {
		w := NewWorker(core.WorkerTaskID(i+1), d.shared, d.opener, d.cfg.MaxLineLength, d.logger)
		d.shared.Log.Logf(core.MainTask, "create %s for %s", w.ID(), src)
		wg.Go(func() {
			errs[i] = w.Process(ctx, src)
		})
	}

	d.shared.Log.Logf(core.MainTask, "wait for %d workers to exit", len(srcs))
	wg.Wait()
	d.shared.Log.Log(core.MainTask, "all workers exited")

	if err := errors.Join(errs...); err != nil {
		d.logger.Error("run failed, no report written", "err", err)
		return err
	}
	return d.report()
}

// Entries returns the final table. Only meaningful after Run returned.
func (d *Dispatcher) Entries() []Entry {
	agg := d.shared.Aggregate
	agg.Lock()
	defer agg.Unlock()
	return agg.Entries()
}

func (d *Dispatcher) report() error {
	entries := d.Entries()

	bw := bufio.NewWriter(d.out)
	fmt.Fprintln(bw, d.cfg.Header)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s: %d\n", e.Name, e.Count)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	d.logger.Info("report written", "names", len(entries))
	return nil
}
