// Package seqlog provides a logger that stamps every message with a
// process-wide sequence number.
package seqlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/modoterra/tally/pkg/core"
)

// TimeLayout renders local date and time with an am/pm marker.
const TimeLayout = "02/01/2006 03:04:05 pm"

// Sink receives every record after it has been written to the primary output.
type Sink interface {
	Send(rec core.LogRecord) error
}

// Logger emits sequenced log lines. All emission happens under one lock, so
// sequence numbers are gap-free and appear in the output in ascending order.
type Logger struct {
	mu     sync.Mutex
	seq    uint64
	w      io.Writer
	pid    int
	now    func() time.Time
	sinks  []Sink
	logger *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithPID overrides the process id written into each record.
func WithPID(pid int) Option {
	return func(l *Logger) { l.pid = pid }
}

// WithSink adds a secondary destination for records.
func WithSink(s Sink) Option {
	return func(l *Logger) { l.sinks = append(l.sinks, s) }
}

// New creates a sequenced logger writing to w. Write and sink failures are
// reported through logger.
func New(w io.Writer, logger *slog.Logger, opts ...Option) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{
		w:      w,
		pid:    os.Getpid(),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log assigns the next sequence number to message and writes it immediately.
func (l *Logger) Log(task core.TaskID, message string) core.LogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	rec := core.LogRecord{
		Seq:     l.seq,
		Time:    l.now(),
		Task:    task,
		PID:     l.pid,
		Message: message,
	}
	if _, err := io.WriteString(l.w, Format(rec)); err != nil {
		l.logger.Error("write log record", "seq", rec.Seq, "err", err)
	}
	for _, s := range l.sinks {
		if err := s.Send(rec); err != nil {
			l.logger.Warn("forward log record", "seq", rec.Seq, "err", err)
		}
	}
	return rec
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(task core.TaskID, format string, args ...any) core.LogRecord {
	return l.Log(task, fmt.Sprintf(format, args...))
}

// Count returns the last sequence number handed out.
func (l *Logger) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Format renders a record as a single output line, newline included.
func Format(rec core.LogRecord) string {
	return fmt.Sprintf("Logindex %d, thread %s, PID %d, %s: %s\n",
		rec.Seq, rec.Task, rec.PID, rec.Time.Format(TimeLayout), rec.Message)
}
