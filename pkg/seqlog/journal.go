package seqlog

import (
	"errors"
	"strconv"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/modoterra/tally/pkg/core"
)

// ErrJournalUnavailable is returned when no journald socket is reachable.
var ErrJournalUnavailable = errors.New("systemd journal is not available")

// JournalSink mirrors sequenced records into the systemd journal.
type JournalSink struct {
	identifier string
	send       func(message string, priority journal.Priority, vars map[string]string) error
}

// NewJournalSink connects to the local journal under the given syslog identifier.
func NewJournalSink(identifier string) (*JournalSink, error) {
	if !journal.Enabled() {
		return nil, ErrJournalUnavailable
	}
	return &JournalSink{identifier: identifier, send: journal.Send}, nil
}

// Send writes one record to the journal. The sequence number, task and
// process id travel as structured fields.
func (s *JournalSink) Send(rec core.LogRecord) error {
	return s.send(rec.Message, journal.PriInfo, journalFields(s.identifier, rec))
}

func journalFields(identifier string, rec core.LogRecord) map[string]string {
	return map[string]string{
		"SYSLOG_IDENTIFIER": identifier,
		"TALLY_SEQ":         strconv.FormatUint(rec.Seq, 10),
		"TALLY_TASK":        string(rec.Task),
		"TALLY_PID":         strconv.Itoa(rec.PID),
	}
}
