package core

import "time"

// LogRecord is a single entry emitted by the sequenced logger.
type LogRecord struct {
	Seq     uint64    `json:"seq"`
	Time    time.Time `json:"time"`
	Task    TaskID    `json:"task"`
	PID     int       `json:"pid"`
	Message string    `json:"message"`
}
