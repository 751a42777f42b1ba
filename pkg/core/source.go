package core

import (
	"fmt"
	"strings"
)

// SourceKind identifies how a line source is opened.
type SourceKind string

const (
	KindFile    SourceKind = "file"
	KindStdin   SourceKind = "stdin"
	KindExec    SourceKind = "exec"
	KindJournal SourceKind = "journal"
)

// SourceID names a single line source.
// Format: kind:target, where a bare path means file and "-" means stdin.
type SourceID struct {
	Kind   SourceKind `json:"kind"`
	Target string     `json:"target,omitempty"`
}

// ParseSourceID converts a source identifier into its kind and target.
func ParseSourceID(s string) (SourceID, error) {
	if s == "" {
		return SourceID{}, fmt.Errorf("empty source identifier")
	}
	if s == "-" {
		return SourceID{Kind: KindStdin}, nil
	}

	prefix, target, found := strings.Cut(s, ":")
	if !found {
		return SourceID{Kind: KindFile, Target: s}, nil
	}

	switch kind := SourceKind(prefix); kind {
	case KindStdin:
		if target != "" {
			return SourceID{}, fmt.Errorf("invalid source %q: stdin takes no target", s)
		}
		return SourceID{Kind: KindStdin}, nil
	case KindFile, KindExec, KindJournal:
		if strings.TrimSpace(target) == "" {
			return SourceID{}, fmt.Errorf("invalid source %q: %s requires a target", s, kind)
		}
		return SourceID{Kind: kind, Target: target}, nil
	default:
		// Not a known kind; colons are legal in file names.
		return SourceID{Kind: KindFile, Target: s}, nil
	}
}

// MustParseSourceID is like ParseSourceID but panics on error. Intended for tests
// and static tables.
func MustParseSourceID(s string) SourceID {
	id, err := ParseSourceID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String renders the identifier the way users type it. File sources render as
// their bare path.
func (id SourceID) String() string {
	switch id.Kind {
	case KindStdin:
		return "-"
	case KindFile:
		return id.Target
	default:
		return fmt.Sprintf("%s:%s", id.Kind, id.Target)
	}
}

// TaskID identifies a concurrently running task in log output.
type TaskID string

// MainTask is the identity of the dispatching task.
const MainTask TaskID = "main"

// WorkerTaskID returns the identity of the n-th worker (1-based).
func WorkerTaskID(n int) TaskID {
	return TaskID(fmt.Sprintf("worker-%d", n))
}
