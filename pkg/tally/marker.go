package tally

import (
	"sync"
	"sync/atomic"

	"github.com/modoterra/tally/pkg/core"
)

// CreateResult reports what Marker.Create did.
type CreateResult int

const (
	// Created means the caller now owns the marker.
	Created CreateResult = iota
	// AlreadyLive means another task created the marker and still holds it.
	AlreadyLive
	// Retired means the marker was created and deleted earlier in the run.
	Retired
)

func (r CreateResult) String() string {
	switch r {
	case Created:
		return "created"
	case AlreadyLive:
		return "already-live"
	case Retired:
		return "retired"
	default:
		return "unknown"
	}
}

// markerToken is immutable once published.
type markerToken struct {
	owner   core.TaskID
	retired bool
}

// Marker is a shared singleton that is created once, by whichever task gets
// there first, and deleted once, by that same task.
//
// Creation happens under the create lock and deletion under the separate
// delete lock. Create and DeleteIfOwner do not lock; callers must hold the
// matching lock. The slot itself is published atomically so either lock
// domain observes the other's last transition.
type Marker struct {
	createMu sync.Mutex
	deleteMu sync.Mutex
	slot     atomic.Pointer[markerToken]

	creates atomic.Int32
	deletes atomic.Int32
}

// NewMarker returns an empty marker slot.
func NewMarker() *Marker {
	return &Marker{}
}

func (m *Marker) LockCreate()   { m.createMu.Lock() }
func (m *Marker) UnlockCreate() { m.createMu.Unlock() }
func (m *Marker) LockDelete()   { m.deleteMu.Lock() }
func (m *Marker) UnlockDelete() { m.deleteMu.Unlock() }

// Create makes id the owner if the slot has never been filled. It returns the
// outcome and the owner at the time of the call.
func (m *Marker) Create(id core.TaskID) (CreateResult, core.TaskID) {
	cur := m.slot.Load()
	switch {
	case cur == nil:
		m.slot.Store(&markerToken{owner: id})
		m.creates.Add(1)
		return Created, id
	case cur.retired:
		return Retired, cur.owner
	default:
		return AlreadyLive, cur.owner
	}
}

// DeleteIfOwner retires the marker when id is its creator and it is still live.
func (m *Marker) DeleteIfOwner(id core.TaskID) bool {
	cur := m.slot.Load()
	if cur == nil || cur.retired || cur.owner != id {
		return false
	}
	m.slot.Store(&markerToken{owner: id, retired: true})
	m.deletes.Add(1)
	return true
}

// Owner returns the creator and whether the marker is currently live.
func (m *Marker) Owner() (core.TaskID, bool) {
	cur := m.slot.Load()
	if cur == nil {
		return "", false
	}
	return cur.owner, !cur.retired
}

// Creates returns how many times the marker was created.
func (m *Marker) Creates() int { return int(m.creates.Load()) }

// Deletes returns how many times the marker was deleted.
func (m *Marker) Deletes() int { return int(m.deletes.Load()) }
