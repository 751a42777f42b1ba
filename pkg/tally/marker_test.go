package tally

import (
	"sync"
	"testing"

	"github.com/modoterra/tally/pkg/core"
)

func TestMarkerLifecycle(t *testing.T) {
	m := NewMarker()

	if res, owner := m.Create("worker-1"); res != Created || owner != "worker-1" {
		t.Fatalf("first create: got %v/%s", res, owner)
	}
	if res, owner := m.Create("worker-2"); res != AlreadyLive || owner != "worker-1" {
		t.Fatalf("second create: got %v/%s", res, owner)
	}
	if m.DeleteIfOwner("worker-2") {
		t.Fatal("non-owner must not delete")
	}
	if owner, live := m.Owner(); !live || owner != "worker-1" {
		t.Fatalf("expected live marker owned by worker-1, got %s/%v", owner, live)
	}
	if !m.DeleteIfOwner("worker-1") {
		t.Fatal("owner should delete")
	}
	if m.DeleteIfOwner("worker-1") {
		t.Fatal("marker must not be deleted twice")
	}
	if res, _ := m.Create("worker-3"); res != Retired {
		t.Fatalf("create after delete: got %v", res)
	}
	if m.Creates() != 1 || m.Deletes() != 1 {
		t.Errorf("creates=%d deletes=%d", m.Creates(), m.Deletes())
	}
}

func TestMarkerSingleCreateAndDeleteUnderContention(t *testing.T) {
	for round := 0; round < 20; round++ {
		m := NewMarker()
		var (
			mu       sync.Mutex
			creators []core.TaskID
			deleters []core.TaskID
		)

		var wg sync.WaitGroup
		for i := 1; i <= 16; i++ {
			id := core.WorkerTaskID(i)
			wg.Go(func() {
				m.LockCreate()
				res, _ := m.Create(id)
				m.UnlockCreate()

				m.LockDelete()
				deleted := m.DeleteIfOwner(id)
				m.UnlockDelete()

				mu.Lock()
				if res == Created {
					creators = append(creators, id)
				}
				if deleted {
					deleters = append(deleters, id)
				}
				mu.Unlock()
			})
		}
		wg.Wait()

		if len(creators) != 1 || len(deleters) != 1 {
			t.Fatalf("round %d: creators=%v deleters=%v", round, creators, deleters)
		}
		if creators[0] != deleters[0] {
			t.Fatalf("round %d: created by %s, deleted by %s", round, creators[0], deleters[0])
		}
		if _, live := m.Owner(); live {
			t.Fatalf("round %d: marker still live", round)
		}
	}
}

func TestCreateResultString(t *testing.T) {
	for res, want := range map[CreateResult]string{Created: "created", AlreadyLive: "already-live", Retired: "retired", 9: "unknown"} {
		if res.String() != want {
			t.Errorf("%d: got %q, want %q", int(res), res.String(), want)
		}
	}
}
