package tally

import "sync"

// Entry is a distinct name and the number of times it was seen.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Aggregate is a name to count table that remembers first-insertion order.
// It does no locking of its own: callers hold Lock for the whole sequence of
// Lookup and Increment calls they make.
type Aggregate struct {
	mu      sync.Mutex
	entries []*Entry
	index   map[string]*Entry
}

// NewAggregate returns an empty table.
func NewAggregate() *Aggregate {
	return &Aggregate{index: make(map[string]*Entry)}
}

// Lock acquires the table's lock.
func (a *Aggregate) Lock() { a.mu.Lock() }

// Unlock releases the table's lock.
func (a *Aggregate) Unlock() { a.mu.Unlock() }

// Lookup returns the entry for name, or nil.
func (a *Aggregate) Lookup(name string) *Entry {
	return a.index[name]
}

// Increment adds one occurrence of name, appending a new entry on first sight.
func (a *Aggregate) Increment(name string) {
	if e := a.Lookup(name); e != nil {
		e.Count++
		return
	}
	e := &Entry{Name: name, Count: 1}
	a.entries = append(a.entries, e)
	a.index[name] = e
}

// Len returns the number of distinct names.
func (a *Aggregate) Len() int { return len(a.entries) }

// Entries returns a copy of the table in insertion order.
func (a *Aggregate) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	for i, e := range a.entries {
		out[i] = *e
	}
	return out
}

// Total returns the sum of all counts.
func (a *Aggregate) Total() int {
	n := 0
	for _, e := range a.entries {
		n += e.Count
	}
	return n
}
