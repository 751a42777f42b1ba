// Package tally counts names read from several line sources by concurrent
// workers into one shared, insertion-ordered table.
//
// Four locks are involved and none is ever taken while another is held:
// the sequenced logger's lock, the marker's create lock, the aggregate lock
// and the marker's delete lock. A worker holds the aggregate lock for its
// whole scan, so the read-and-insert phases of different workers never
// overlap.
package tally
