package design

import (
	"sync/atomic"
)

// Snapshot is a Design together with the generation it was published as.
// Resolution caches key on the generation.
type Snapshot struct {
	Design     *Design
	Generation uint64
}

// Store publishes the current Design. Readers take a Snapshot and use it for
// a whole build; Swap installs a new Design without disturbing them.
type Store struct {
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
}

// NewStore returns a store publishing d as generation 1.
func NewStore(d *Design) *Store {
	s := &Store{}
	s.Swap(d)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap publishes d and returns its generation.
func (s *Store) Swap(d *Design) uint64 {
	if d == nil {
		panic("design: Store.Swap called with nil design")
	}
	gen := s.generation.Add(1)
	s.current.Store(&Snapshot{Design: d, Generation: gen})
	return gen
}
