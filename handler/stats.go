package handler

import (
	"sync/atomic"

	"github.com/philipp01105/streamlog/core"
)

// Stats counts dispatched records per level and callback replacements.
type Stats struct {
	dispatched [core.TraceLevel + 1]atomic.Uint64
	invalid    atomic.Uint64
	replaced   atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDispatched atomically increments the counter for level
func (s *Stats) IncrementDispatched(level core.Level) {
	if !level.Valid() {
		s.invalid.Add(1)
		return
	}
	s.dispatched[level].Add(1)
}

// IncrementReplaced atomically increments the callback replacement counter
func (s *Stats) IncrementReplaced() {
	s.replaced.Add(1)
}

// GetDispatched returns the dispatched count for a level
func (s *Stats) GetDispatched(level core.Level) uint64 {
	if !level.Valid() {
		return s.invalid.Load()
	}
	return s.dispatched[level].Load()
}

// GetTotalDispatched returns the dispatched count across all levels
func (s *Stats) GetTotalDispatched() uint64 {
	total := s.invalid.Load()
	for i := range s.dispatched {
		total += s.dispatched[i].Load()
	}
	return total
}

// GetReplaced returns how often the callback was replaced
func (s *Stats) GetReplaced() uint64 {
	return s.replaced.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dispatched {
		s.dispatched[i].Store(0)
	}
	s.invalid.Store(0)
	s.replaced.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Dispatched      map[core.Level]uint64
	DispatchedTotal uint64
	Replaced        uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Dispatched: make(map[core.Level]uint64, len(s.dispatched)),
		Replaced:   s.GetReplaced(),
	}
	for l := core.OffLevel; l <= core.TraceLevel; l++ {
		n := s.dispatched[l].Load()
		snap.Dispatched[l] = n
		snap.DispatchedTotal += n
	}
	snap.DispatchedTotal += s.invalid.Load()
	return snap
}
