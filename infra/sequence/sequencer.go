// Package sequence provides the engine's monotonic sequence numbering.
package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence IDs. Accepted orders and
// their trades are stamped with these so logs and snapshots have a stable,
// deterministic ordering.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer that will issue start+1 first.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}
