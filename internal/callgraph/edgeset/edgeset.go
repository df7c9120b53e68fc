// Package edgeset implements the concurrent set of already-logged call edges.
//
// Every instrumented call produces a candidate edge; almost all of them have
// been seen before. The set answers the only question the runtime cares
// about: "is this call the first to observe the edge?" — and it must answer
// it atomically, because any number of goroutines may race on the identical
// edge. Whichever call performs the insertion wins responsibility for
// logging the edge; every other racer is told to stand down.
//
// The set is append-only and grows monotonically for the life of the
// process. There is no eviction: an edge logged once must never be logged
// again, which is exactly the guarantee a shrinking set would break.
package edgeset

import "sync"

// Edge is a single caller→callee relationship keyed by resolved symbol
// names, not raw addresses. Many distinct call-site addresses collapse into
// one Edge once symbolized, which is intended: downstream consumers work at
// function granularity.
//
// Both names are non-empty by the time an Edge reaches the set; the hook
// drops calls with unresolved endpoints before constructing one.
type Edge struct {
	// Callee is the function being called.
	Callee string

	// Caller is the function making the call.
	Caller string
}

// Set is a concurrent, append-only collection of claimed edges.
//
// The zero value is ready to use. A single Set is safe for concurrent use by
// any number of goroutines without external locking.
type Set struct {
	// edges maps Edge → struct{}. sync.Map fits the workload: reads
	// (repeat edges) vastly outnumber writes (first sightings), and
	// LoadOrStore provides the atomic insert-if-absent the claim
	// protocol needs.
	edges sync.Map

	// size tracks the number of claimed edges for Len. Maintained only
	// on successful insertion.
	mu   sync.Mutex
	size int
}

// TryClaim atomically inserts e into the set.
//
// It returns true only if this call performed the insertion, i.e. the edge
// had never been claimed before. When multiple goroutines race on the same
// edge, exactly one of them observes true; the rest observe false. This is
// the sole serialization point deciding which caller logs the edge.
func (s *Set) TryClaim(e Edge) bool {
	_, loaded := s.edges.LoadOrStore(e, struct{}{})
	if loaded {
		return false
	}
	s.mu.Lock()
	s.size++
	s.mu.Unlock()
	return true
}

// Contains reports whether e has been claimed.
func (s *Set) Contains(e Edge) bool {
	_, ok := s.edges.Load(e)
	return ok
}

// Len returns the number of claimed edges.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}
