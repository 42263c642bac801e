package testutil

import (
	"fmt"
	"sync"
)

// DeterministicIDs generates predictable record IDs for tests.
//
// IDs have the form "<prefix>-0001", "<prefix>-0002", ... and sort in
// generation order, like the UUIDv7 ids they stand in for.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicIDs struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewDeterministicIDs creates a generator. An empty prefix means "id".
func NewDeterministicIDs(prefix string) *DeterministicIDs {
	if prefix == "" {
		prefix = "id"
	}
	return &DeterministicIDs{prefix: prefix}
}

// Next returns the next ID.
func (g *DeterministicIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Issued returns how many IDs have been generated since the last Reset.
func (g *DeterministicIDs) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset restarts the sequence so the next call to Next returns the first ID.
func (g *DeterministicIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
