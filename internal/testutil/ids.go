package testutil

import (
	"fmt"
	"sync"
)

// FixedRunIDGenerator returns the same run ID every time.
//
// Scenarios run with a FixedRunIDGenerator produce byte-identical output,
// which keeps JSON golden snapshots stable.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a fixed run ID generator.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
//
// Implements engine.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// CountingRunIDGenerator yields prefix-0001, prefix-0002, ...
//
// Unlike engine.FixedGenerator it never runs out, and it can be reset so
// a suite can replay the same sequence of IDs.
//
// Thread-safety: all methods are safe for concurrent use.
type CountingRunIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewCountingRunIDGenerator creates a counter starting at 0.
// The first call to Generate() returns prefix-0001.
func NewCountingRunIDGenerator(prefix string) *CountingRunIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &CountingRunIDGenerator{prefix: prefix}
}

// Generate increments the counter and returns the next ID.
func (g *CountingRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Count returns how many IDs have been generated since the last Reset.
func (g *CountingRunIDGenerator) Count() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset restarts the sequence at prefix-0001.
func (g *CountingRunIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
