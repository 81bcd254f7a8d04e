// Package testutil provides deterministic stand-ins for nondeterministic
// sources so traces and logs are byte-identical between runs.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator generates request ids "<prefix>-1", "<prefix>-2", ...
//
// Implements api.IDGenerator. Thread-safety: safe for concurrent use via
// internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator. If prefix is empty, "req" is used.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// FixedGenerator returns the same id every time.
//
// Thread-safety: FixedGenerator is stateless and safe for concurrent use.
type FixedGenerator struct {
	id string
}

// NewFixedGenerator creates a fixed id generator.
func NewFixedGenerator(id string) *FixedGenerator {
	return &FixedGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedGenerator) Generate() string {
	return g.id
}
