// Package rng provides the injectable random source used by the draw,
// upgrade and wager engines.
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness provider for game rolls.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Float100 returns a uniform real in [0, 100).
	Float100() float64
	// IntRange returns a uniform integer in [min, max]. It returns min when min > max.
	IntRange(min, max int) int
}

type system struct{}

// System returns a Source backed by the process-wide generator
func System() Source {
	return system{}
}

func (system) Float100() float64 {
	return rand.Float64() * 100 //nolint:gosec // Game logic randomness, not security critical
}

func (system) IntRange(min, max int) int {
	if min > max {
		return min
	}
	return rand.IntN(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// Seeded is a deterministic Source for simulations and statistical tests
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded creates a deterministic Source from seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec
}

func (s *Seeded) Float100() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() * 100
}

func (s *Seeded) IntRange(min, max int) int {
	if min > max {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(max-min+1) + min
}
