package rng

import "sync"

// Scripted replays fixed values in order. Once a queue is exhausted its last
// value repeats; an empty float queue yields 0 and an empty int queue yields min.
// It lets tests pin exact rolls (e.g. 49.99 against a 50% chance).
type Scripted struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

// NewScripted returns a Source that yields floats for Float100 calls
func NewScripted(floats ...float64) *Scripted {
	return &Scripted{floats: floats}
}

// WithInts sets the values returned by IntRange
func (s *Scripted) WithInts(ints ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = ints
	s.ii = 0
	return s
}

func (s *Scripted) Float100() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[min(s.fi, len(s.floats)-1)]
	s.fi++
	return v
}

// IntRange returns the next scripted int clamped to [lo, hi]
func (s *Scripted) IntRange(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ints) == 0 || lo > hi {
		return lo
	}
	v := s.ints[min(s.ii, len(s.ints)-1)]
	s.ii++
	return max(lo, min(v, hi))
}
