// Package random provides the single seedable randomness source injected
// into every component that picks topics, templates, ratings or passkey
// digits. Tests construct a fixed-seed source and assert exact outputs.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness contract shared by the question generator,
// feedback synthesizer, ATS scorer and passkey generator.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// lockedSource wraps math/rand with a mutex so one Source can be shared
// across request goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded with the given seed.
func New(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Source seeded from the current time.
func NewTimeSeeded() Source {
	return New(time.Now().UnixNano())
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}
