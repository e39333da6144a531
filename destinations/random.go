/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package destinations

import (
	"math/rand/v2"
	"sync"
)

// Source supplies random indexes. Implementations must be safe for
// concurrent use, since one Source is shared by every request.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type defaultSource struct{}

func (defaultSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource returns a Source backed by the runtime's global generator.
func DefaultSource() Source {
	return defaultSource{}
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rnd.IntN(n)
}

// NewSource returns a deterministic Source seeded with seed.
func NewSource(seed uint64) Source {
	return &lockedSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// shuffle is a Fisher-Yates shuffle.
func shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
