package faker

import (
	mathrand "math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// lockedSource serializes access to a seeded source so one Faker can serve
// concurrent requests.
type lockedSource struct {
	mu  sync.Mutex
	src mathrand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// randReader adapts a *rand.Rand to io.Reader for uuid.NewRandomFromReader.
type randReader struct {
	rng *mathrand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}

// IntN returns a random int in [0, n). Non-positive n yields 0.
// Without a seed the global math/rand/v2 source is used.
func (f *Faker) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if f.rng != nil {
		return f.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

// float64 returns a random float64 in [0, 1).
func (f *Faker) float64() float64 {
	if f.rng != nil {
		return f.rng.Float64()
	}
	return mathrand.Float64()
}

// between returns a random int in [lo, hi].
func (f *Faker) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.IntN(hi-lo+1)
}

// pick returns a random element of list.
func (f *Faker) pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[f.IntN(len(list))]
}

// uuid generates a version 4 UUID. Seeded fakers draw the bytes from their
// PRNG so output is reproducible.
func (f *Faker) uuid() string {
	if f.rng == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(randReader{rng: f.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
