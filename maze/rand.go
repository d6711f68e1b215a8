package maze

import (
	"math/rand"
	"time"
)

// Rand is the random source shared by maze generation and obstacle motion.
type Rand interface {
	// IntRange returns a uniformly distributed integer in [low, high], both inclusive.
	IntRange(low, high int) int
}

// SeededRand is a Rand backed by a seeded math/rand generator.
// It is not safe for concurrent use; one instance belongs to one session.
type SeededRand struct {
	rng  *rand.Rand
	seed int64
}

// NewRand returns a SeededRand. A zero seed picks one from the clock.
func NewRand(seed int64) *SeededRand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededRand{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// IntRange implements Rand.
func (r *SeededRand) IntRange(low, high int) int {
	if high <= low {
		return low
	}
	return low + r.rng.Intn(high-low+1)
}

// Seed returns the seed the generator was created with.
func (r *SeededRand) Seed() int64 {
	return r.seed
}
