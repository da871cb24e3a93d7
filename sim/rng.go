package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Source is the opaque random source consumed by the simulation.
// *rand.Rand satisfies it; tests substitute scripted sources.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// ExpFloat64 returns an exponential draw with rate 1.
	ExpFloat64() float64
	// Intn returns a uniform draw in [0, n).
	Intn(n int) int
}

// RouterStream feeds fog node selection and the offload decision.
const RouterStream = "router"

// SensorStream names the arrival stream of sensor id.
func SensorStream(id int) string {
	return fmt.Sprintf("sensor_%d", id)
}

// Streams derives one independent generator per named stream from a single
// run seed. Stream "x" of seed s is seeded with s XOR fnv1a64("x"), so
// adding a sensor leaves the router stream and every other sensor's
// arrivals untouched.
//
// Thread-safety: NOT thread-safe. One Streams per run.
type Streams struct {
	seed   int64
	byName map[string]*rand.Rand
}

// NewStreams returns the stream set for a run seeded with seed.
func NewStreams(seed int64) *Streams {
	return &Streams{seed: seed, byName: make(map[string]*rand.Rand)}
}

// Get returns the generator for name, creating it on first use. Repeated
// calls return the same instance, continuing its sequence.
func (s *Streams) Get(name string) *rand.Rand {
	if r, ok := s.byName[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(streamSeed(s.seed, name)))
	s.byName[name] = r
	return r
}

// Seed returns the run seed the streams derive from.
func (s *Streams) Seed() int64 {
	return s.seed
}

func streamSeed(seed int64, name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return seed ^ int64(h.Sum64())
}
