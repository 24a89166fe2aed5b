// Package rng provides the deterministic random stream that drives all
// generation. Every run owns exactly one Stream; two streams built from the
// same seed and driven through the same draw sequence produce identical
// values, which is what makes seeds reproducible.
package rng

import "math/rand"

// Stream is a seeded pseudorandom source. It is not safe for concurrent use;
// each generation run owns its stream exclusively.
type Stream struct {
	seed uint64
	src  *rand.Rand
}

// New creates a stream from a 64-bit seed.
func New(seed uint64) *Stream {
	return &Stream{
		seed: seed,
		src:  rand.New(rand.NewSource(int64(seed))),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Float returns a uniform value in [min, max).
func (s *Stream) Float(min, max float64) float64 {
	return min + s.src.Float64()*(max-min)
}

// IntBetween returns a uniform integer in [min, max], inclusive on both ends.
// If max < min the lower bound is returned; invalid ranges come from
// malformed node config and must not panic mid-traversal.
func (s *Stream) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.src.Intn(max-min+1)
}

// Intn returns a uniform integer in [0, n).
func (s *Stream) Intn(n int) int {
	return s.src.Intn(n)
}

// Bool returns true with probability p.
func (s *Stream) Bool(p float64) bool {
	return s.src.Float64() < p
}
