// Package rng implements a splittable pseudorandom generator.
//
// A Generator is a (seed, gamma) pair: each draw adds the odd gamma to the
// seed and passes the result through a mixing function. Generators are not
// safe for concurrent use. Instead of sharing one, call Split to hand each
// goroutine its own generator; parent and child share no mutable state.
//
// The sequences are bit-exact with other SplitMix-based "splittable random"
// implementations for the same seed. They are not cryptographically secure.
package rng

import (
	"fmt"
	rand "math/rand/v2"
)

var _ rand.Source = (*Generator)(nil)

// Generator is a splittable pseudorandom generator. The zero value is not
// useful; construct one with FromSeed, New, a Seeder, Split or FromSource.
type Generator struct {
	seed  uint64
	gamma uint64 // always odd
}

// FromSeed returns a generator with the given seed and the default gamma.
// Two generators built from the same seed produce identical sequences.
func FromSeed(seed int64) *Generator {
	return &Generator{seed: uint64(seed), gamma: goldenGamma}
}

// advance steps the seed by gamma, wrapping mod 2^64.
func (g *Generator) advance() uint64 {
	g.seed += g.gamma
	return g.seed
}

// Int64 returns the next pseudorandom 64-bit value.
func (g *Generator) Int64() int64 {
	return int64(mix64(g.advance()))
}

// Int32 returns the next pseudorandom 32-bit value.
func (g *Generator) Int32() int32 {
	return mix32(g.advance())
}

// Uint64 is Int64 reinterpreted as unsigned, so a *Generator can back a
// math/rand/v2 Rand.
func (g *Generator) Uint64() uint64 {
	return mix64(g.advance())
}

// State returns the current seed and gamma.
func (g *Generator) State() (seed, gamma uint64) {
	return g.seed, g.gamma
}

func (g *Generator) String() string {
	return fmt.Sprintf("seed=%016x gamma=%016x", g.seed, g.gamma)
}
