// Package randutil adapts splittable generators to math/rand/v2 so the
// standard helpers (Shuffle, Perm, NormFloat64) can consume them.
package randutil

import (
	rand "math/rand/v2"

	"github.com/lox/splittable/rng"
)

// New returns a *rand.Rand backed by rng.FromSeed(seed). The same seed
// always yields the same sequence.
func New(seed int64) *rand.Rand {
	return rand.New(rng.FromSeed(seed))
}

// FromGenerator wraps g. The Rand takes ownership: g must not be used
// directly afterwards.
func FromGenerator(g *rng.Generator) *rand.Rand {
	return rand.New(g)
}

// Shuffle permutes items in place using r.
func Shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
