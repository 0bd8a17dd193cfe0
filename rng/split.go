package rng

import (
	"errors"
	"reflect"
)

// ErrNilSource is returned by FromSource when no entropy source is given.
var ErrNilSource = errors.New("rng: nil entropy source")

// EntropySource supplies raw 64-bit draws for seeding new generators.
// *Generator satisfies it.
type EntropySource interface {
	Int64() int64
}

// Split returns a new generator whose state is drawn from g. It consumes two
// advances of g: one output draw for the child's seed and one raw advance
// mixed into the child's gamma. The child shares nothing with g afterwards.
func (g *Generator) Split() *Generator {
	seed := uint64(g.Int64())
	return &Generator{seed: seed, gamma: mixGamma(g.advance())}
}

// FromSource builds a generator from two draws of src, the first for the
// seed and the second for the gamma. Only src is advanced. A nil src, or a
// nil pointer of any type, is rejected with ErrNilSource before any draw.
func FromSource(src EntropySource) (*Generator, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if v := reflect.ValueOf(src); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, ErrNilSource
	}

	seed := uint64(src.Int64())
	return &Generator{seed: seed, gamma: mixGamma(uint64(src.Int64()))}, nil
}
