// Package bulk builds bounded draws, byte filling, streams and parallel
// fills on top of any generator exposing Int32, Int64 and Split.
//
// The bounded algorithms reproduce the reference rejection schemes exactly,
// so a given generator state yields the same values here as in other
// implementations of the same generator.
package bulk

import (
	"errors"
	"math"
)

var (
	ErrBadBound = errors.New("bulk: bound must be positive")
	ErrBadRange = errors.New("bulk: bound must be greater than origin")
	ErrBadSize  = errors.New("bulk: size must be non-negative")
)

// Source is the value-producing half of a generator.
type Source interface {
	Int32() int32
	Int64() int64
}

// Splitter is a Source that can mint independent generators of its own type.
type Splitter[G any] interface {
	Source
	Split() G
}

// Int32N returns a uniform value in [0, bound).
func Int32N(src Source, bound int32) (int32, error) {
	if bound <= 0 {
		return 0, ErrBadBound
	}
	return int32n(src, bound), nil
}

func int32n(src Source, bound int32) int32 {
	r := src.Int32()
	m := bound - 1
	if bound&m == 0 {
		return r & m
	}
	for u := int32(uint32(r) >> 1); ; u = int32(uint32(src.Int32()) >> 1) {
		r = u % bound
		if u+m-r >= 0 {
			return r
		}
	}
}

// Int32Range returns a uniform value in [origin, bound).
func Int32Range(src Source, origin, bound int32) (int32, error) {
	if origin >= bound {
		return 0, ErrBadRange
	}
	return int32Range(src, origin, bound), nil
}

func int32Range(src Source, origin, bound int32) int32 {
	r := src.Int32()
	n := bound - origin
	m := n - 1
	switch {
	case n&m == 0:
		return (r & m) + origin
	case n > 0:
		for u := int32(uint32(r) >> 1); ; u = int32(uint32(src.Int32()) >> 1) {
			r = u % n
			if u+m-r >= 0 {
				return r + origin
			}
		}
	default:
		// The range is wider than int32 can count.
		for r < origin || r >= bound {
			r = src.Int32()
		}
		return r
	}
}

// Int64N returns a uniform value in [0, bound).
func Int64N(src Source, bound int64) (int64, error) {
	if bound <= 0 {
		return 0, ErrBadBound
	}
	return int64n(src, bound), nil
}

func int64n(src Source, bound int64) int64 {
	r := src.Int64()
	m := bound - 1
	if bound&m == 0 {
		return r & m
	}
	for u := int64(uint64(r) >> 1); ; u = int64(uint64(src.Int64()) >> 1) {
		r = u % bound
		if u+m-r >= 0 {
			return r
		}
	}
}

// Int64Range returns a uniform value in [origin, bound).
func Int64Range(src Source, origin, bound int64) (int64, error) {
	if origin >= bound {
		return 0, ErrBadRange
	}
	return int64Range(src, origin, bound), nil
}

func int64Range(src Source, origin, bound int64) int64 {
	r := src.Int64()
	n := bound - origin
	m := n - 1
	switch {
	case n&m == 0:
		return (r & m) + origin
	case n > 0:
		for u := int64(uint64(r) >> 1); ; u = int64(uint64(src.Int64()) >> 1) {
			r = u % n
			if u+m-r >= 0 {
				return r + origin
			}
		}
	default:
		for r < origin || r >= bound {
			r = src.Int64()
		}
		return r
	}
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func Float64(src Source) float64 {
	return float64(uint64(src.Int64())>>11) * 0x1.0p-53
}

// Float64N returns a uniform value in [0, bound). bound must be positive
// and finite.
func Float64N(src Source, bound float64) (float64, error) {
	if !(bound > 0 && bound < math.Inf(1)) {
		return 0, ErrBadBound
	}
	r := Float64(src) * bound
	if r >= bound {
		r = math.Nextafter(bound, math.Inf(-1))
	}
	return r, nil
}

// Float64Range returns a uniform value in [origin, bound). The width of the
// range must be finite.
func Float64Range(src Source, origin, bound float64) (float64, error) {
	if !validFloatRange(origin, bound) {
		return 0, ErrBadRange
	}
	return float64Range(src, origin, bound), nil
}

func validFloatRange(origin, bound float64) bool {
	return origin < bound && bound-origin < math.Inf(1)
}

func float64Range(src Source, origin, bound float64) float64 {
	r := Float64(src)*(bound-origin) + origin
	if r >= bound {
		r = math.Nextafter(bound, math.Inf(-1))
	}
	return r
}

// Bool returns a uniform boolean.
func Bool(src Source) bool {
	return src.Int32() < 0
}
