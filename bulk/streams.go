package bulk

import "iter"

// Int32s returns a sequence of n Int32 draws from src.
func Int32s(src Source, n int64) (iter.Seq[int32], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	return generate(n, src.Int32), nil
}

// Int32sRange returns a sequence of n draws from [origin, bound).
func Int32sRange(src Source, n int64, origin, bound int32) (iter.Seq[int32], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if origin >= bound {
		return nil, ErrBadRange
	}
	return generate(n, func() int32 { return int32Range(src, origin, bound) }), nil
}

// Int64s returns a sequence of n Int64 draws from src.
func Int64s(src Source, n int64) (iter.Seq[int64], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	return generate(n, src.Int64), nil
}

// Int64sRange returns a sequence of n draws from [origin, bound).
func Int64sRange(src Source, n int64, origin, bound int64) (iter.Seq[int64], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if origin >= bound {
		return nil, ErrBadRange
	}
	return generate(n, func() int64 { return int64Range(src, origin, bound) }), nil
}

// Float64s returns a sequence of n draws from [0, 1).
func Float64s(src Source, n int64) (iter.Seq[float64], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	return generate(n, func() float64 { return Float64(src) }), nil
}

// Float64sRange returns a sequence of n draws from [origin, bound).
func Float64sRange(src Source, n int64, origin, bound float64) (iter.Seq[float64], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if !validFloatRange(origin, bound) {
		return nil, ErrBadRange
	}
	return generate(n, func() float64 { return float64Range(src, origin, bound) }), nil
}

// Splits returns a sequence of n generators split from g. Each child is
// produced when the consumer asks for it.
func Splits[G Splitter[G]](g G, n int64) (iter.Seq[G], error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	return generate(n, g.Split), nil
}

func generate[T any](n int64, next func() T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := int64(0); i < n; i++ {
			if !yield(next()) {
				return
			}
		}
	}
}
