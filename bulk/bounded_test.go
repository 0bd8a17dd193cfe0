package bulk

import (
	"math"
	"testing"

	"github.com/lox/splittable/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawN[T any](t *testing.T, n int, f func() (T, error)) []T {
	t.Helper()
	out := make([]T, n)
	for i := range out {
		v, err := f()
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestBoundedOracles(t *testing.T) {
	t.Parallel()

	t.Run("Int32N non power of two", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 8, func() (int32, error) { return Int32N(g, 10) })
		assert.Equal(t, []int32{6, 3, 3, 1, 5, 7, 1, 9}, got)
	})

	t.Run("Int32N power of two", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 8, func() (int32, error) { return Int32N(g, 16) })
		assert.Equal(t, []int32{0, 2, 11, 3, 11, 7, 14, 3}, got)
	})

	t.Run("Int64N", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 6, func() (int64, error) { return Int64N(g, 1000) })
		assert.Equal(t, []int64{243, 902, 673, 101, 837, 152}, got)
	})

	t.Run("Int32Range", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 8, func() (int32, error) { return Int32Range(g, -5, 5) })
		assert.Equal(t, []int32{1, -2, -2, -4, 0, 2, -4, 4}, got)
	})

	t.Run("Int32Range full width", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 4, func() (int32, error) { return Int32Range(g, math.MinInt32, math.MaxInt32) })
		assert.Equal(t, []int32{-1629577904, 699215106, 1568770107, 986973043}, got)
	})

	t.Run("Int64Range", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := drawN(t, 6, func() (int64, error) { return Int64Range(g, 100, 200) })
		assert.Equal(t, []int64{143, 102, 173, 101, 137, 152}, got)
	})

	t.Run("Float64", func(t *testing.T) {
		g := rng.FromSeed(7)
		assert.Equal(t, []float64{0.3898297483912715, 0.01678829452815611, 0.9007606806068834},
			[]float64{Float64(g), Float64(g), Float64(g)})
	})

	t.Run("Bool", func(t *testing.T) {
		g := rng.FromSeed(7)
		got := make([]bool, 8)
		for i := range got {
			got[i] = Bool(g)
		}
		assert.Equal(t, []bool{true, false, false, false, true, false, true, true}, got)
	})
}

func TestBoundedValidation(t *testing.T) {
	t.Parallel()

	g := rng.FromSeed(1)
	before := *g

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"Int32N zero", func() error { _, err := Int32N(g, 0); return err }, ErrBadBound},
		{"Int32N negative", func() error { _, err := Int32N(g, -3); return err }, ErrBadBound},
		{"Int64N zero", func() error { _, err := Int64N(g, 0); return err }, ErrBadBound},
		{"Int32Range equal", func() error { _, err := Int32Range(g, 4, 4); return err }, ErrBadRange},
		{"Int64Range inverted", func() error { _, err := Int64Range(g, 10, -10); return err }, ErrBadRange},
		{"Float64N zero", func() error { _, err := Float64N(g, 0); return err }, ErrBadBound},
		{"Float64N inf", func() error { _, err := Float64N(g, math.Inf(1)); return err }, ErrBadBound},
		{"Float64N NaN", func() error { _, err := Float64N(g, math.NaN()); return err }, ErrBadBound},
		{"Float64Range inverted", func() error { _, err := Float64Range(g, 1, 0); return err }, ErrBadRange},
		{"Float64Range infinite width", func() error {
			_, err := Float64Range(g, -math.MaxFloat64, math.MaxFloat64)
			return err
		}, ErrBadRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), tt.want)
		})
	}

	// Rejected arguments never consume a draw.
	assert.Equal(t, before, *g)
}

func TestBoundedRanges(t *testing.T) {
	t.Parallel()

	g := rng.FromSeed(2024)
	for i := 0; i < 10_000; i++ {
		v32, err := Int32Range(g, -3, 1<<30+7)
		require.NoError(t, err)
		require.True(t, v32 >= -3 && v32 < 1<<30+7)

		v64, err := Int64Range(g, math.MinInt64, math.MaxInt64)
		require.NoError(t, err)
		require.True(t, v64 < math.MaxInt64)

		f, err := Float64Range(g, -2.5, 2.5)
		require.NoError(t, err)
		require.True(t, f >= -2.5 && f < 2.5)

		f, err = Float64N(g, 1e-300)
		require.NoError(t, err)
		require.True(t, f >= 0 && f < 1e-300)
	}
}

func TestInt32NRoughlyUniform(t *testing.T) {
	t.Parallel()

	g := rng.FromSeed(31337)
	var counts [3]int
	for i := 0; i < 30_000; i++ {
		v, err := Int32N(g, 3)
		require.NoError(t, err)
		counts[v]++
	}
	for i, c := range counts {
		assert.InDelta(t, 10_000, c, 500, "bucket %d", i)
	}
}
