package bulk

import (
	"context"
	"testing"

	"github.com/lox/splittable/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelFillSingleChunkIsSequential(t *testing.T) {
	t.Parallel()

	dst := make([]int64, 100)
	require.NoError(t, ParallelInt64s(context.Background(), rng.FromSeed(11), dst, WithChunkSize(100)))

	ref := rng.FromSeed(11)
	for i, v := range dst {
		require.Equal(t, ref.Int64(), v, "index %d", i)
	}
}

func TestParallelFillChunkLayout(t *testing.T) {
	t.Parallel()

	dst := make([]int64, 4)
	require.NoError(t, ParallelInt64s(context.Background(), rng.FromSeed(11), dst, WithChunkSize(2)))

	// [0,4) halves into a split child for [0,2) and the parent for [2,4).
	parent := rng.FromSeed(11)
	child := parent.Split()
	assert.Equal(t, []int64{child.Int64(), child.Int64(), parent.Int64(), parent.Int64()}, dst)
}

func TestParallelFillIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	const n = 50_000
	var results [][]float64
	for _, workers := range []int{1, 2, 8, 32} {
		dst := make([]float64, n)
		err := ParallelFloat64s(context.Background(), rng.FromSeed(77), dst,
			WithChunkSize(1000), WithWorkers(workers))
		require.NoError(t, err)
		results = append(results, dst)
	}

	for i := 1; i < len(results); i++ {
		require.Equal(t, results[0], results[i])
	}
	for _, v := range results[0] {
		require.True(t, v >= 0 && v < 1)
	}
}

func TestParallelFillChunksDiffer(t *testing.T) {
	t.Parallel()

	dst := make([]int64, 8*64)
	require.NoError(t, ParallelInt64s(context.Background(), rng.FromSeed(5), dst, WithChunkSize(64)))

	seen := make(map[int64]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	assert.Len(t, seen, len(dst))
}

func TestParallelFillCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dst := make([]int64, 10_000)
	err := ParallelInt64s(ctx, rng.FromSeed(1), dst, WithChunkSize(10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParallelFillCustomDraw(t *testing.T) {
	t.Parallel()

	dst := make([]int32, 1000)
	err := ParallelFill(context.Background(), rng.FromSeed(9), dst, func(g *rng.Generator) int32 {
		v, _ := Int32N(g, 6)
		return v + 1
	}, WithChunkSize(100), WithWorkers(4))
	require.NoError(t, err)

	for _, v := range dst {
		require.True(t, v >= 1 && v <= 6)
	}
}
