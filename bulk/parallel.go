package bulk

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the largest slice a single worker fills without
// splitting further.
const DefaultChunkSize = 4096

type parallelOptions struct {
	chunkSize int
	workers   int
}

// ParallelOption configures ParallelFill.
type ParallelOption func(*parallelOptions)

// WithChunkSize sets the chunk size at which recursive splitting stops.
// Values below 1 are ignored.
func WithChunkSize(n int) ParallelOption {
	return func(o *parallelOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithWorkers caps the number of concurrently running chunks. Values below
// 1 are ignored.
func WithWorkers(n int) ParallelOption {
	return func(o *parallelOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

type chunk[G any] struct {
	gen    G
	lo, hi int
}

// ParallelFill fills dst with draw(gen) values, one generator per chunk.
//
// The slice is halved recursively: the lower half gets g.Split() and the
// upper half keeps the parent, until halves fit in the chunk size. The
// chunk layout depends only on len(dst) and the chunk size, so the output
// is the same for any worker count. g is advanced by the splits it
// performs and by the draws of the last chunk, which it fills itself.
func ParallelFill[G Splitter[G], T any](ctx context.Context, g G, dst []T, draw func(G) T, opts ...ParallelOption) error {
	o := parallelOptions{chunkSize: DefaultChunkSize, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	chunks := planChunks(g, 0, len(dst), o.chunkSize, nil)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for _, c := range chunks {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := c.lo; i < c.hi; i++ {
				dst[i] = draw(c.gen)
			}
			return nil
		})
	}
	return eg.Wait()
}

func planChunks[G Splitter[G]](g G, lo, hi, size int, out []chunk[G]) []chunk[G] {
	if hi-lo <= size {
		return append(out, chunk[G]{gen: g, lo: lo, hi: hi})
	}
	mid := int(uint(lo+hi) >> 1)
	out = planChunks(g.Split(), lo, mid, size, out)
	return planChunks(g, mid, hi, size, out)
}

// ParallelInt64s fills dst with Int64 draws, see ParallelFill.
func ParallelInt64s[G Splitter[G]](ctx context.Context, g G, dst []int64, opts ...ParallelOption) error {
	return ParallelFill(ctx, g, dst, func(g G) int64 { return g.Int64() }, opts...)
}

// ParallelFloat64s fills dst with Float64 draws, see ParallelFill.
func ParallelFloat64s[G Splitter[G]](ctx context.Context, g G, dst []float64, opts ...ParallelOption) error {
	return ParallelFill(ctx, g, dst, func(g G) float64 { return Float64(g) }, opts...)
}
