package bulk

import (
	"io"
	"testing"

	"github.com/lox/splittable/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillOracle(t *testing.T) {
	t.Parallel()

	b := make([]byte, 11)
	Fill(rng.FromSeed(7), b)
	assert.Equal(t, []byte{0xd7, 0x0d, 0x32, 0x59, 0xe4, 0xe1, 0xcb, 0x63, 0x1c, 0x66, 0x3c}, b)
}

func TestFillDrawCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size  int
		draws int
	}{
		{0, 0},
		{1, 1},
		{7, 1},
		{8, 1},
		{9, 2},
		{64, 8},
		{65, 9},
	}

	for _, tt := range tests {
		g := rng.FromSeed(5)
		Fill(g, make([]byte, tt.size))

		ref := rng.FromSeed(5)
		for i := 0; i < tt.draws; i++ {
			ref.Int64()
		}
		assert.Equal(t, ref.String(), g.String(), "size %d", tt.size)
	}
}

func TestReader(t *testing.T) {
	t.Parallel()

	r := NewReader(rng.FromSeed(7))
	buf := make([]byte, 16)
	n, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	want := make([]byte, 16)
	Fill(rng.FromSeed(7), want)
	assert.Equal(t, want, buf)
}
