package bulk

import (
	"encoding/binary"
	"io"
)

// Fill fills b with pseudorandom bytes. Each full 8-byte word takes one
// Int64 draw in little-endian order, and a trailing partial word takes
// one more draw's low bytes.
func Fill(src Source, b []byte) {
	i := 0
	for ; i+8 <= len(b); i += 8 {
		binary.LittleEndian.PutUint64(b[i:], uint64(src.Int64()))
	}
	if i < len(b) {
		for r := uint64(src.Int64()); i < len(b); r >>= 8 {
			b[i] = byte(r)
			i++
		}
	}
}

type reader struct {
	src Source
}

// NewReader returns an io.Reader that fills every Read from src and never
// returns an error. Chunk boundaries affect the byte stream: a Read of a
// length that is not a multiple of 8 discards the rest of its last draw.
func NewReader(src Source) io.Reader {
	return &reader{src: src}
}

func (r *reader) Read(p []byte) (int, error) {
	Fill(r.src, p)
	return len(p), nil
}
