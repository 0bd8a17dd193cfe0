package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/lox/splittable/bulk"
	"github.com/lox/splittable/rng"
)

// GenCmd prints values drawn from one generator.
type GenCmd struct {
	Seed   *int64   `help:"Seed for a reproducible stream (default: from the process seeder)"`
	Count  int64    `short:"n" default:"10" help:"Number of values"`
	Kind   string   `default:"int64" enum:"int32,int64,float64,bool,bytes" help:"Value kind (int32, int64, float64, bool, bytes)"`
	Origin *string `help:"Inclusive lower bound for ranged draws"`
	Bound  *string `help:"Exclusive upper bound for ranged draws"`
	Digest bool     `help:"Print an xxhash64 digest of the values instead of the values"`
}

func (c *GenCmd) Run(a *app) error {
	if c.Count < 0 {
		return fmt.Errorf("%w: %d", bulk.ErrBadSize, c.Count)
	}

	g := a.generator(c.Seed)
	a.logger.Debug().Stringer("generator", g).Int64("count", c.Count).Str("kind", c.Kind).Msg("Generating")

	if c.Kind == "bytes" {
		return c.writeBytes(a.out, g)
	}

	next, err := c.drawer(g)
	if err != nil {
		return err
	}

	digest := xxhash.New()
	var word [8]byte
	for i := int64(0); i < c.Count; i++ {
		bits, text := next()
		if c.Digest {
			binary.LittleEndian.PutUint64(word[:], bits)
			_, _ = digest.Write(word[:])
			continue
		}
		if _, err := fmt.Fprintln(a.out, text); err != nil {
			return err
		}
	}

	if c.Digest {
		_, err := fmt.Fprintf(a.out, "%016x\n", digest.Sum64())
		return err
	}
	return nil
}

// drawer returns a function yielding each value as its 64-bit pattern
// (for the digest) and its printed form.
func (c *GenCmd) drawer(g *rng.Generator) (func() (uint64, string), error) {
	ranged := c.Origin != nil || c.Bound != nil
	if ranged && (c.Origin == nil || c.Bound == nil) {
		return nil, fmt.Errorf("%w: --origin and --bound must be given together", bulk.ErrBadRange)
	}

	switch c.Kind {
	case "int32":
		if ranged {
			origin, bound, err := c.intRange(32)
			if err != nil {
				return nil, err
			}
			return func() (uint64, string) {
				v, _ := bulk.Int32Range(g, int32(origin), int32(bound))
				return uint64(int64(v)), strconv.FormatInt(int64(v), 10)
			}, nil
		}
		return func() (uint64, string) {
			v := g.Int32()
			return uint64(int64(v)), strconv.FormatInt(int64(v), 10)
		}, nil

	case "int64":
		if ranged {
			origin, bound, err := c.intRange(64)
			if err != nil {
				return nil, err
			}
			return func() (uint64, string) {
				v, _ := bulk.Int64Range(g, origin, bound)
				return uint64(v), strconv.FormatInt(v, 10)
			}, nil
		}
		return func() (uint64, string) {
			v := g.Int64()
			return uint64(v), strconv.FormatInt(v, 10)
		}, nil

	case "float64":
		if ranged {
			origin, err := strconv.ParseFloat(*c.Origin, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", bulk.ErrBadRange, err)
			}
			bound, err := strconv.ParseFloat(*c.Bound, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", bulk.ErrBadRange, err)
			}
			if !(origin < bound) || math.IsInf(bound-origin, 0) {
				return nil, fmt.Errorf("%w: origin %g, bound %g", bulk.ErrBadRange, origin, bound)
			}
			return func() (uint64, string) {
				v, _ := bulk.Float64Range(g, origin, bound)
				return math.Float64bits(v), strconv.FormatFloat(v, 'g', -1, 64)
			}, nil
		}
		return func() (uint64, string) {
			v := bulk.Float64(g)
			return math.Float64bits(v), strconv.FormatFloat(v, 'g', -1, 64)
		}, nil

	case "bool":
		if ranged {
			return nil, fmt.Errorf("%w: bool values take no range", bulk.ErrBadRange)
		}
		return func() (uint64, string) {
			if bulk.Bool(g) {
				return 1, "true"
			}
			return 0, "false"
		}, nil
	}

	return nil, fmt.Errorf("unknown kind %q", c.Kind)
}

// intRange parses --origin and --bound as bitSize-bit integers. Fractions
// and out-of-range values are rejected rather than truncated.
func (c *GenCmd) intRange(bitSize int) (int64, int64, error) {
	origin, err := strconv.ParseInt(*c.Origin, 10, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: origin %q is not an int%d", bulk.ErrBadRange, *c.Origin, bitSize)
	}
	bound, err := strconv.ParseInt(*c.Bound, 10, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bound %q is not an int%d", bulk.ErrBadRange, *c.Bound, bitSize)
	}
	if origin >= bound {
		return 0, 0, fmt.Errorf("%w: origin %d >= bound %d", bulk.ErrBadRange, origin, bound)
	}
	return origin, bound, nil
}

// writeBytes prints Count random bytes as hex, or their digest.
func (c *GenCmd) writeBytes(w io.Writer, g *rng.Generator) error {
	if c.Origin != nil || c.Bound != nil {
		return fmt.Errorf("%w: bytes take no range", bulk.ErrBadRange)
	}

	buf := make([]byte, c.Count)
	bulk.Fill(g, buf)

	if c.Digest {
		_, err := fmt.Fprintf(w, "%016x\n", xxhash.Sum64(buf))
		return err
	}
	_, err := fmt.Fprintf(w, "%x\n", buf)
	return err
}
