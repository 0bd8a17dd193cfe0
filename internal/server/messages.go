package server

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/lox/splittable/bulk"
	"github.com/lox/splittable/rng"
)

// Message types sent by the server
const (
	TypeValues = "values"
	TypeDone   = "done"
	TypeError  = "error"
)

// Value kinds a client may request
const (
	KindInt32   = "int32"
	KindInt64   = "int64"
	KindFloat64 = "float64"
	KindBool    = "bool"
)

// Request asks for Count values of Kind. When Seed is set the values come
// from a fresh generator with that seed and are reproducible; otherwise
// they come from a child split off the connection's generator. Origin and
// Bound, when both set, restrict numeric kinds to [Origin, Bound). Integer
// kinds require whole-number bounds that fit the kind.
type Request struct {
	Kind   string       `json:"kind"`
	Count  int          `json:"count"`
	Seed   *int64       `json:"seed,omitempty"`
	Origin *json.Number `json:"origin,omitempty"`
	Bound  *json.Number `json:"bound,omitempty"`
}

// Response is one server message.
type Response struct {
	Type   string `json:"type"`
	Values []any  `json:"values,omitempty"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

// drawFunc produces one value for a request.
type drawFunc func(g *rng.Generator) any

func (r *Request) validate(maxCount int) (drawFunc, error) {
	if r.Count <= 0 || r.Count > maxCount {
		return nil, fmt.Errorf("count must be between 1 and %d, got %d", maxCount, r.Count)
	}
	if (r.Origin == nil) != (r.Bound == nil) {
		return nil, fmt.Errorf("origin and bound must be given together")
	}
	ranged := r.Origin != nil

	switch r.Kind {
	case KindInt32:
		if !ranged {
			return func(g *rng.Generator) any { return g.Int32() }, nil
		}
		origin, bound, err := parseIntRange(*r.Origin, *r.Bound, 32)
		if err != nil {
			return nil, err
		}
		return func(g *rng.Generator) any {
			v, _ := bulk.Int32Range(g, int32(origin), int32(bound))
			return v
		}, nil
	case KindInt64:
		if !ranged {
			return func(g *rng.Generator) any { return g.Int64() }, nil
		}
		origin, bound, err := parseIntRange(*r.Origin, *r.Bound, 64)
		if err != nil {
			return nil, err
		}
		return func(g *rng.Generator) any {
			v, _ := bulk.Int64Range(g, origin, bound)
			return v
		}, nil
	case KindFloat64:
		if !ranged {
			return func(g *rng.Generator) any { return bulk.Float64(g) }, nil
		}
		origin, err := r.Origin.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bulk.ErrBadRange, err)
		}
		bound, err := r.Bound.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", bulk.ErrBadRange, err)
		}
		if !(origin < bound) || math.IsInf(bound-origin, 0) {
			return nil, bulk.ErrBadRange
		}
		return func(g *rng.Generator) any {
			v, _ := bulk.Float64Range(g, origin, bound)
			return v
		}, nil
	case KindBool:
		if ranged {
			return nil, fmt.Errorf("kind %q does not take a range", r.Kind)
		}
		return func(g *rng.Generator) any { return bulk.Bool(g) }, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", r.Kind)
	}
}

// parseIntRange parses integer bounds exactly, rejecting fractions and
// values that do not fit in bitSize bits.
func parseIntRange(origin, bound json.Number, bitSize int) (int64, int64, error) {
	o, err := strconv.ParseInt(origin.String(), 10, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: origin %s is not an int%d", bulk.ErrBadRange, origin, bitSize)
	}
	b, err := strconv.ParseInt(bound.String(), 10, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bound %s is not an int%d", bulk.ErrBadRange, bound, bitSize)
	}
	if o >= b {
		return 0, 0, bulk.ErrBadRange
	}
	return o, b, nil
}

func decodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}
