package rng

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/coder/quartz"
)

// EnvSecureSeed selects EntropySecure for the process-wide default seeder
// when set to a true value (as understood by strconv.ParseBool). It is read
// once, when the default seeder is first used.
const EnvSecureSeed = "SPLITTABLE_SECURE_SEED"

// ErrSeederInitialized is returned by ConfigureDefault once the default
// seeder is already in use.
var ErrSeederInitialized = errors.New("rng: default seeder already initialized")

// Entropy selects how a Seeder's counter is initialized. It only affects the
// starting value, never the generated sequences' algorithm.
type Entropy int

const (
	// EntropyFast derives the initial value from the clock.
	EntropyFast Entropy = iota
	// EntropySecure reads the initial value from crypto/rand.
	EntropySecure
)

func (e Entropy) String() string {
	switch e {
	case EntropyFast:
		return "fast"
	case EntropySecure:
		return "secure"
	default:
		return "Entropy(" + strconv.Itoa(int(e)) + ")"
	}
}

// ParseEntropy parses "fast" or "secure".
func ParseEntropy(s string) (Entropy, error) {
	switch s {
	case "fast":
		return EntropyFast, nil
	case "secure":
		return EntropySecure, nil
	}
	return 0, errors.New("rng: unknown entropy mode " + strconv.Quote(s))
}

// Seeder hands out generators without locking. It behaves like a hidden
// shared generator that is split once per call, but only its seed is kept:
// one atomic counter advanced by 2*gamma per caller.
type Seeder struct {
	counter atomic.Uint64
}

type seederOptions struct {
	entropy Entropy
	clock   quartz.Clock
	initial *uint64
}

// SeederOption configures NewSeeder.
type SeederOption func(*seederOptions)

// WithEntropy selects the entropy used for the initial counter value.
func WithEntropy(e Entropy) SeederOption {
	return func(o *seederOptions) {
		o.entropy = e
	}
}

// WithClock sets the clock used by EntropyFast.
func WithClock(clock quartz.Clock) SeederOption {
	return func(o *seederOptions) {
		o.clock = clock
	}
}

// WithInitialSeed fixes the counter's initial value, which makes the
// seeder's output reproducible. It overrides WithEntropy.
func WithInitialSeed(seed uint64) SeederOption {
	return func(o *seederOptions) {
		o.initial = &seed
	}
}

// NewSeeder returns a seeder whose counter is initialized once, here.
func NewSeeder(opts ...SeederOption) *Seeder {
	o := seederOptions{entropy: EntropyFast}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}

	s := &Seeder{}
	if o.initial != nil {
		s.counter.Store(*o.initial)
	} else {
		s.counter.Store(initialSeed(o.entropy, o.clock))
	}
	return s
}

// New returns a generator from a counter slice no other caller receives.
// It is safe for concurrent use.
func (s *Seeder) New() *Generator {
	v := s.counter.Add(doubleGoldenGamma) - doubleGoldenGamma
	return &Generator{seed: mix64(v), gamma: mixGamma(v + goldenGamma)}
}

func initialSeed(e Entropy, clock quartz.Clock) uint64 {
	if e == EntropySecure {
		var b [8]byte
		if _, err := rand.Read(b[:]); err == nil {
			return binary.BigEndian.Uint64(b[:])
		}
	}
	now := clock.Now()
	return mix64(uint64(now.UnixMilli())) ^ mix64(uint64(now.UnixNano()))
}

var defaultSeeder atomic.Pointer[Seeder]

// Default returns the process-wide seeder, initializing it on first use
// with the entropy mode selected by EnvSecureSeed.
func Default() *Seeder {
	if s := defaultSeeder.Load(); s != nil {
		return s
	}
	s := NewSeeder(WithEntropy(entropyFromEnv()))
	if defaultSeeder.CompareAndSwap(nil, s) {
		return s
	}
	return defaultSeeder.Load()
}

// ConfigureDefault installs the process-wide seeder built from opts. It must
// be called before the first use of Default or New.
func ConfigureDefault(opts ...SeederOption) error {
	if !defaultSeeder.CompareAndSwap(nil, NewSeeder(opts...)) {
		return ErrSeederInitialized
	}
	return nil
}

// New returns a generator from the process-wide seeder.
func New() *Generator {
	return Default().New()
}

func entropyFromEnv() Entropy {
	if v, err := strconv.ParseBool(os.Getenv(EnvSecureSeed)); err == nil && v {
		return EntropySecure
	}
	return EntropyFast
}
