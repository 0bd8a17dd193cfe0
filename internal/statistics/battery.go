package statistics

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/lox/splittable/bulk"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrTooFewBuckets = errors.New("statistics: at least 2 buckets are required")
	ErrTooFewSamples = errors.New("statistics: too few samples")
)

// Result is the outcome of one test. PValue is the probability of a
// statistic at least this extreme from an ideal generator.
type Result struct {
	Name      string
	Statistic float64
	PValue    float64
}

// Passed reports whether the p-value is at least alpha.
func (r Result) Passed(alpha float64) bool {
	return r.PValue >= alpha
}

func (r Result) String() string {
	return fmt.Sprintf("%-28s stat=%12.4f p=%.6f", r.Name, r.Statistic, r.PValue)
}

// Uniformity is a chi-squared goodness-of-fit test of samples draws over
// buckets equally likely values.
func Uniformity(src bulk.Source, buckets, samples int) (Result, error) {
	if buckets < 2 {
		return Result{}, ErrTooFewBuckets
	}
	if samples < 5*buckets {
		return Result{}, fmt.Errorf("%w: need at least %d for %d buckets", ErrTooFewSamples, 5*buckets, buckets)
	}

	counts := make([]int, buckets)
	for i := 0; i < samples; i++ {
		v, err := bulk.Int32N(src, int32(buckets))
		if err != nil {
			return Result{}, err
		}
		counts[v]++
	}

	expected := float64(samples) / float64(buckets)
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(buckets - 1)}
	return Result{Name: "uniformity", Statistic: chi, PValue: dist.Survival(chi)}, nil
}

// Monobit checks that 1 bits make up half of words 64-bit draws.
func Monobit(src bulk.Source, words int) (Result, error) {
	if words < 1 {
		return Result{}, ErrTooFewSamples
	}

	ones := 0
	for i := 0; i < words; i++ {
		ones += bits.OnesCount64(uint64(src.Int64()))
	}

	n := float64(words) * 64
	z := (float64(ones) - n/2) / math.Sqrt(n/4)
	return Result{Name: "monobit", Statistic: z, PValue: twoSided(z)}, nil
}

// Mean checks that the mean of samples Float64 draws is 1/2.
func Mean(src bulk.Source, samples int) (Result, error) {
	if samples < 2 {
		return Result{}, ErrTooFewSamples
	}

	sum := 0.0
	for i := 0; i < samples; i++ {
		sum += bulk.Float64(src)
	}

	// The variance of U(0,1) is 1/12; use it rather than the estimate.
	z := (sum/float64(samples) - 0.5) / math.Sqrt(1.0/12/float64(samples))
	return Result{Name: "mean", Statistic: z, PValue: twoSided(z)}, nil
}

// SerialCorrelation tests lag-1 correlation of successive Float64 draws.
func SerialCorrelation(src bulk.Source, samples int) (Result, error) {
	if samples < 3 {
		return Result{}, ErrTooFewSamples
	}

	xs := make([]float64, samples)
	for i := range xs {
		xs[i] = bulk.Float64(src)
	}

	r := stat.Correlation(xs[:samples-1], xs[1:], nil)
	z := r * math.Sqrt(float64(samples-1))
	return Result{Name: "serial-correlation", Statistic: r, PValue: twoSided(z)}, nil
}

// SplitCorrelation tests the correlation between a generator's stream and
// the stream of a child split from it. g is advanced.
func SplitCorrelation[G bulk.Splitter[G]](g G, samples int) (Result, error) {
	if samples < 3 {
		return Result{}, ErrTooFewSamples
	}

	child := g.Split()
	xs := make([]float64, samples)
	ys := make([]float64, samples)
	for i := range xs {
		xs[i] = bulk.Float64(g)
		ys[i] = bulk.Float64(child)
	}

	r := stat.Correlation(xs, ys, nil)
	z := r * math.Sqrt(float64(samples))
	return Result{Name: "split-correlation", Statistic: r, PValue: twoSided(z)}, nil
}

func twoSided(z float64) float64 {
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// BatteryConfig sizes a battery run.
type BatteryConfig struct {
	Samples int // draws per test
	Buckets int // uniformity buckets
	Splits  int // children tested alongside the root
}

// Run applies every test to g and to cfg.Splits children split from it.
func Run[G bulk.Splitter[G]](g G, cfg BatteryConfig) ([]Result, error) {
	children, err := bulk.Splits(g, int64(cfg.Splits))
	if err != nil {
		return nil, err
	}

	targets := []G{g}
	for child := range children {
		targets = append(targets, child)
	}

	var results []Result
	for i, target := range targets {
		label := "root"
		if i > 0 {
			label = fmt.Sprintf("split %d", i)
		}

		tests := []func() (Result, error){
			func() (Result, error) { return Uniformity(target, cfg.Buckets, cfg.Samples) },
			func() (Result, error) { return Monobit(target, cfg.Samples) },
			func() (Result, error) { return Mean(target, cfg.Samples) },
			func() (Result, error) { return SerialCorrelation(target, cfg.Samples) },
		}
		for _, test := range tests {
			r, err := test()
			if err != nil {
				return nil, err
			}
			r.Name = fmt.Sprintf("%s[%s]", r.Name, label)
			results = append(results, r)
		}
	}

	r, err := SplitCorrelation(g, cfg.Samples)
	if err != nil {
		return nil, err
	}
	return append(results, r), nil
}
