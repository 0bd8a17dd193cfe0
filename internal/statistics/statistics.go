// Package statistics provides summary statistics and a small battery of
// uniformity and independence tests for generator output.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/lox/splittable/bulk"
)

// Summary describes a sample: its mean and spread, a 95% confidence
// interval for the mean, and a few quantiles.
type Summary struct {
	N        int
	Mean     float64
	Variance float64 // unbiased sample variance
	StdDev   float64
	StdError float64
	CI95Low  float64
	CI95High float64
	Min      float64
	Median   float64
	P01      float64
	P99      float64
	Max      float64
}

// Summarize computes the summary of xs. xs is not modified.
func Summarize(xs []float64) (Summary, error) {
	if len(xs) < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 observations, got %d", ErrTooFewSamples, len(xs))
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	mean, variance := stat.MeanVariance(sorted, nil)
	stdDev := math.Sqrt(variance)
	stdErr := stat.StdErr(stdDev, float64(len(sorted)))
	margin := 1.96 * stdErr

	return Summary{
		N:        len(sorted),
		Mean:     mean,
		Variance: variance,
		StdDev:   stdDev,
		StdError: stdErr,
		CI95Low:  mean - margin,
		CI95High: mean + margin,
		Min:      sorted[0],
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P01:      stat.Quantile(0.01, stat.Empirical, sorted, nil),
		P99:      stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:      sorted[len(sorted)-1],
	}, nil
}

// SummarizeFloat64s summarizes samples Float64 draws from src.
func SummarizeFloat64s(src bulk.Source, samples int) (Summary, error) {
	if samples < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 observations, got %d", ErrTooFewSamples, samples)
	}
	xs := make([]float64, samples)
	for i := range xs {
		xs[i] = bulk.Float64(src)
	}
	return Summarize(xs)
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.6f sd=%.6f se=%.6f ci95=[%.6f, %.6f] min=%.6f p01=%.6f median=%.6f p99=%.6f max=%.6f",
		s.N, s.Mean, s.StdDev, s.StdError, s.CI95Low, s.CI95High, s.Min, s.P01, s.Median, s.P99, s.Max)
}
