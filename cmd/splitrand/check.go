package main

import (
	"fmt"
	"strings"

	"github.com/lox/splittable/internal/statistics"
)

// CheckCmd runs the statistical battery, then prints a summary of the
// generator's Float64 draws. Flags override the config file.
type CheckCmd struct {
	Seed    *int64   `help:"Seed for the generator under test"`
	Samples *int     `help:"Draws per test"`
	Buckets *int     `help:"Buckets for the uniformity test"`
	Splits  *int     `help:"Split children tested alongside the root"`
	Alpha   *float64 `help:"Significance level a test must not fall below"`
}

func (c *CheckCmd) Run(a *app) error {
	cfg := *a.cfg.Check
	if c.Samples != nil {
		cfg.Samples = *c.Samples
	}
	if c.Buckets != nil {
		cfg.Buckets = *c.Buckets
	}
	if c.Splits != nil {
		cfg.Splits = *c.Splits
	}
	if c.Alpha != nil {
		cfg.Alpha = *c.Alpha
	}

	g := a.generator(c.Seed)
	a.logger.Info().
		Stringer("generator", g).
		Int("samples", cfg.Samples).
		Int("buckets", cfg.Buckets).
		Int("splits", cfg.Splits).
		Float64("alpha", cfg.Alpha).
		Msg("Running battery")

	results, err := statistics.Run(g, statistics.BatteryConfig{
		Samples: cfg.Samples,
		Buckets: cfg.Buckets,
		Splits:  cfg.Splits,
	})
	if err != nil {
		return err
	}

	var failed []string
	for _, r := range results {
		status := "ok"
		if !r.Passed(cfg.Alpha) {
			status = "FAIL"
			failed = append(failed, r.Name)
		}
		if _, err := fmt.Fprintf(a.out, "%-4s %s\n", status, r); err != nil {
			return err
		}
	}

	summary, err := statistics.SummarizeFloat64s(g, cfg.Samples)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(a.out, "%-4s %s\n", "sum", summary); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d tests failed: %s", len(failed), len(results), strings.Join(failed, ", "))
	}
	a.logger.Info().Int("tests", len(results)).Msg("All tests passed")
	return nil
}
