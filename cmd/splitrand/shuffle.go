package main

import (
	"bufio"
	"fmt"

	"github.com/lox/splittable/internal/randutil"
	"github.com/lox/splittable/rng"
)

// ShuffleCmd reads lines from stdin and prints them in random order.
type ShuffleCmd struct {
	Seed *int64 `help:"Seed for a reproducible order"`
}

func (c *ShuffleCmd) Run(a *app) error {
	var lines []string
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	r := randutil.FromGenerator(rng.New())
	if c.Seed != nil {
		r = randutil.New(*c.Seed)
	}
	randutil.Shuffle(r, lines)

	w := bufio.NewWriter(a.out)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
