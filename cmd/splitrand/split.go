package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/splittable/rng"
)

// SplitCmd prints the state of a split tree, one node per line.
type SplitCmd struct {
	Seed   *int64 `help:"Seed for the root generator"`
	Depth  int    `default:"2" help:"Levels below the root"`
	Fanout int    `default:"2" help:"Children split from each node"`
}

func (c *SplitCmd) Run(a *app) error {
	if c.Depth < 0 || c.Fanout < 1 {
		return fmt.Errorf("depth must be >= 0 and fanout >= 1 (got %d, %d)", c.Depth, c.Fanout)
	}
	return c.print(a.out, a.generator(c.Seed), "root", 0)
}

func (c *SplitCmd) print(w io.Writer, g *rng.Generator, path string, level int) error {
	if _, err := fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", level), path, g); err != nil {
		return err
	}
	if level == c.Depth {
		return nil
	}
	for i := range c.Fanout {
		if err := c.print(w, g.Split(), fmt.Sprintf("%s.%d", path, i), level+1); err != nil {
			return err
		}
	}
	return nil
}
