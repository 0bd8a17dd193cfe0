package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/splittable/bulk"
)

// UUIDCmd prints version 4 UUIDs built from generator bytes.
type UUIDCmd struct {
	Seed  *int64 `help:"Seed for reproducible UUIDs"`
	Count int    `short:"n" default:"1" help:"Number of UUIDs"`
}

func (c *UUIDCmd) Run(a *app) error {
	r := bulk.NewReader(a.generator(c.Seed))
	for range c.Count {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(a.out, id); err != nil {
			return err
		}
	}
	return nil
}
