package main

import (
	"context"

	"github.com/lox/splittable/cmd/splitrand/shared"
	"github.com/lox/splittable/internal/server"
	"github.com/lox/splittable/rng"
)

// ServeCmd streams values to websocket clients until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (default: from config)"`
}

func (c *ServeCmd) Run(a *app) error {
	addr := a.cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	ctx := shared.SetupSignalHandler(context.Background(), a.logger)

	srv := server.NewServer(a.logger, rng.Default(), server.WithConfig(server.Config{
		MaxCount:  a.cfg.Server.MaxCount,
		BatchSize: a.cfg.Server.BatchSize,
	}))

	a.logger.Info().Str("addr", addr).Msg("Starting server")
	return srv.Serve(ctx, addr)
}
