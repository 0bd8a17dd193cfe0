package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/splittable/cmd/splitrand/shared"
	"github.com/lox/splittable/internal/config"
	"github.com/lox/splittable/rng"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `kong:"default='${config_file}',env='${config_env}',help='HCL config file (missing file means defaults)'"`
	Debug   bool             `kong:"help='Enable debug logging'"`
	JSONLog bool             `kong:"name='json-log',help='Emit structured JSON logs'"`

	Gen     GenCmd     `cmd:"" help:"Print generated values"`
	Split   SplitCmd   `cmd:"" help:"Print a tree of split generators"`
	Check   CheckCmd   `cmd:"" help:"Run the statistical battery against a generator"`
	Shuffle ShuffleCmd `cmd:"" help:"Shuffle lines read from stdin"`
	UUID    UUIDCmd    `cmd:"uuid" help:"Print random (version 4) UUIDs"`
	Serve   ServeCmd   `cmd:"" help:"Stream values to websocket clients"`
}

// app carries what every subcommand needs. It is bound into Run methods.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	in     io.Reader
	out    io.Writer
}

// generator returns a generator for seed, or a default-seeded one.
func (a *app) generator(seed *int64) *rng.Generator {
	if seed != nil {
		return rng.FromSeed(*seed)
	}
	return rng.New()
}

// vars are the values interpolated into CLI struct tags.
func vars() kong.Vars {
	return kong.Vars{
		"version":     version,
		"config_file": config.DefaultFile,
		"config_env":  config.EnvConfig,
	}
}

// newApp loads the config and hands the resulting seeder options to
// configure, which is rng.ConfigureDefault outside tests.
func newApp(cli *CLI, in io.Reader, out io.Writer, configure func(...rng.SeederOption) error) (*app, error) {
	logger := shared.SetupLogger(cli.Debug)
	if cli.JSONLog {
		logger = shared.SetupStructuredLogger(os.Stderr, cli.Debug)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolved once, before any generator exists.
	if err := configure(rng.WithEntropy(cfg.EntropyMode())); err != nil {
		return nil, err
	}
	logger.Debug().Str("config", cli.Config).Stringer("entropy", cfg.EntropyMode()).Msg("Configured default seeder")

	return &app{cfg: cfg, logger: logger, in: in, out: out}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("splitrand"),
		kong.Description("Splittable pseudorandom value generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		vars(),
	)

	a, err := newApp(&cli, os.Stdin, os.Stdout, rng.ConfigureDefault)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
