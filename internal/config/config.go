// Package config loads splitrand settings from an HCL file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/splittable/rng"
)

// Environment variable names
const (
	// EnvSecureSeed forces secure entropy for the default seeder.
	EnvSecureSeed = rng.EnvSecureSeed

	// EnvConfig names the config file when --config is not given.
	EnvConfig = "SPLITRAND_CONFIG"
)

// DefaultFile is the config file looked up when nothing else is specified.
const DefaultFile = "splitrand.hcl"

// Config is the complete splitrand configuration.
type Config struct {
	Entropy string        `hcl:"entropy,optional"`
	Check   *CheckConfig  `hcl:"check,block"`
	Server  *ServerConfig `hcl:"server,block"`
}

// CheckConfig sizes the statistical battery.
type CheckConfig struct {
	Samples int     `hcl:"samples,optional"`
	Buckets int     `hcl:"buckets,optional"`
	Alpha   float64 `hcl:"alpha,optional"`
	Splits  int     `hcl:"splits,optional"`
}

// ServerConfig configures the streaming server.
type ServerConfig struct {
	Address   string `hcl:"address,optional"`
	MaxCount  int    `hcl:"max_count,optional"`
	BatchSize int    `hcl:"batch_size,optional"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, applies env overrides and defaults, and validates
// the result. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}

		diags = gohcl.DecodeBody(file.Body, nil, cfg)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
		cfg.applyDefaults()
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Entropy == "" {
		c.Entropy = rng.EntropyFast.String()
	}
	if c.Check == nil {
		c.Check = &CheckConfig{}
	}
	if c.Check.Samples == 0 {
		c.Check.Samples = 1_000_000
	}
	if c.Check.Buckets == 0 {
		c.Check.Buckets = 256
	}
	if c.Check.Alpha == 0 {
		c.Check.Alpha = 1e-4
	}
	if c.Check.Splits == 0 {
		c.Check.Splits = 4
	}
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.MaxCount == 0 {
		c.Server.MaxCount = 1_000_000
	}
	if c.Server.BatchSize == 0 {
		c.Server.BatchSize = 1024
	}
}

func (c *Config) applyEnv() error {
	v := os.Getenv(EnvSecureSeed)
	if v == "" {
		return nil
	}
	secure, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", EnvSecureSeed, err)
	}
	if secure {
		c.Entropy = rng.EntropySecure.String()
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := rng.ParseEntropy(c.Entropy); err != nil {
		return err
	}
	if c.Check.Buckets < 2 {
		return fmt.Errorf("check: buckets must be at least 2, got %d", c.Check.Buckets)
	}
	if c.Check.Samples < 5*c.Check.Buckets {
		return fmt.Errorf("check: samples must be at least 5 per bucket, got %d", c.Check.Samples)
	}
	if c.Check.Alpha <= 0 || c.Check.Alpha >= 1 {
		return fmt.Errorf("check: alpha must be in (0, 1), got %g", c.Check.Alpha)
	}
	if c.Check.Splits < 0 {
		return fmt.Errorf("check: splits must be non-negative, got %d", c.Check.Splits)
	}
	if c.Server.MaxCount < 1 {
		return fmt.Errorf("server: max_count must be positive, got %d", c.Server.MaxCount)
	}
	if c.Server.BatchSize < 1 {
		return fmt.Errorf("server: batch_size must be positive, got %d", c.Server.BatchSize)
	}
	return nil
}

// EntropyMode returns the parsed entropy setting.
func (c *Config) EntropyMode() rng.Entropy {
	e, _ := rng.ParseEntropy(c.Entropy)
	return e
}
