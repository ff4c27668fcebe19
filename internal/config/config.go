package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when none is given
const DefaultFile = "cardring.hcl"

// Config represents the complete configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Output *OutputSettings `hcl:"output,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// GameSettings contains the parameters of a game
type GameSettings struct {
	Players     int    `hcl:"players,optional"`
	Pack        string `hcl:"pack,optional"`
	Shuffle     bool   `hcl:"shuffle,optional"`
	Seed        *int64 `hcl:"seed,optional"`
	Timeout     string `hcl:"timeout,optional"`
	IdleBackoff string `hcl:"idle_backoff,optional"`
}

// OutputSettings controls the deck and player files
type OutputSettings struct {
	Dir  string `hcl:"dir,optional"`
	Sync bool   `hcl:"sync,optional"`
}

// LogSettings controls console logging
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			Timeout:     "1m",
			IdleBackoff: "1ms",
		},
		Output: &OutputSettings{
			Dir: "output",
		},
		Log: &LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.Timeout == "" {
		c.Game.Timeout = defaults.Game.Timeout
	}
	if c.Game.IdleBackoff == "" {
		c.Game.IdleBackoff = defaults.Game.IdleBackoff
	}

	if c.Output == nil {
		c.Output = defaults.Output
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaults.Output.Dir
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// Validate checks the configuration for values that cannot be used
func (c *Config) Validate() error {
	if c.Game.Players < 0 {
		return fmt.Errorf("players cannot be negative")
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	backoff, err := c.IdleBackoffDuration()
	if err != nil {
		return err
	}
	if backoff <= 0 {
		return fmt.Errorf("idle_backoff must be positive")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{
		"text":   true,
		"json":   true,
		"logfmt": true,
	}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// TimeoutDuration returns the game timeout; zero means no timeout
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Game.Timeout)
}

// IdleBackoffDuration returns how long an idle player waits before retrying
func (c *Config) IdleBackoffDuration() (time.Duration, error) {
	return parseDuration("idle_backoff", c.Game.IdleBackoff)
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", name)
	}
	return d, nil
}
