// Package config loads the optional HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/videopoker/internal/scoring"
	"github.com/lox/videopoker/internal/simulator"
)

// DefaultFilename is the config file read when no path is given
const DefaultFilename = "videopoker.hcl"

// Config represents the complete configuration. Every block is optional.
type Config struct {
	Game     *GameSettings     `hcl:"game,block"`
	Log      *LogSettings      `hcl:"log,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
}

// GameSettings contains rules and seeding
type GameSettings struct {
	RoyalFlush string `hcl:"royal_flush,optional"` // "hearts" or "any"
	Seed       int64  `hcl:"seed,optional"`        // 0 seeds from the clock
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"` // used by the interactive game
}

// SimulateSettings contains defaults for the simulate command
type SimulateSettings struct {
	Rounds   int    `hcl:"rounds,optional"`
	Workers  int    `hcl:"workers,optional"`
	Bet      int    `hcl:"bet,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Game: &GameSettings{
			RoyalFlush: scoring.RoyalHeartsOnly.String(),
			Seed:       0,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "videopoker.log",
		},
		Simulate: &SimulateSettings{
			Rounds:   100000,
			Workers:  0,
			Bet:      scoring.MaxBet,
			Strategy: "pairs",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills any missing values with defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.RoyalFlush == "" {
		c.Game.RoyalFlush = defaults.Game.RoyalFlush
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.Simulate == nil {
		c.Simulate = defaults.Simulate
	}
	if c.Simulate.Rounds == 0 {
		c.Simulate.Rounds = defaults.Simulate.Rounds
	}
	if c.Simulate.Bet == 0 {
		c.Simulate.Bet = defaults.Simulate.Bet
	}
	if c.Simulate.Strategy == "" {
		c.Simulate.Strategy = defaults.Simulate.Strategy
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.RoyalMode(); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.Simulate.Rounds <= 0 {
		return fmt.Errorf("simulate rounds must be positive")
	}
	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate workers cannot be negative")
	}
	if c.Simulate.Bet < scoring.MinBet || c.Simulate.Bet > scoring.MaxBet {
		return fmt.Errorf("simulate bet must be between %d and %d", scoring.MinBet, scoring.MaxBet)
	}
	if _, err := simulator.NewStrategy(c.Simulate.Strategy, nil); err != nil {
		return err
	}

	return nil
}

// RoyalMode returns the parsed royal flush rule
func (c *Config) RoyalMode() (scoring.RoyalMode, error) {
	return scoring.ParseRoyalMode(c.Game.RoyalFlush)
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return level, nil
}
