// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateRandom creates the random byte source for the machine. A seed of 0
// selects a time based seed.
func CreateRandom(seed uint64) chip8.RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return chip8.NewRandomSource(seed)
}

// CreateMachine creates a machine configured from the program options.
func CreateMachine(logger *log.Logger, opts options.Program) *chip8.Machine {
	return chip8.New(
		chip8.WithLogger(logger),
		chip8.WithRandom(CreateRandom(opts.Seed)),
		chip8.WithStrict(opts.Strict),
		chip8.WithTrace(opts.Debug),
	)
}
