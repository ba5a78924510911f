// Package options contains the program options.
package options

import "strings"

// Frontend names.
const (
	Terminal = "terminal"
	Desktop  = "desktop"
	Headless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"CHIP-8 program file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"ui" usage:"frontend: terminal, desktop, headless (default: auto-detect)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Strict   bool   `flag:"strict" usage:"halt on unknown opcodes instead of skipping them"`
}

// Machine contains emulation options.
type Machine struct {
	Hz     uint   `flag:"hz" usage:"executed cycles per second" default:"60"`
	Cycles uint64 `flag:"cycles" usage:"maximum cycles to execute, 0 for no limit"`
	Seed   uint64 `flag:"seed" usage:"random number generator seed, 0 for a time based seed"`
	Scale  int    `flag:"scale" usage:"desktop window scale factor" default:"10"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Machine
}

// New returns a new options instance with default options.
func New() Program {
	return Program{
		Machine: Machine{
			Hz:    60,
			Scale: 10,
		},
	}
}

// Normalize lower cases the frontend name.
func (p *Program) Normalize() {
	p.Frontend = strings.ToLower(strings.TrimSpace(p.Frontend))
}
