// Package loader handles program file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/options"
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// LoadInto reads the program file named in the options into the machine.
// Size validation is done by the machine while reading.
func (l *Loader) LoadInto(m *chip8.Machine, opts options.Program) error {
	file, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	if err := m.LoadReader(file); err != nil {
		return fmt.Errorf("loading file %s: %w", opts.Input, err)
	}
	return nil
}
