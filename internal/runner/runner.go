// Package runner drives a machine at a fixed cycle rate and connects it to
// a display and an input source.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Display presents the framebuffer of the machine.
type Display interface {
	Render(fb *chip8.Framebuffer) error
}

// Input updates the keypad state of the machine before a cycle.
type Input interface {
	Poll(keypad *chip8.Keypad)
}

// Runner executes machine cycles and forwards the machine state to the
// frontend.
type Runner struct {
	logger    *log.Logger
	machine   *chip8.Machine
	hz        uint
	maxCycles uint64
}

// New returns a runner for the machine using the cycle rate and cycle limit
// of the options.
func New(logger *log.Logger, m *chip8.Machine, opts options.Program) *Runner {
	hz := opts.Hz
	if hz == 0 {
		hz = 60
	}
	return &Runner{
		logger:    logger,
		machine:   m,
		hz:        hz,
		maxCycles: opts.Cycles,
	}
}

// Hz returns the number of cycles executed per second.
func (r *Runner) Hz() uint {
	return r.hz
}

// Tick polls the input, executes a single machine cycle and renders the
// framebuffer. It returns false once the machine stopped or the cycle limit
// has been reached.
func (r *Runner) Tick(display Display, input Input) (bool, error) {
	if r.limitReached() {
		return false, nil
	}

	if input != nil {
		input.Poll(r.machine.Keypad())
	}

	running, err := r.machine.Step()
	if err != nil {
		return false, fmt.Errorf("executing cycle: %w", err)
	}

	if display != nil {
		if err := display.Render(r.machine.Framebuffer()); err != nil {
			return false, fmt.Errorf("rendering display: %w", err)
		}
	}

	return running && !r.limitReached(), nil
}

// Run executes cycles paced by the cycle rate until the machine halts, the
// cycle limit is reached, an error occurs or the context is cancelled.
func (r *Runner) Run(ctx context.Context, display Display, input Input) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())
		case <-ticker.C:
		}

		running, err := r.Tick(display, input)
		if err != nil {
			return err
		}
		if !running {
			r.logger.Debug("Machine stopped",
				log.Int("cycles", int(r.machine.Cycles())),
				log.Hex("pc", r.machine.PC()),
			)
			return nil
		}
	}
}

func (r *Runner) limitReached() bool {
	return r.maxCycles > 0 && r.machine.Cycles() >= r.maxCycles
}
