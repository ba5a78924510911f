// Package app connects the machine, the program loader and the frontends.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/config"
	"github.com/retroenv/gochip8/internal/detector"
	"github.com/retroenv/gochip8/internal/frontend/desktop"
	"github.com/retroenv/gochip8/internal/frontend/headless"
	"github.com/retroenv/gochip8/internal/frontend/terminal"
	"github.com/retroenv/gochip8/internal/loader"
	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/gochip8/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Name of the application.
const Name = "gochip8"

// PrintBanner prints the application name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(Name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the loaded program.
func PrintInfo(logger *log.Logger, opts options.Program, m *chip8.Machine, frontend string) {
	if opts.Quiet {
		return
	}
	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", int(m.ProgramEnd()-chip8.ProgramStart)),
		log.String("frontend", frontend),
		log.Int("hz", int(opts.Hz)),
	)
}

// Run loads the program of the options and executes it using the
// configured or detected frontend. The output is used by the terminal and
// headless frontends.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, output io.Writer) error {
	m := config.CreateMachine(logger, opts)
	if err := loader.New().LoadInto(m, opts); err != nil {
		return err
	}

	frontend := detector.New(logger).Detect(opts)
	PrintInfo(logger, opts, m, frontend)

	r := runner.New(logger, m, opts)

	switch frontend {
	case options.Desktop:
		return desktop.Run(ctx, logger, r, fmt.Sprintf("%s - %s", Name, opts.Input), opts.Scale)

	case options.Terminal:
		return runTerminal(ctx, logger, r, opts, output)

	case options.Headless:
		return runHeadless(ctx, r, opts, output)

	default:
		return fmt.Errorf("unsupported frontend '%s'", frontend)
	}
}

func runTerminal(ctx context.Context, logger *log.Logger, r *runner.Runner, opts options.Program, output io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	front, err := terminal.Open(logger, output, keyHoldCycles(opts.Hz), cancel)
	if err != nil {
		return fmt.Errorf("opening terminal frontend: %w", err)
	}

	runErr := r.Run(ctx, front, front)
	if err := front.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing terminal frontend: %w", err)
	}
	return runErr
}

func runHeadless(ctx context.Context, r *runner.Runner, opts options.Program, output io.Writer) error {
	if opts.Quiet {
		output = nil
	}
	front := headless.New(output)

	runErr := r.Run(ctx, front, front)
	if err := front.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing headless frontend: %w", err)
	}
	return runErr
}

// keyHoldCycles returns the number of cycles a terminal key press is held,
// roughly a quarter of a second.
func keyHoldCycles(hz uint) int {
	return max(1, int(hz/4))
}
