// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/gochip8/internal/options"
)

var validFrontends = []string{options.Terminal, options.Desktop, options.Headless}

// ParseFlags parses the command line flags of the process.
func ParseFlags() (options.Program, error) {
	return Parse(os.Args[0], os.Args[1:], os.Stdout)
}

// Parse parses the given arguments and returns the program options.
func Parse(name string, arguments []string, output io.Writer) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	switch {
	case err != nil:
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	case len(args) == 0:
		return opts, &UsageError{flags: flags, output: output, msg: "missing program file"}
	}

	if err := validateArgs(args); err != nil {
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags  *flag.FlagSet
	output io.Writer
	msg    string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	_, _ = fmt.Fprintf(e.output, "usage: gochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(e.output)
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return fmt.Errorf("potential argument %s found after program file, please pass the program file as last argument", arg)
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Normalize()

	if opts.Hz == 0 {
		return fmt.Errorf("invalid cycle rate: %d", opts.Hz)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale factor: %d", opts.Scale)
	}

	if opts.Frontend == "" {
		return nil // auto-detect
	}
	for _, valid := range validFrontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "ui", opts.Frontend, "frontend to use for display and input (terminal/desktop/headless), auto-detected if not given")
	flags.UintVar(&opts.Hz, "hz", opts.Hz, "number of executed cycles per second")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "maximum number of cycles to execute, 0 for no limit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 for a time based seed")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "scale factor of the desktop window")
	flags.BoolVar(&opts.Strict, "strict", false, "halt on unknown opcodes instead of skipping them")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
