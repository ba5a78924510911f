// Package detector handles frontend detection.
package detector

import (
	"os"

	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector handles frontend detection from options and the process environment.
type Detector struct {
	logger     *log.Logger
	isTerminal func() bool
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		isTerminal: stdioIsTerminal,
	}
}

// Detect determines the frontend to use. An explicitly selected frontend is
// returned unchanged, otherwise the terminal frontend is chosen when the
// standard input and output are connected to a terminal and the headless
// frontend in all other cases.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := options.Headless
	if d.isTerminal() {
		frontend = options.Terminal
	}
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("file", opts.Input))
	return frontend
}

func stdioIsTerminal() bool {
	return filesAreTerminals(os.Stdin, os.Stdout)
}

func filesAreTerminals(files ...*os.File) bool {
	for _, file := range files {
		if !term.IsTerminal(int(file.Fd())) {
			return false
		}
	}
	return true
}
