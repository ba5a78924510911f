// Package terminal implements a frontend that renders the framebuffer as
// text into an ANSI terminal and reads keypad input from the raw tty.
package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/term"
	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/display"
	"github.com/retroenv/gochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
)

// Device is the terminal device used for raw keyboard input.
const Device = "/dev/tty"

const (
	keyEscape  = 0x1b
	keyCtrlC   = 0x03
	pixelOn    = '█'
	pixelOff   = ' '
	cursorHome = "\x1b[H"
	setupTerm  = "\x1b[2J\x1b[?25l"
	resetTerm  = "\x1b[0m\x1b[?25h\r\n"
)

// Frontend renders into a terminal and latches key presses, as terminals
// do not report key releases.
type Frontend struct {
	logger *log.Logger
	output io.Writer
	tty    *term.Term

	mu    sync.Mutex
	latch *keymap.Latch

	last     chip8.Framebuffer
	rendered bool
	buf      bytes.Buffer
}

// New returns a terminal frontend writing to output. Every key press is
// held for the given number of cycles.
func New(logger *log.Logger, output io.Writer, hold int) *Frontend {
	return &Frontend{
		logger: logger,
		output: output,
		latch:  keymap.NewLatch(hold),
	}
}

// Open switches the terminal device into raw mode and starts reading key
// presses from it. Escape or Ctrl-C calls cancel.
func Open(logger *log.Logger, output io.Writer, hold int, cancel context.CancelFunc) (*Frontend, error) {
	tty, err := term.Open(Device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("opening terminal %s: %w", Device, err)
	}

	f := New(logger, output, hold)
	f.tty = tty

	if _, err := io.WriteString(output, setupTerm); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("setting up terminal: %w", err)
	}

	go f.HandleInput(tty, cancel)
	return f, nil
}

// HandleInput reads key presses from the reader until it fails or returns
// EOF.
func (f *Frontend) HandleInput(reader io.Reader, cancel context.CancelFunc) {
	data := make([]byte, 16)
	for {
		n, err := reader.Read(data)
		if n > 0 && f.handleKeys(data[:n]) {
			f.logger.Debug("Terminal quit key pressed")
			cancel()
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				f.logger.Debug("Reading terminal input failed", log.Err(err))
			}
			return
		}
	}
}

// handleKeys latches all keypad keys of the input and returns whether a
// quit key was pressed. A single escape byte is a quit key, longer escape
// sequences are ignored.
func (f *Frontend) handleKeys(data []byte) bool {
	if len(data) > 1 && data[0] == keyEscape {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range data {
		switch b {
		case keyEscape, keyCtrlC:
			return true
		}
		if key, ok := keymap.FromRune(rune(b)); ok {
			f.latch.Press(key)
		}
	}
	return false
}

// Poll writes the latched keys to the keypad.
func (f *Frontend) Poll(keypad *chip8.Keypad) {
	f.mu.Lock()
	f.latch.Apply(keypad)
	f.mu.Unlock()
}

// Render draws the framebuffer if it changed since the last call.
func (f *Frontend) Render(fb *chip8.Framebuffer) error {
	if f.rendered && f.last == *fb {
		return nil
	}
	f.last = *fb
	f.rendered = true

	text := display.Text(fb, pixelOn, pixelOff)

	f.buf.Reset()
	f.buf.WriteString(cursorHome)
	// raw mode does not translate newlines into carriage return and newline
	f.buf.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))

	if _, err := f.output.Write(f.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close restores the terminal state.
func (f *Frontend) Close() error {
	if f.tty == nil {
		return nil
	}

	_, _ = io.WriteString(f.output, resetTerm)

	if err := f.tty.Restore(); err != nil {
		_ = f.tty.Close()
		return fmt.Errorf("restoring terminal: %w", err)
	}
	if err := f.tty.Close(); err != nil {
		return fmt.Errorf("closing terminal: %w", err)
	}
	f.tty = nil
	return nil
}
