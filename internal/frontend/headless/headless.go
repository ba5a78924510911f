// Package headless implements a frontend without interactive display or
// input. The last rendered frame is written to an output on close.
package headless

import (
	"fmt"
	"io"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/display"
)

// Frontend keeps the last rendered frame in memory.
type Frontend struct {
	output io.Writer
	frame  chip8.Framebuffer
	frames int
}

// New returns a headless frontend that writes the final frame to output.
// A nil output discards the frame.
func New(output io.Writer) *Frontend {
	return &Frontend{output: output}
}

// Render stores the framebuffer.
func (f *Frontend) Render(fb *chip8.Framebuffer) error {
	f.frame = *fb
	f.frames++
	return nil
}

// Poll releases all keys, no input is available.
func (f *Frontend) Poll(keypad *chip8.Keypad) {
	keypad.Reset()
}

// Frame returns the last rendered frame.
func (f *Frontend) Frame() *chip8.Framebuffer {
	return &f.frame
}

// Frames returns the number of rendered frames.
func (f *Frontend) Frames() int {
	return f.frames
}

// Close writes the last frame as text to the output.
func (f *Frontend) Close() error {
	if f.output == nil || f.frames == 0 {
		return nil
	}
	if _, err := io.WriteString(f.output, display.Text(&f.frame, '#', '.')); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
