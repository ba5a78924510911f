// Package display converts the machine framebuffer into output formats
// used by the frontends.
package display

import (
	"image/color"
	"strings"

	"github.com/retroenv/gochip8/internal/chip8"
	"golang.org/x/image/colornames"
)

// Default palette of the rendered framebuffer.
var (
	Foreground = colornames.White
	Background = colornames.Black
)

// Text renders the framebuffer as lines of characters, one character per
// pixel and a newline after every row.
func Text(fb *chip8.Framebuffer, on, off rune) string {
	var sb strings.Builder
	sb.Grow((chip8.DisplayWidth + 1) * chip8.DisplayHeight * 4)

	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if fb.Pixel(x, y) != 0 {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RGBA renders the framebuffer as RGBA pixel data in the default palette.
// The dst buffer is reused if it is large enough.
func RGBA(fb *chip8.Framebuffer, dst []byte) []byte {
	return RGBAPalette(fb, dst, Foreground, Background)
}

// RGBAPalette renders the framebuffer as RGBA pixel data using the given
// colors for set and cleared pixels.
func RGBAPalette(fb *chip8.Framebuffer, dst []byte, on, off color.RGBA) []byte {
	size := len(fb) * 4
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for i, pixel := range fb {
		c := off
		if pixel != 0 {
			c = on
		}
		offset := i * 4
		dst[offset] = c.R
		dst[offset+1] = c.G
		dst[offset+2] = c.B
		dst[offset+3] = c.A
	}
	return dst
}
