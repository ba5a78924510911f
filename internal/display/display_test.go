package display

import (
	"image/color"
	"strings"
	"testing"

	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestText(t *testing.T) {
	var fb chip8.Framebuffer
	fb[0] = 1
	fb[chip8.DisplayWidth+1] = 1

	text := Text(&fb, '#', '.')
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, chip8.DisplayHeight)
	assert.Equal(t, "#"+strings.Repeat(".", chip8.DisplayWidth-1), lines[0])
	assert.Equal(t, ".#"+strings.Repeat(".", chip8.DisplayWidth-2), lines[1])
	assert.Equal(t, strings.Repeat(".", chip8.DisplayWidth), lines[2])
}

func TestTextMultiByteRunes(t *testing.T) {
	var fb chip8.Framebuffer
	fb[0] = 1

	text := Text(&fb, '█', ' ')
	assert.True(t, strings.HasPrefix(text, "█ "))
	assert.Equal(t, 1, strings.Count(text, "█"))
}

func TestRGBA(t *testing.T) {
	var fb chip8.Framebuffer
	fb[1] = 1

	pixels := RGBA(&fb, nil)
	assert.Len(t, pixels, chip8.DisplayWidth*chip8.DisplayHeight*4)
	assert.Equal(t, []byte{Background.R, Background.G, Background.B, Background.A}, pixels[0:4])
	assert.Equal(t, []byte{Foreground.R, Foreground.G, Foreground.B, Foreground.A}, pixels[4:8])
}

func TestRGBAReusesBuffer(t *testing.T) {
	var fb chip8.Framebuffer
	buf := make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4)

	pixels := RGBA(&fb, buf)
	assert.True(t, &buf[0] == &pixels[0])
}

func TestRGBAPalette(t *testing.T) {
	var fb chip8.Framebuffer
	fb[0] = 1
	on := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	off := color.RGBA{A: 0xFF}

	pixels := RGBAPalette(&fb, nil, on, off)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, pixels[0:4])
	assert.Equal(t, []byte{0, 0, 0, 0xFF}, pixels[4:8])
}
