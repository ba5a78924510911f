package desktop

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/options"
	"github.com/retroenv/gochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestGame(t *testing.T, ctx context.Context) *Game {
	t.Helper()

	logger := log.NewTestLogger(t)
	m := chip8.New(chip8.WithLogger(logger))
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))
	return New(ctx, logger, runner.New(logger, m, options.New()))
}

func TestLayout(t *testing.T) {
	g := newTestGame(t, context.Background())

	width, height := g.Layout(640, 320)
	assert.Equal(t, chip8.DisplayWidth, width)
	assert.Equal(t, chip8.DisplayHeight, height)
}

func TestRenderMarksChangedFrames(t *testing.T) {
	g := newTestGame(t, context.Background())

	var fb chip8.Framebuffer
	assert.NoError(t, g.Render(&fb))
	assert.False(t, g.dirty)

	fb[10] = 1
	assert.NoError(t, g.Render(&fb))
	assert.True(t, g.dirty)
	assert.Equal(t, 1, g.frame.Lit())
}

func TestUpdateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newTestGame(t, ctx)

	assert.Equal(t, ebiten.Termination, g.Update())
}

func TestKeyTable(t *testing.T) {
	assert.Equal(t, ebiten.KeyDigit0, keys[0x0])
	assert.Equal(t, ebiten.KeyDigit9, keys[0x9])
	assert.Equal(t, ebiten.KeyA, keys[0xA])
	assert.Equal(t, ebiten.KeyF, keys[0xF])
}
