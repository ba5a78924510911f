// Package desktop implements a windowed frontend based on ebiten.
package desktop

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/gochip8/internal/chip8"
	"github.com/retroenv/gochip8/internal/display"
	"github.com/retroenv/gochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// keys maps host keys to the hex keypad, indexed by keypad key.
var keys = [chip8.KeyCount]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
	ebiten.KeyDigit8, ebiten.KeyDigit9, ebiten.KeyA, ebiten.KeyB,
	ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
}

// Game runs the machine inside the ebiten game loop, one machine cycle
// per tick.
type Game struct {
	ctx    context.Context
	logger *log.Logger
	runner *runner.Runner

	image   *ebiten.Image
	frame   chip8.Framebuffer
	pixels  []byte
	dirty   bool
	stopped bool
}

// New returns a game that executes the runner.
func New(ctx context.Context, logger *log.Logger, r *runner.Runner) *Game {
	return &Game{
		ctx:    ctx,
		logger: logger,
		runner: r,
	}
}

// Run opens the window and blocks until it is closed, Escape is pressed
// or the context is cancelled. The window stays open after the machine
// stopped to show the last frame.
func Run(ctx context.Context, logger *log.Logger, r *runner.Runner, title string, scale int) error {
	ebiten.SetWindowSize(chip8.DisplayWidth*scale, chip8.DisplayHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(int(r.Hz()))

	game := New(ctx, logger, r)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running desktop frontend: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running desktop frontend: %w", err)
	}
	return nil
}

// Update executes one machine cycle.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.stopped {
		return nil
	}

	running, err := g.runner.Tick(g, g)
	if err != nil {
		return fmt.Errorf("updating machine: %w", err)
	}
	if !running {
		g.stopped = true
		g.logger.Info("Machine stopped, close the window to exit")
	}
	return nil
}

// Poll implements runner.Input by reading the host keyboard.
func (g *Game) Poll(keypad *chip8.Keypad) {
	for key, hostKey := range keys {
		keypad[key] = ebiten.IsKeyPressed(hostKey)
	}
}

// Render implements runner.Display by storing the frame for the next Draw.
func (g *Game) Render(fb *chip8.Framebuffer) error {
	if g.frame != *fb {
		g.frame = *fb
		g.dirty = true
	}
	return nil
}

// Draw draws the last rendered frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
		g.dirty = true
	}
	if g.dirty {
		g.pixels = display.RGBA(&g.frame, g.pixels)
		g.image.WritePixels(g.pixels)
		g.dirty = false
	}
	screen.DrawImage(g.image, nil)
}

// Layout returns the logical screen size, the window scales it.
func (g *Game) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}
