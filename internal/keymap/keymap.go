// Package keymap translates host key events into CHIP-8 hex keypad state.
//
// The conventional mapping is used: the characters 0-9 and a-f (case
// insensitive) select the keys 0x0-0xF.
package keymap

import "github.com/retroenv/gochip8/internal/chip8"

// FromRune returns the keypad key for the character.
func FromRune(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 0xA, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 0xA, true
	}
	return 0, false
}

// Latch keeps a key pressed for a number of cycles after its key press
// event. Terminals deliver repeated presses but no release events.
type Latch struct {
	hold      int
	remaining [chip8.KeyCount]int
}

// NewLatch returns a latch that holds every press for the given number of cycles.
func NewLatch(hold int) *Latch {
	if hold < 1 {
		hold = 1
	}
	return &Latch{hold: hold}
}

// Press marks the key as pressed for the hold duration.
func (l *Latch) Press(key uint8) {
	l.remaining[key&0xF] = l.hold
}

// Apply writes the latched key state to the keypad and advances the latch
// by one cycle.
func (l *Latch) Apply(keypad *chip8.Keypad) {
	for key := range l.remaining {
		keypad[key] = l.remaining[key] > 0
		if l.remaining[key] > 0 {
			l.remaining[key]--
		}
	}
}
