package chip8

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestMachine returns a machine with the given instruction words loaded.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	m := New(
		WithLogger(log.NewTestLogger(t)),
		WithRandom(&SequenceSource{Bytes: []byte{0xAB}}),
	)
	assert.NoError(t, m.Load(program(words...)))
	return m
}

func program(words ...uint16) []byte {
	data := make([]byte, 0, len(words)*InstructionSize)
	for _, word := range words {
		data = append(data, byte(word>>8), byte(word))
	}
	return data
}

// mustStep executes one step that is expected to succeed.
func mustStep(t *testing.T, m *Machine) {
	t.Helper()

	ok, err := m.Step()
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.I())
	assert.Equal(t, uint16(ProgramStart), m.ProgramEnd())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, uint64(0), m.Cycles())
	assert.False(t, m.Halted())
	assert.Equal(t, 0, m.Framebuffer().Lit())

	for x := range uint8(RegisterCount) {
		assert.Equal(t, byte(0), m.V(x))
	}

	// glyph 0 and glyph F of the font
	assert.Equal(t, byte(0xF0), m.Memory(0x000))
	assert.Equal(t, byte(0x90), m.Memory(0x001))
	assert.Equal(t, byte(0x80), m.Memory(0x04F))
	assert.Equal(t, byte(0x00), m.Memory(0x050))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		err     error
		wantEnd uint16
	}{
		{"single instruction", 2, nil, 0x202},
		{"odd size", 3, nil, 0x203},
		{"maximum size", MaxProgramSize, nil, 0x1000},
		{"empty program", 0, ErrEmptyProgram, ProgramStart},
		{"too large", MaxProgramSize + 1, ErrProgramTooLarge, ProgramStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(WithLogger(log.NewTestLogger(t)))
			data := bytes.Repeat([]byte{0x12}, tt.size)

			err := m.Load(data)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Equal(t, byte(0), m.Memory(ProgramStart))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, byte(0x12), m.Memory(ProgramStart))
			}
			assert.Equal(t, tt.wantEnd, m.ProgramEnd())
		})
	}
}

func TestLoadClearsPreviousProgram(t *testing.T) {
	m := newTestMachine(t, 0x6001, 0x6102, 0x6203)
	assert.Equal(t, byte(0x61), m.Memory(0x202))

	assert.NoError(t, m.Load(program(0x6001)))
	assert.Equal(t, uint16(0x202), m.ProgramEnd())
	assert.Equal(t, byte(0x60), m.Memory(0x200))
	assert.Equal(t, byte(0), m.Memory(0x202))
	assert.Equal(t, byte(0), m.Memory(0x205))
}

func TestTraceDisabledByDefault(t *testing.T) {
	assert.False(t, New().trace)
	assert.True(t, New(WithTrace(true)).trace)
}

func TestLoadReader(t *testing.T) {
	t.Run("load program", func(t *testing.T) {
		m := New(WithLogger(log.NewTestLogger(t)))
		assert.NoError(t, m.LoadReader(bytes.NewReader([]byte{0x00, 0xE0, 0x12, 0x00})))
		assert.Equal(t, uint16(0x204), m.ProgramEnd())
		assert.Equal(t, byte(0xE0), m.Memory(0x201))
	})

	t.Run("reject oversized program", func(t *testing.T) {
		m := New(WithLogger(log.NewTestLogger(t)))
		err := m.LoadReader(bytes.NewReader(make([]byte, 2*MemorySize)))
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
		assert.Equal(t, uint16(ProgramStart), m.ProgramEnd())
	})
}

func TestMemoryOutOfRange(t *testing.T) {
	m := New()
	assert.Equal(t, byte(0), m.Memory(MemorySize))
	assert.Equal(t, byte(0), m.Memory(0xFFFF))
}

func TestSetKey(t *testing.T) {
	m := New()

	m.SetKey(0xA, true)
	assert.True(t, m.Keypad()[0xA])

	key, ok := m.Keypad().FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xA), key)

	m.SetKey(0x1A, false) // only the lower nibble is used
	assert.False(t, m.Keypad()[0xA])

	m.SetKey(0x3, true)
	m.Keypad().Reset()
	_, ok = m.Keypad().FirstPressed()
	assert.False(t, ok)
}

func TestFramebufferWrap(t *testing.T) {
	var fb Framebuffer

	assert.False(t, fb.toggle(DisplayWidth+1, DisplayHeight+2))
	assert.Equal(t, byte(1), fb.Pixel(1, 2))
	assert.Equal(t, byte(1), fb.Pixel(-DisplayWidth+1, -DisplayHeight+2))
	assert.True(t, fb.toggle(1, 2))
	assert.Equal(t, 0, fb.Lit())
}

func TestRandomSource(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for range 32 {
		assert.Equal(t, a.Byte(), b.Byte())
	}

	seq := &SequenceSource{Bytes: []byte{1, 2}}
	assert.Equal(t, byte(1), seq.Byte())
	assert.Equal(t, byte(2), seq.Byte())
	assert.Equal(t, byte(1), seq.Byte())

	empty := &SequenceSource{}
	assert.Equal(t, byte(0), empty.Byte())
}
