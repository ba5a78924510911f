package chip8

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64×32 pixels) and stack are maintained
// separately from the 4KB main memory address space.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// MaxProgramSize is the largest program image that fits behind ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, used for carry, borrow and collision.
	FlagRegister = 0xF

	// InstructionSize is the width of every instruction in bytes.
	InstructionSize = 2

	// GlyphSize is the number of bytes of one font character.
	GlyphSize = 5
)

// font contains the 4x5 pixel hex digits 0-F, stored at address 0.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Machine contains the complete state of one emulated CHIP-8 program run.
// It is not safe for concurrent use, the embedding application has to confine
// framebuffer reads and keypad writes to the time between Step calls.
type Machine struct {
	logger *log.Logger
	random RandomSource
	strict bool
	trace  bool

	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	stack  []uint16

	delayTimer byte
	soundTimer byte

	display Framebuffer
	keypad  Keypad

	programEnd uint16
	cycles     uint64
	halted     bool
	waiting    bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used to report halts and unknown opcodes.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithRandom sets the byte source used by the RND instruction.
func WithRandom(random RandomSource) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithStrict makes unknown opcodes halt the machine with an error
// instead of skipping them.
func WithStrict(strict bool) Option {
	return func(m *Machine) {
		m.strict = strict
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(m *Machine) {
		m.trace = trace
	}
}

// New returns a machine ready to load a program. The program counter points
// to ProgramStart and the font is preloaded at address 0.
func New(options ...Option) *Machine {
	m := &Machine{
		pc:         ProgramStart,
		programEnd: ProgramStart,
	}
	for _, option := range options {
		option(m)
	}
	if m.logger == nil {
		m.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if m.random == nil {
		m.random = NewRandomSource(0)
	}

	copy(m.memory[:], font[:])
	return m
}

// Load copies the program image to ProgramStart and records its end offset.
// Bytes of a previously loaded program are cleared. The machine is left
// unmodified if the image is rejected.
func (m *Machine) Load(program []byte) error {
	switch {
	case len(program) == 0:
		return ErrEmptyProgram
	case len(program) > MaxProgramSize:
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	clear(m.memory[ProgramStart:])
	copy(m.memory[ProgramStart:], program)
	m.programEnd = uint16(ProgramStart + len(program))

	m.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("end", m.programEnd))
	return nil
}

// LoadReader reads a complete program image from the reader and loads it.
func (m *Machine) LoadReader(reader io.Reader) error {
	var buf bytes.Buffer
	// read one byte past the limit to detect oversized images without
	// buffering an arbitrarily large input
	if _, err := io.Copy(&buf, io.LimitReader(reader, MaxProgramSize+1)); err != nil {
		return fmt.Errorf("reading program: %w", err)
	}
	return m.Load(buf.Bytes())
}

// PC returns the program counter, the address of the next instruction.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// V returns the value of register Vx. Only the lower nibble of x is used.
func (m *Machine) V(x uint8) byte {
	return m.v[x&0xF]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// StackDepth returns the number of pending subroutine return addresses.
func (m *Machine) StackDepth() int {
	return len(m.stack)
}

// Cycles returns the number of executed steps.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Halted returns whether the machine reached the end of the program or
// stopped because of a fatal condition.
func (m *Machine) Halted() bool {
	return m.halted
}

// Waiting returns whether the last executed instruction is blocked waiting
// for a key press.
func (m *Machine) Waiting() bool {
	return m.waiting
}

// ProgramEnd returns the address following the last loaded program byte.
func (m *Machine) ProgramEnd() uint16 {
	return m.programEnd
}

// Memory returns the byte stored at the given address. Addresses outside
// of the memory return 0.
func (m *Machine) Memory(address uint16) byte {
	if int(address) >= MemorySize {
		return 0
	}
	return m.memory[address]
}

// Framebuffer returns the display memory. Callers must treat it as read-only.
func (m *Machine) Framebuffer() *Framebuffer {
	return &m.display
}

// Keypad returns the input map that an input adapter updates between steps.
func (m *Machine) Keypad() *Keypad {
	return &m.keypad
}

// SetKey sets the pressed state of the given key 0x0-0xF.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keypad[key&0xF] = pressed
}
