package chip8

import "errors"

var (
	// ErrEmptyProgram is returned when loading a program without any bytes.
	ErrEmptyProgram = errors.New("empty program")
	// ErrProgramTooLarge is returned when a program does not fit behind ProgramStart.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrAddressOutOfRange is returned when an instruction accesses memory outside of 0x000-0xFFF.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrUnknownOpcode is returned in strict mode for instruction words without a handler.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrEndOfProgram signals that the program counter passed the loaded program.
	ErrEndOfProgram = errors.New("end of program")
)
