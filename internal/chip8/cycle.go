package chip8

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Step executes one cycle: fetch, decode, execute and timer decrement.
// It returns false when the machine can not continue. A normal end of the
// program returns false with a nil error, fatal conditions return the error.
func (m *Machine) Step() (bool, error) {
	if m.halted {
		return false, nil
	}

	address := m.pc
	word, err := m.fetch()
	if err != nil {
		if errors.Is(err, ErrEndOfProgram) {
			m.halt("End of program reached", address)
			return false, nil
		}
		m.halted = true
		return false, err
	}

	ins := Decode(word)
	if ins.Op == OpHalt {
		m.halt("Halt instruction reached", address)
		return false, nil
	}

	if m.trace {
		m.logger.Debug("Executing",
			log.Hex("address", address),
			log.Stringer("instruction", ins))
	}

	m.waiting = false
	if err := m.execute(ins); err != nil {
		m.halted = true
		return false, fmt.Errorf("executing %s at address $%03X: %w", ins, address, err)
	}
	if m.trace && ins.Op.IsSkip() && m.pc == address+2*InstructionSize {
		m.logger.Debug("Skipping next instruction",
			log.Hex("address", address+InstructionSize))
	}

	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
	m.cycles++
	return true, nil
}

// Run steps the machine until it halts, the context is cancelled or the
// given number of cycles was executed. A cycle limit of 0 means no limit.
// It does not pace the execution.
func (m *Machine) Run(ctx context.Context, maxCycles uint64) error {
	for executed := uint64(0); maxCycles == 0 || executed < maxCycles; executed++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		ok, err := m.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}

// fetch reads the big endian instruction word at the program counter and
// advances the program counter past it. A word that is not completely
// inside the loaded program ends the program.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+InstructionSize > MemorySize {
		return 0, fmt.Errorf("fetching instruction: %w: $%04X", ErrAddressOutOfRange, m.pc)
	}
	if int(m.pc)+InstructionSize > int(m.programEnd) {
		return 0, ErrEndOfProgram
	}

	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += InstructionSize
	return word, nil
}

func (m *Machine) halt(reason string, address uint16) {
	m.halted = true
	m.logger.Debug(reason,
		log.Hex("address", address),
		log.Int("cycles", int(m.cycles)))
}
