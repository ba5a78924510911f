package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// execute runs the handler for the decoded instruction. The program counter
// already points to the following instruction.
//
//nolint:funlen,cyclop // flat dispatch over all operations
func (m *Machine) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		m.display.clear()

	case OpRet:
		m.ret()

	case OpJump:
		m.pc = ins.NNN

	case OpCall:
		m.stack = append(m.stack, m.pc)
		m.pc = ins.NNN

	case OpSkipEqualByte:
		m.skipIf(m.v[x] == ins.NN)

	case OpSkipNotEqualByte:
		m.skipIf(m.v[x] != ins.NN)

	case OpSkipEqualReg:
		m.skipIf(m.v[x] == m.v[y])

	case OpSkipNotEqualReg:
		m.skipIf(m.v[x] != m.v[y])

	case OpLoadByte:
		m.v[x] = ins.NN

	case OpAddByte:
		m.v[x] += ins.NN

	case OpLoadReg:
		m.v[x] = m.v[y]

	case OpOr:
		m.v[x] |= m.v[y]

	case OpAnd:
		m.v[x] &= m.v[y]

	case OpXor:
		m.v[x] ^= m.v[y]

	case OpAddReg:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = byte(sum)
		m.setFlag(sum > 0xFF)

	case OpSub:
		noBorrow := m.v[x] >= m.v[y]
		m.v[x] -= m.v[y]
		m.setFlag(noBorrow)

	case OpSubn:
		noBorrow := m.v[y] >= m.v[x]
		m.v[x] = m.v[y] - m.v[x]
		m.setFlag(noBorrow)

	case OpShr:
		lsb := m.v[x] & 0x01
		m.v[x] >>= 1
		m.v[FlagRegister] = lsb

	case OpShl:
		msb := m.v[x] >> 7
		m.v[x] <<= 1
		m.v[FlagRegister] = msb

	case OpLoadIndex:
		m.i = ins.NNN

	case OpJumpOffset:
		m.pc = ins.NNN + uint16(m.v[0])

	case OpRandom:
		m.v[x] = m.random.Byte() & ins.NN

	case OpDraw:
		return m.draw(m.v[x], m.v[y], ins.N)

	case OpSkipKey:
		m.skipIf(m.keypad[m.v[x]&0xF])

	case OpSkipNotKey:
		m.skipIf(!m.keypad[m.v[x]&0xF])

	case OpLoadDelay:
		m.v[x] = m.delayTimer

	case OpWaitKey:
		m.waitKey(x)

	case OpSetDelay:
		m.delayTimer = m.v[x]

	case OpSetSound:
		m.soundTimer = m.v[x]

	case OpAddIndex:
		m.i += uint16(m.v[x])

	case OpLoadFont:
		m.i = uint16(m.v[x]) * GlyphSize

	case OpStoreBCD:
		return m.storeBCD(m.v[x])

	case OpStoreRegs:
		return m.storeRegisters(x)

	case OpLoadRegs:
		return m.loadRegisters(x)

	default:
		return m.unknownOpcode(ins)
	}
	return nil
}

func (m *Machine) ret() {
	if len(m.stack) == 0 {
		m.logger.Debug("Return with empty call stack ignored",
			log.Hex("address", m.pc-InstructionSize))
		return
	}
	last := len(m.stack) - 1
	m.pc = m.stack[last]
	m.stack = m.stack[:last]
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += InstructionSize
	}
}

func (m *Machine) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

// draw XORs an 8 pixel wide sprite of the given height read from memory at I
// onto the display, wrapping at the display edges.
func (m *Machine) draw(x, y byte, height uint8) error {
	if err := m.checkRange(m.i, uint16(height)); err != nil {
		return err
	}

	m.v[FlagRegister] = 0
	for row := range int(height) {
		sprite := m.memory[int(m.i)+row]
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if m.display.toggle(int(x)+col, int(y)+row) {
				m.v[FlagRegister] = 1
			}
		}
	}
	return nil
}

func (m *Machine) waitKey(x uint8) {
	key, ok := m.keypad.FirstPressed()
	if !ok {
		m.pc -= InstructionSize
		m.waiting = true
		return
	}
	m.v[x] = key
}

func (m *Machine) storeBCD(value byte) error {
	if err := m.checkRange(m.i, 3); err != nil {
		return err
	}
	m.memory[m.i] = value / 100
	m.memory[m.i+1] = value / 10 % 10
	m.memory[m.i+2] = value % 10
	return nil
}

func (m *Machine) storeRegisters(x uint8) error {
	count := uint16(x) + 1
	if err := m.checkRange(m.i, count); err != nil {
		return err
	}
	copy(m.memory[m.i:m.i+count], m.v[:count])
	return nil
}

func (m *Machine) loadRegisters(x uint8) error {
	count := uint16(x) + 1
	if err := m.checkRange(m.i, count); err != nil {
		return err
	}
	copy(m.v[:count], m.memory[m.i:m.i+count])
	return nil
}

// checkRange verifies that length bytes starting at address are inside the memory.
func (m *Machine) checkRange(address, length uint16) error {
	if int(address)+int(length) > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, length)
	}
	return nil
}

func (m *Machine) unknownOpcode(ins Instruction) error {
	address := m.pc - InstructionSize
	if m.strict {
		return fmt.Errorf("%w: $%04X at address $%03X", ErrUnknownOpcode, ins.Word, address)
	}
	m.logger.Warn("Skipping unknown opcode",
		log.Hex("address", address),
		log.Hex("opcode", ins.Word))
	return nil
}
