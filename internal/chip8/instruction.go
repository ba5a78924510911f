package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Operation identifies the shape of a decoded instruction.
type Operation uint8

// Operations of the CHIP-8 instruction set.
const (
	OpUnknown          Operation = iota
	OpHalt                       // 0000
	OpCls                        // 00E0
	OpRet                        // 00EE
	OpJump                       // 1NNN
	OpCall                       // 2NNN
	OpSkipEqualByte              // 3XNN
	OpSkipNotEqualByte           // 4XNN
	OpSkipEqualReg               // 5XY0
	OpLoadByte                   // 6XNN
	OpAddByte                    // 7XNN
	OpLoadReg                    // 8XY0
	OpOr                         // 8XY1
	OpAnd                        // 8XY2
	OpXor                        // 8XY3
	OpAddReg                     // 8XY4
	OpSub                        // 8XY5
	OpShr                        // 8XY6
	OpSubn                       // 8XY7
	OpShl                        // 8XYE
	OpSkipNotEqualReg            // 9XY0
	OpLoadIndex                  // ANNN
	OpJumpOffset                 // BNNN
	OpRandom                     // CXNN
	OpDraw                       // DXYN
	OpSkipKey                    // EX9E
	OpSkipNotKey                 // EXA1
	OpLoadDelay                  // FX07
	OpWaitKey                    // FX0A
	OpSetDelay                   // FX15
	OpSetSound                   // FX18
	OpAddIndex                   // FX1E
	OpLoadFont                   // FX29
	OpStoreBCD                   // FX33
	OpStoreRegs                  // FX55
	OpLoadRegs                   // FX65
)

// instructions maps every operation to its entry in the CHIP-8 instruction catalog.
var instructions = map[Operation]*chip8.Instruction{
	OpCls:              chip8.ClsInst,
	OpRet:              chip8.RetInst,
	OpJump:             chip8.JpInst,
	OpCall:             chip8.CallInst,
	OpSkipEqualByte:    chip8.SeInst,
	OpSkipNotEqualByte: chip8.SneInst,
	OpSkipEqualReg:     chip8.SeInst,
	OpLoadByte:         chip8.LdInst,
	OpAddByte:          chip8.AddInst,
	OpLoadReg:          chip8.LdInst,
	OpOr:               chip8.OrInst,
	OpAnd:              chip8.AndInst,
	OpXor:              chip8.XorInst,
	OpAddReg:           chip8.AddInst,
	OpSub:              chip8.SubInst,
	OpShr:              chip8.ShrInst,
	OpSubn:             chip8.SubnInst,
	OpShl:              chip8.ShlInst,
	OpSkipNotEqualReg:  chip8.SneInst,
	OpLoadIndex:        chip8.LdInst,
	OpJumpOffset:       chip8.JpInst,
	OpRandom:           chip8.RndInst,
	OpDraw:             chip8.DrwInst,
	OpSkipKey:          chip8.SkpInst,
	OpSkipNotKey:       chip8.SknpInst,
	OpLoadDelay:        chip8.LdInst,
	OpWaitKey:          chip8.LdInst,
	OpSetDelay:         chip8.LdInst,
	OpSetSound:         chip8.LdInst,
	OpAddIndex:         chip8.AddInst,
	OpLoadFont:         chip8.LdInst,
	OpStoreBCD:         chip8.LdInst,
	OpStoreRegs:        chip8.LdInst,
	OpLoadRegs:         chip8.LdInst,
}

// Name returns the mnemonic of the operation.
func (o Operation) Name() string {
	switch o {
	case OpHalt:
		return "halt"
	case OpUnknown:
		return "unknown"
	}
	ins, ok := instructions[o]
	if !ok {
		return "unknown"
	}
	return ins.Name
}

// IsSkip returns whether the operation conditionally skips the next instruction.
func (o Operation) IsSkip() bool {
	ins, ok := instructions[o]
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// Instruction is a decoded instruction word. Op selects the variant, the
// operand fields that are meaningful depend on it.
type Instruction struct {
	Op   Operation
	Word uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // fourth nibble, sprite height
	NN  uint8  // lower byte immediate
	NNN uint16 // lower 12 bit address
}

// Decode splits the instruction word into its nibble fields and resolves
// the operation. Words without a matching operation decode to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    extractRegisterX(word),
		Y:    extractRegisterY(word),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
	ins.Op = decodeOperation(word, ins)
	return ins
}

func decodeOperation(word uint16, ins Instruction) Operation {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x0000:
			return OpHalt
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualByte
	case 0x4:
		return OpSkipNotEqualByte
	case 0x5:
		if ins.N == 0 {
			return OpSkipEqualReg
		}
	case 0x6:
		return OpLoadByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		if ins.N == 0 {
			return OpSkipNotEqualReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNotKey
		}
	case 0xF:
		return decodeMisc(ins.NN)
	}
	return OpUnknown
}

func decodeALU(n uint8) Operation {
	switch n {
	case 0x0:
		return OpLoadReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpUnknown
}

func decodeMisc(nn uint8) Operation {
	switch nn {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpLoadFont
	case 0x33:
		return OpStoreBCD
	case 0x55:
		return OpStoreRegs
	case 0x65:
		return OpLoadRegs
	}
	return OpUnknown
}

// String formats the instruction with its operands, for example "drw V2, V3, $5".
func (ins Instruction) String() string {
	name := ins.Op.Name()
	if params := ins.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	if ins.Op == OpUnknown {
		return fmt.Sprintf("%s $%04X", name, ins.Word)
	}
	return name
}

func (ins Instruction) params() string {
	switch ins.Op {
	case OpJump, OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpJumpOffset:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpSkipEqualByte, OpSkipNotEqualByte, OpLoadByte, OpAddByte, OpRandom:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case OpSkipEqualReg, OpSkipNotEqualReg, OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShr, OpShl, OpSkipKey, OpSkipNotKey:
		return fmt.Sprintf("V%X", ins.X)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpLoadDelay:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLoadFont:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
