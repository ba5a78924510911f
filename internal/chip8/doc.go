// Package chip8 implements a CHIP-8 interpreter core.
//
// # Machine State
//
// A Machine owns 4KB of memory, the registers V0-VF, the index register I,
// the program counter, an unbounded call stack, the delay and sound timers,
// a 64x32 monochrome framebuffer and the 16 key hex keypad.
//
//   - 0x000-0x1FF: Interpreter area, the hex font is stored at 0x000
//   - ProgramStart-MaxAddress: Program and data area
//
// # Execution
//
// Every call to Machine.Step fetches one 2 byte instruction word, decodes it
// into an Instruction and executes it, then decrements the timers. The
// program counter is advanced by the fetch, skip instructions add another 2.
//
// Conventions for the ambiguous parts of the instruction set:
//   - RET pops the return address without adding 2, CALL pushes the address
//     of the instruction following the call. RET on an empty stack does nothing.
//   - JP V0, addr jumps to addr + V0 without any bounds check, fetching from
//     outside the memory halts the machine with ErrAddressOutOfRange.
//   - SHR and SHL shift Vx in place, Vy is ignored.
//   - LD [I], Vx and LD Vx, [I] leave I unchanged.
//   - The flag register VF is written after the result, so the flag wins when
//     the target register is VF.
//   - LD Vx, K rewinds the program counter while no key is pressed, the same
//     instruction is executed again on the next step.
//   - SKP Vx and SKNP Vx use only the lower nibble of Vx as the key, values
//     above 0xF select the key Vx & 0xF.
//   - A program with an odd length ends before its last byte, the trailing
//     byte is never executed as half of an instruction word.
//   - The instruction word 0x0000 halts the machine. Any other unknown word is
//     skipped, or halts with ErrUnknownOpcode in strict mode.
//
// # Usage Example
//
//	m := chip8.New(chip8.WithLogger(logger), chip8.WithRandom(chip8.NewRandomSource(seed)))
//	if err := m.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		ok, err := m.Step()
//		if err != nil {
//			return err
//		}
//		if !ok {
//			break
//		}
//	}
package chip8
