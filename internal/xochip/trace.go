package xochip

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Mnemonic returns the assembler mnemonic of the instruction. Classic CHIP-8
// instructions are named by the shared CHIP-8 opcode table, the SUPER-CHIP
// and XO-CHIP extensions by the op name.
func Mnemonic(ins Instruction) string {
	if ins.Op == OpInvalid || extensionOps[ins.Op] {
		return ins.Op.String()
	}
	for _, op := range chip8.Opcodes[int(ins.Word>>12)] {
		if op.Instruction != nil && op.Info.Mask&ins.Word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return ins.Op.String()
}

var extensionOps = map[Op]bool{
	OpScrollDown:    true,
	OpScrollUp:      true,
	OpScrollRight:   true,
	OpScrollLeft:    true,
	OpExit:          true,
	OpLowRes:        true,
	OpHighRes:       true,
	OpSaveRange:     true,
	OpLoadRange:     true,
	OpLoadIndexLong: true,
	OpPlane:         true,
	OpAudio:         true,
	OpBigFont:       true,
	OpPitch:         true,
	OpSaveFlags:     true,
	OpLoadFlags:     true,
}

func (m *Machine) trace(ins Instruction) {
	m.logger.Debug("Executing instruction",
		log.Hex("address", m.PC()-instructionSize),
		log.Hex("opcode", ins.Word),
		log.String("mnemonic", Mnemonic(ins)),
	)
}
