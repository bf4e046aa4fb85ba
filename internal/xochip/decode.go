package xochip

// Op identifies a decoded instruction.
type Op uint8

// Instruction ops.
const (
	OpInvalid Op = iota
	OpSys
	OpCls
	OpRet
	OpScrollDown
	OpScrollUp
	OpScrollRight
	OpScrollLeft
	OpExit
	OpLowRes
	OpHighRes
	OpJump
	OpCall
	OpSkipEqualByte
	OpSkipNotEqualByte
	OpSkipEqualRegister
	OpSaveRange
	OpLoadRange
	OpLoadByte
	OpAddByte
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAdd
	OpSub
	OpShr
	OpSubn
	OpShl
	OpSkipNotEqualRegister
	OpLoadIndex
	OpJumpV0
	OpRandom
	OpDraw
	OpSkipPressed
	OpSkipNotPressed
	OpLoadIndexLong
	OpPlane
	OpAudio
	OpGetDelay
	OpWaitKey
	OpSetDelay
	OpSetSound
	OpAddIndex
	OpFont
	OpBigFont
	OpBCD
	OpPitch
	OpStore
	OpLoad
	OpSaveFlags
	OpLoadFlags

	opCount
)

var opNames = [opCount]string{
	OpInvalid:              "invalid",
	OpSys:                  "sys",
	OpCls:                  "cls",
	OpRet:                  "ret",
	OpScrollDown:           "scd",
	OpScrollUp:             "scu",
	OpScrollRight:          "scr",
	OpScrollLeft:           "scl",
	OpExit:                 "exit",
	OpLowRes:               "low",
	OpHighRes:              "high",
	OpJump:                 "jp",
	OpCall:                 "call",
	OpSkipEqualByte:        "se",
	OpSkipNotEqualByte:     "sne",
	OpSkipEqualRegister:    "se",
	OpSaveRange:            "save",
	OpLoadRange:            "load",
	OpLoadByte:             "ld",
	OpAddByte:              "add",
	OpMove:                 "ld",
	OpOr:                   "or",
	OpAnd:                  "and",
	OpXor:                  "xor",
	OpAdd:                  "add",
	OpSub:                  "sub",
	OpShr:                  "shr",
	OpSubn:                 "subn",
	OpShl:                  "shl",
	OpSkipNotEqualRegister: "sne",
	OpLoadIndex:            "ld",
	OpJumpV0:               "jp",
	OpRandom:               "rnd",
	OpDraw:                 "drw",
	OpSkipPressed:          "skp",
	OpSkipNotPressed:       "sknp",
	OpLoadIndexLong:        "ld",
	OpPlane:                "plane",
	OpAudio:                "audio",
	OpGetDelay:             "ld",
	OpWaitKey:              "ld",
	OpSetDelay:             "ld",
	OpSetSound:             "ld",
	OpAddIndex:             "add",
	OpFont:                 "ld",
	OpBigFont:              "ld",
	OpBCD:                  "ld",
	OpPitch:                "pitch",
	OpStore:                "ld",
	OpLoad:                 "ld",
	OpSaveFlags:            "ld",
	OpLoadFlags:            "ld",
}

// String returns the mnemonic of the op.
func (o Op) String() string {
	if o >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Instruction is a decoded instruction word with its operand fields.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // bits 11-8
	Y   uint8  // bits 7-4
	N   uint8  // bits 3-0
	KK  uint8  // bits 7-0
	NNN uint16 // bits 11-0
}

// Size returns the size of the instruction in bytes.
func (i Instruction) Size() int {
	if i.Op == OpLoadIndexLong {
		return 2 * instructionSize
	}
	return instructionSize
}

// Decode splits the instruction word into its fields and identifies the op.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8(word >> 8 & 0xF),
		Y:    uint8(word >> 4 & 0xF),
		N:    uint8(word & 0xF),
		KK:   uint8(word),
		NNN:  word & 0x0FFF,
	}
	ins.Op = decodeOp(word, ins)
	return ins
}

func decodeOp(word uint16, ins Instruction) Op {
	switch word >> 12 {
	case 0x0:
		return decodeSystem(word)
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualByte
	case 0x4:
		return OpSkipNotEqualByte
	case 0x5:
		switch ins.N {
		case 0x0:
			return OpSkipEqualRegister
		case 0x2:
			return OpSaveRange
		case 0x3:
			return OpLoadRange
		}
	case 0x6:
		return OpLoadByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		if ins.N == 0 {
			return OpSkipNotEqualRegister
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpV0
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch ins.KK {
		case 0x9E:
			return OpSkipPressed
		case 0xA1:
			return OpSkipNotPressed
		}
	case 0xF:
		return decodeMisc(word, ins)
	}
	return OpInvalid
}

func decodeSystem(word uint16) Op {
	switch {
	case word == 0x00E0:
		return OpCls
	case word == 0x00EE:
		return OpRet
	case word&0xFFF0 == 0x00C0:
		return OpScrollDown
	case word&0xFFF0 == 0x00D0:
		return OpScrollUp
	case word == 0x00FB:
		return OpScrollRight
	case word == 0x00FC:
		return OpScrollLeft
	case word == 0x00FD:
		return OpExit
	case word == 0x00FE:
		return OpLowRes
	case word == 0x00FF:
		return OpHighRes
	default:
		return OpSys
	}
}

func decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpMove
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAdd
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	default:
		return OpInvalid
	}
}

func decodeMisc(word uint16, ins Instruction) Op {
	if word == 0xF000 {
		return OpLoadIndexLong
	}
	if word == 0xF002 {
		return OpAudio
	}

	switch ins.KK {
	case 0x01:
		return OpPlane
	case 0x07:
		return OpGetDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpFont
	case 0x30:
		return OpBigFont
	case 0x33:
		return OpBCD
	case 0x3A:
		return OpPitch
	case 0x55:
		return OpStore
	case 0x65:
		return OpLoad
	case 0x75:
		return OpSaveFlags
	case 0x85:
		return OpLoadFlags
	default:
		return OpInvalid
	}
}
