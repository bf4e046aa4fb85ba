package xochip

// Step fetches, decodes and executes one instruction. The program counter
// is advanced before the instruction executes, so after an error it points
// past the faulting instruction. Key release edges are cleared after every
// step, whether it succeeded or not.
func (m *Machine) Step() error {
	if m == nil {
		return ErrNullContext
	}
	defer m.keys.endStep()

	if m.halted {
		return nil
	}

	word, err := m.fetch()
	if err != nil {
		return err
	}
	ins := Decode(word)
	if m.opts.Trace && m.logger != nil {
		m.trace(ins)
	}
	return m.execute(ins)
}

// fetch reads the instruction word at pc and advances pc past it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 >= MemorySize {
		return 0, ErrAddressOverflow
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += instructionSize
	return word, nil
}

//nolint:cyclop,funlen // the dispatch switch covers the complete instruction set
func (m *Machine) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpSys:
		return nil
	case OpCls:
		mask := PlaneBoth
		if m.opts.Quirks.ClearSelectedPlanes {
			mask = m.display.selected
		}
		m.display.clear(mask)
	case OpRet:
		address, err := m.stack.pop()
		if err != nil {
			return err
		}
		m.pc = address
	case OpScrollDown:
		m.display.scroll(m.display.selected, 0, int(ins.N))
	case OpScrollUp:
		m.display.scroll(m.display.selected, 0, -int(ins.N))
	case OpScrollRight:
		m.display.scroll(m.display.selected, 4, 0)
	case OpScrollLeft:
		m.display.scroll(m.display.selected, -4, 0)
	case OpExit:
		m.halted = true
	case OpLowRes:
		m.display.lowRes = true
		m.display.clear(PlaneBoth)
	case OpHighRes:
		m.display.lowRes = false
		m.display.clear(PlaneBoth)

	case OpJump:
		return m.jump(int(ins.NNN))
	case OpJumpV0:
		return m.jump(int(ins.NNN) + int(m.v[0]))
	case OpCall:
		return m.call(int(ins.NNN))

	case OpSkipEqualByte:
		return m.skipIf(m.v[x] == ins.KK)
	case OpSkipNotEqualByte:
		return m.skipIf(m.v[x] != ins.KK)
	case OpSkipEqualRegister:
		return m.skipIf(m.v[x] == m.v[y])
	case OpSkipNotEqualRegister:
		return m.skipIf(m.v[x] != m.v[y])
	case OpSkipPressed:
		return m.skipIf(m.keys.isPressed(m.v[x]))
	case OpSkipNotPressed:
		return m.skipIf(!m.keys.isPressed(m.v[x]))

	case OpLoadByte:
		m.v[x] = ins.KK
	case OpAddByte:
		m.v[x] += ins.KK
	case OpMove:
		m.v[x] = m.v[y]
	case OpOr:
		m.setWithFlag(x, m.v[x]|m.v[y], false)
	case OpAnd:
		m.setWithFlag(x, m.v[x]&m.v[y], false)
	case OpXor:
		m.setWithFlag(x, m.v[x]^m.v[y], false)
	case OpAdd:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.setWithFlag(x, uint8(sum), sum > 0xFF)
	case OpSub:
		m.setWithFlag(x, m.v[x]-m.v[y], m.v[x] >= m.v[y])
	case OpSubn:
		m.setWithFlag(x, m.v[y]-m.v[x], m.v[y] >= m.v[x])
	case OpShr:
		m.shiftRight(x, y)
	case OpShl:
		m.shiftLeft(x, y)
	case OpRandom:
		m.v[x] = uint8(m.rng.Uint32()) & ins.KK

	case OpLoadIndex:
		m.index = ins.NNN
	case OpLoadIndexLong:
		return m.loadIndexLong()
	case OpAddIndex:
		m.index += uint16(m.v[x])
	case OpFont:
		return m.loadFont(x, smallFontAddress, smallGlyphHeight)
	case OpBigFont:
		return m.loadFont(x, bigFontAddress, bigGlyphHeight)
	case OpBCD:
		return m.storeBCD(x)
	case OpStore:
		return m.storeRegisters(0, x)
	case OpLoad:
		m.loadRegisters(0, x)
	case OpSaveRange:
		return m.storeRegisters(min(x, y), max(x, y))
	case OpLoadRange:
		m.loadRegisters(min(x, y), max(x, y))
	case OpSaveFlags:
		copy(m.flags[:int(x)+1], m.v[:int(x)+1])
	case OpLoadFlags:
		copy(m.v[:int(x)+1], m.flags[:int(x)+1])

	case OpDraw:
		m.draw(x, y, ins.N)
	case OpPlane:
		if x > PlaneBoth {
			return ErrInvalidInstruction
		}
		m.display.selected = x
	case OpAudio:
		for i := range m.audio {
			m.audio[i] = m.read(m.index + uint16(i))
		}
	case OpPitch:
		m.pitch = m.v[x]

	case OpGetDelay:
		m.v[x] = m.delay
	case OpSetDelay:
		m.delay = m.v[x]
	case OpSetSound:
		m.sound = m.v[x]
	case OpWaitKey:
		key, ok := m.keys.firstReleased()
		if !ok {
			m.pc -= instructionSize
			return nil
		}
		m.v[x] = key

	default:
		return ErrInvalidInstruction
	}
	return nil
}

// setWithFlag stores the result in Vx and then sets VF, so that the flag
// wins when x is VF.
func (m *Machine) setWithFlag(x, result uint8, flag bool) {
	m.v[x] = result
	m.v[flagRegister] = boolToByte(flag)
}

// jump sets pc to the logical target address.
func (m *Machine) jump(target int) error {
	address, err := storedAddress(target)
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

func (m *Machine) call(target int) error {
	address, err := storedAddress(target)
	if err != nil {
		return err
	}
	if err := m.stack.push(m.pc); err != nil {
		return err
	}
	m.pc = address
	return nil
}

// storedAddress converts a logical address to a stored memory offset.
func storedAddress(target int) (uint16, error) {
	if target < ProgramStart {
		return 0, ErrAddressUnderflow
	}
	target -= ProgramStart
	if target >= MemorySize {
		return 0, ErrAddressOverflow
	}
	return uint16(target), nil
}

// skipIf skips the next instruction if the condition holds. A 4 byte
// instruction is skipped completely.
func (m *Machine) skipIf(condition bool) error {
	if !condition {
		return nil
	}
	size := instructionSize
	if int(m.pc)+1 < MemorySize && m.memory[m.pc] == 0xF0 && m.memory[m.pc+1] == 0x00 {
		size *= 2
	}
	next := int(m.pc) + size
	if next >= MemorySize {
		return ErrAddressOverflow
	}
	m.pc = uint16(next)
	return nil
}

func (m *Machine) shiftRight(x, y uint8) {
	value := m.v[x]
	if !m.opts.Quirks.ShiftByVY {
		m.setWithFlag(x, value>>1, value&1 != 0)
		return
	}

	count := m.v[y]
	var result, flag uint8
	if count < 8 {
		result = value >> count
	}
	if count > 0 && count <= 8 {
		flag = value >> (count - 1) & 1
	}
	m.setWithFlag(x, result, flag != 0)
}

func (m *Machine) shiftLeft(x, y uint8) {
	value := m.v[x]
	if !m.opts.Quirks.ShiftByVY {
		m.setWithFlag(x, value<<1, value&0x80 != 0)
		return
	}

	count := m.v[y]
	var result, flag uint8
	if count < 8 {
		result = value << count
	}
	if count > 0 && count <= 8 {
		flag = value << (count - 1) >> 7
	}
	m.setWithFlag(x, result, flag != 0)
}

// loadIndexLong reads the 16 bit address following the F000 word into the
// index register.
func (m *Machine) loadIndexLong() error {
	address, err := m.fetch()
	if err != nil {
		return err
	}
	m.index = address
	return nil
}

func (m *Machine) loadFont(x uint8, base, height uint16) error {
	digit := m.v[x]
	if digit >= glyphCount {
		return ErrInvalidInstruction
	}
	m.index = base + uint16(digit)*height
	return nil
}

func (m *Machine) storeBCD(x uint8) error {
	value := m.v[x]
	digits := [3]byte{value / 100, value / 10 % 10, value % 10}
	for i, d := range digits {
		if err := m.write(m.index+uint16(i), d); err != nil {
			return err
		}
	}
	return nil
}

// storeRegisters writes the registers first..=last to memory at the index
// register and advances the index by the register count.
func (m *Machine) storeRegisters(first, last uint8) error {
	for r := first; r <= last; r++ {
		if err := m.write(m.index, m.v[r]); err != nil {
			return err
		}
		m.index++
	}
	return nil
}

// loadRegisters reads the registers first..=last from memory at the index
// register and advances the index by the register count.
func (m *Machine) loadRegisters(first, last uint8) {
	for r := first; r <= last; r++ {
		m.v[r] = m.read(m.index)
		m.index++
	}
}

// draw XORs a sprite from memory at the index register onto the selected
// planes. Height 0 draws a 16x16 sprite. VF is set if a lit pixel was
// turned off.
func (m *Machine) draw(x, y, height uint8) {
	width, rows := 8, int(height)
	if height == 0 {
		width, rows = 16, 16
	}

	scale := 1
	if m.display.lowRes {
		scale = 2
	}
	screenWidth, screenHeight := Width/scale, Height/scale
	originX := int(m.v[x]) % screenWidth
	originY := int(m.v[y]) % screenHeight

	address := m.index
	collision := false

	for plane := 0; plane < planeCount; plane++ {
		if m.display.selected&(1<<plane) == 0 {
			continue
		}

		for row := 0; row < rows; row++ {
			var line uint16
			for b := 0; b < width/8; b++ {
				line = line<<8 | uint16(m.read(address))
				address++
			}

			py := (originY + row) % screenHeight
			for col := 0; col < width; col++ {
				if line&(1<<(width-1-col)) == 0 {
					continue
				}
				px := (originX + col) % screenWidth
				if m.display.flip(plane, px*scale, py*scale, scale) {
					collision = true
				}
			}
		}
	}

	m.v[flagRegister] = boolToByte(collision)
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
