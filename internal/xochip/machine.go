package xochip

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Quirks selects between incompatible behaviors of historical dialects.
type Quirks struct {
	// ShiftByVY shifts Vx by the value of Vy instead of by one bit.
	ShiftByVY bool
	// ClearSelectedPlanes makes 00E0 clear only the selected planes
	// instead of both planes.
	ClearSelectedPlanes bool
}

// Options configures a machine.
type Options struct {
	Quirks Quirks

	StartLowRes bool   // power on in 64x32 low resolution mode
	Seed        uint64 // random generator seed, 0 picks a random seed
	Trace       bool   // log every executed instruction at debug level
}

// DefaultOptions returns the options of a machine with the original
// instruction behaviors.
func DefaultOptions() Options {
	return Options{}
}

// Machine is the complete state of one XO-CHIP interpreter instance.
type Machine struct {
	logger *log.Logger
	opts   Options
	rng    *rand.Rand

	pc    uint16 // stored memory offset of the next instruction
	index uint16 // logical address

	v     [RegisterCount]uint8
	delay uint8
	sound uint8
	pitch uint8

	memory  [MemorySize]byte
	stack   Stack
	display Display
	keys    keyLatch
	audio   [AudioPatternSize]byte
	flags   [FlagCount]uint8
	halted  bool
}

// New returns a new machine in its power on state.
func New(logger *log.Logger, opts Options) *Machine {
	m := &Machine{
		logger: logger,
		opts:   opts,
	}
	m.reset()
	return m
}

// Reset returns the machine to its power on state, including clearing the
// memory.
func (m *Machine) Reset() error {
	if m == nil {
		return ErrNullContext
	}
	m.reset()
	return nil
}

func (m *Machine) reset() {
	m.pc = 0
	m.index = 0
	m.v = [RegisterCount]uint8{}
	m.delay = 0
	m.sound = 0
	m.pitch = 0
	m.memory = [MemorySize]byte{}
	m.stack.reset()
	m.display.reset(m.opts.StartLowRes)
	m.keys = keyLatch{}
	m.audio = [AudioPatternSize]byte{}
	m.flags = [FlagCount]uint8{}
	m.halted = false

	seed := m.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	m.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
}

// LoadROM resets the machine and copies the ROM image to the start of the
// program memory. If the image is too large, the machine is left untouched.
func (m *Machine) LoadROM(data []byte) error {
	if m == nil {
		return ErrNullContext
	}
	if len(data) > MemorySize {
		return ErrRomTooLarge
	}
	m.reset()
	copy(m.memory[:], data)
	return nil
}

// WriteROM copies data into the program memory at the stored offset,
// keeping the remaining memory and all other state.
func (m *Machine) WriteROM(data []byte, offset int) error {
	if m == nil {
		return ErrNullContext
	}
	if offset < 0 || len(data) > MemorySize || offset+len(data) > MemorySize {
		return ErrRomTooLarge
	}
	copy(m.memory[offset:], data)
	return nil
}

// Tick decrements the delay and sound timers. The host calls it at 60 Hz,
// independent of the instruction rate.
func (m *Machine) Tick() error {
	if m == nil {
		return ErrNullContext
	}
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
	return nil
}

// PC returns the logical address of the next instruction.
func (m *Machine) PC() uint16 {
	return m.pc + ProgramStart
}

// Index returns the index register.
func (m *Machine) Index() uint16 {
	return m.index
}

// V returns the value of register Vx.
func (m *Machine) V(x uint8) uint8 {
	return m.v[x&0xF]
}

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

// Pitch returns the audio pitch register.
func (m *Machine) Pitch() uint8 {
	return m.pitch
}

// AudioPattern returns the staged 16 byte audio pattern.
func (m *Machine) AudioPattern() [AudioPatternSize]byte {
	return m.audio
}

// Halted returns whether the program executed the exit instruction.
func (m *Machine) Halted() bool {
	return m.halted
}

// StackDepth returns the number of active subroutine calls.
func (m *Machine) StackDepth() int {
	return m.stack.Depth()
}

// Display returns the display buffer. The host reads the pixels and calls
// Clean after consuming a frame.
func (m *Machine) Display() *Display {
	return &m.display
}

// read returns the byte at the logical address.
func (m *Machine) read(address uint16) byte {
	if address < ProgramStart {
		return reservedByte(address)
	}
	return m.memory[address-ProgramStart]
}

// write stores the byte at the logical address.
func (m *Machine) write(address uint16, value byte) error {
	if address < ProgramStart {
		return ErrAddressUnderflow
	}
	m.memory[address-ProgramStart] = value
	return nil
}
