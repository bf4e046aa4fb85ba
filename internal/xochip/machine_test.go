package xochip

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestMachine returns a machine with the given instruction words loaded
// at the program start.
func newTestMachine(t *testing.T, opts Options, program ...uint16) *Machine {
	t.Helper()

	if opts.Seed == 0 {
		opts.Seed = 1
	}
	m := New(log.NewTestLogger(t), opts)
	rom := make([]byte, 0, len(program)*2)
	for _, word := range program {
		rom = append(rom, byte(word>>8), byte(word))
	}
	assert.NoError(t, m.LoadROM(rom))
	return m
}

func TestNew(t *testing.T) {
	m := New(log.NewTestLogger(t), DefaultOptions())

	assert.NotNil(t, m)
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, Plane1, m.Display().Selected())
	assert.False(t, m.Display().LowRes())
	assert.False(t, m.Halted())
}

func TestNew_StartLowRes(t *testing.T) {
	m := New(log.NewTestLogger(t), Options{StartLowRes: true})
	assert.True(t, m.Display().LowRes())
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, DefaultOptions(), 0x2206, 0x6A05)
	m.v[3] = 9
	m.index = 0x345
	m.delay = 4
	m.sound = 5
	m.pitch = 6
	m.keys.down(2)
	m.display.set(1, 3, 3, true)
	assert.NoError(t, m.Step())

	assert.NoError(t, m.Reset())
	assert.NoError(t, m.Reset())

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, uint8(0), m.V(3))
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.Equal(t, uint8(0), m.Pitch())
	assert.Equal(t, uint16(0), m.PressedKeys())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, uint8(0), m.Display().Pixel(3, 3))
	assert.Equal(t, byte(0), m.memory[0])
}

func TestNilMachine(t *testing.T) {
	var m *Machine

	assert.True(t, errors.Is(m.Reset(), ErrNullContext))
	assert.True(t, errors.Is(m.LoadROM(nil), ErrNullContext))
	assert.True(t, errors.Is(m.WriteROM(nil, 0), ErrNullContext))
	assert.True(t, errors.Is(m.Step(), ErrNullContext))
	assert.True(t, errors.Is(m.Tick(), ErrNullContext))
	m.KeyDown(1)
	m.KeyUp(1)
}

func TestLoadROM(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 16, false},
		{"exact capacity", MemorySize, false},
		{"one byte too large", MemorySize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, DefaultOptions())
			m.memory[0] = 0xAB

			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = byte(i)
			}
			err := m.LoadROM(rom)

			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrRomTooLarge))
				assert.Equal(t, byte(0xAB), m.memory[0])
				return
			}
			assert.NoError(t, err)
			if tt.size > 0 {
				assert.Equal(t, byte(tt.size-1), m.memory[tt.size-1])
			} else {
				assert.Equal(t, byte(0), m.memory[0])
			}
		})
	}
}

func TestLoadROM_ClearsState(t *testing.T) {
	m := newTestMachine(t, DefaultOptions(), 0x1300)
	m.memory[0x500] = 0x11
	m.v[1] = 7
	assert.NoError(t, m.Step())

	assert.NoError(t, m.LoadROM([]byte{0x60, 0x01}))

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, byte(0), m.memory[0x500])
	assert.Equal(t, uint8(0), m.V(1))
}

func TestWriteROM(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		size    int
		wantErr bool
	}{
		{"start", 0, 4, false},
		{"middle", 0x100, 4, false},
		{"end", MemorySize - 4, 4, false},
		{"past end", MemorySize - 3, 4, true},
		{"negative offset", -1, 4, true},
		{"too large", 0, MemorySize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, DefaultOptions(), 0x6A05)
			m.v[2] = 3

			data := make([]byte, tt.size)
			for i := range data {
				data[i] = 0xEE
			}
			err := m.WriteROM(data, tt.offset)

			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrRomTooLarge))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, byte(0xEE), m.memory[tt.offset])
			assert.Equal(t, byte(0xEE), m.memory[tt.offset+tt.size-1])
			assert.Equal(t, uint8(3), m.V(2))
			if tt.offset > 0 {
				assert.Equal(t, byte(0x6A), m.memory[0])
			}
		})
	}
}

func TestTick(t *testing.T) {
	m := newTestMachine(t, DefaultOptions())
	m.delay = 2
	m.sound = 1

	assert.NoError(t, m.Tick())
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	assert.NoError(t, m.Tick())
	assert.NoError(t, m.Tick())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestStep_DoesNotTick(t *testing.T) {
	m := newTestMachine(t, DefaultOptions(), 0x6000, 0x6000)
	m.delay = 10
	m.sound = 10

	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())

	assert.Equal(t, uint8(10), m.DelayTimer())
	assert.Equal(t, uint8(10), m.SoundTimer())
}

func TestReservedRegion(t *testing.T) {
	m := newTestMachine(t, DefaultOptions())

	assert.Equal(t, smallFont[0], m.read(0x000))
	assert.Equal(t, smallFont[len(smallFont)-1], m.read(0x04F))
	assert.Equal(t, bigFont[0], m.read(0x050))
	assert.Equal(t, byte(0), m.read(0x1FF))
	assert.True(t, errors.Is(m.write(0x1FF, 1), ErrAddressUnderflow))
	assert.NoError(t, m.write(0x200, 1))
	assert.Equal(t, byte(1), m.memory[0])
	assert.NoError(t, m.write(0xFFFF, 2))
	assert.Equal(t, byte(2), m.memory[MemorySize-1])
}

func TestErrorText(t *testing.T) {
	errs := []Error{
		ErrNullContext,
		ErrRomTooLarge,
		ErrInvalidInstruction,
		ErrAddressOverflow,
		ErrAddressUnderflow,
		ErrStackOverflow,
		ErrStackUnderflow,
	}
	seen := map[string]bool{}
	for _, err := range errs {
		text := err.Error()
		assert.NotEmpty(t, text)
		assert.False(t, seen[text])
		seen[text] = true
	}
	assert.Equal(t, "unknown machine error", Error(0).Error())
}
