package xochip

import "math/bits"

// keyLatch tracks pressed keys and the keys released since the last step.
type keyLatch struct {
	pressed  uint16
	released uint16
}

func (k *keyLatch) down(key uint8) {
	if key >= KeyCount {
		return
	}
	k.pressed |= 1 << key
	k.released &^= 1 << key
}

func (k *keyLatch) up(key uint8) {
	if key >= KeyCount {
		return
	}
	k.pressed &^= 1 << key
	k.released |= 1 << key
}

func (k *keyLatch) isPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return k.pressed&(1<<key) != 0
}

// firstReleased returns the lowest key released since the last step.
func (k *keyLatch) firstReleased() (uint8, bool) {
	if k.released == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros16(k.released)), true
}

// endStep clears the release edges, they are only visible for one step.
func (k *keyLatch) endStep() {
	k.released = 0
}

// KeyDown marks the key as pressed. Keys outside of 0-F are ignored.
func (m *Machine) KeyDown(key uint8) {
	if m == nil {
		return
	}
	m.keys.down(key)
}

// KeyUp marks the key as released. Keys outside of 0-F are ignored.
func (m *Machine) KeyUp(key uint8) {
	if m == nil {
		return
	}
	m.keys.up(key)
}

// PressedKeys returns the bitmask of currently pressed keys.
func (m *Machine) PressedKeys() uint16 {
	return m.keys.pressed
}

// ReleasedKeys returns the bitmask of keys released since the last step.
func (m *Machine) ReleasedKeys() uint16 {
	return m.keys.released
}
