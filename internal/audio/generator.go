// Package audio synthesizes the 1-bit pattern buffer sound of the machine,
// plays it back and records it to WAV files.
package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/retroenv/xochip/internal/xochip"
)

// SampleRate is the default output sample rate in Hz.
const SampleRate = 44100

const (
	patternBits = xochip.AudioPatternSize * 8
	volume      = 0.25

	// buzzerPitch plays the buzzer pattern at 4000 bits per second.
	buzzerPitch = 64
)

// buzzerPattern is a 500 Hz square wave played for programs that never
// loaded an audio pattern.
var buzzerPattern = [xochip.AudioPatternSize]byte{
	0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0,
	0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0, 0xF0,
}

// PlaybackRate returns the pattern playback rate in bits per second for
// the pitch register value.
func PlaybackRate(pitch uint8) float64 {
	return 4000 * math.Pow(2, (float64(pitch)-64)/48)
}

// Generator renders mono float samples from the latest published audio
// state. It is safe for concurrent use by one producer and one consumer.
type Generator struct {
	mu         sync.Mutex
	sampleRate int
	pattern    [xochip.AudioPatternSize]byte
	step       float64 // pattern bits advanced per sample
	active     bool
	phase      float64 // current bit position in the pattern
}

// NewGenerator returns a silent generator for the given sample rate.
func NewGenerator(sampleRate int) *Generator {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	g := &Generator{sampleRate: sampleRate}
	g.Update([xochip.AudioPatternSize]byte{}, 0, false)
	return g
}

// SampleRate returns the output sample rate in Hz.
func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// Update publishes the audio state of the machine.
func (g *Generator) Update(pattern [xochip.AudioPatternSize]byte, pitch uint8, active bool) {
	if pattern == [xochip.AudioPatternSize]byte{} {
		pattern = buzzerPattern
		pitch = buzzerPitch
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pattern = pattern
	g.step = PlaybackRate(pitch) / float64(g.sampleRate)
	if active && !g.active {
		g.phase = 0
	}
	g.active = active
}

// Samples fills the buffer with the next samples.
func (g *Generator) Samples(buf []float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		clear(buf)
		return
	}

	for i := range buf {
		bit := int(g.phase)
		if g.pattern[bit/8]&(0x80>>(bit%8)) != 0 {
			buf[i] = volume
		} else {
			buf[i] = -volume
		}

		g.phase += g.step
		if g.phase >= patternBits {
			g.phase = math.Mod(g.phase, patternBits)
		}
	}
}

// Read implements io.Reader and returns little endian 32 bit float samples.
func (g *Generator) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/4)
	g.Samples(samples)
	for i, sample := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return len(samples) * 4, nil
}
