package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/xochip/internal/xochip"
)

const (
	recordBitDepth = 16
	wavFormatPCM   = 1
)

// Recorder writes the audio of every published frame to a 16 bit mono PCM
// WAV file.
type Recorder struct {
	generator *Generator
	file      *os.File
	encoder   *wav.Encoder
	samples   []float32
	buffer    *goaudio.IntBuffer
	err       error
}

// NewRecorder creates the WAV file. Every Update renders the samples of
// one frame of the given frame rate.
func NewRecorder(path string, sampleRate, frameRate int) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating WAV file %s: %w", path, err)
	}

	generator := NewGenerator(sampleRate)
	frameSamples := generator.SampleRate() / frameRate
	return &Recorder{
		generator: generator,
		file:      file,
		encoder:   wav.NewEncoder(file, generator.SampleRate(), recordBitDepth, 1, wavFormatPCM),
		samples:   make([]float32, frameSamples),
		buffer: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: generator.SampleRate()},
			Data:           make([]int, frameSamples),
			SourceBitDepth: recordBitDepth,
		},
	}, nil
}

// Update renders one frame of audio for the published state.
func (r *Recorder) Update(pattern [xochip.AudioPatternSize]byte, pitch uint8, active bool) {
	if r.err != nil {
		return
	}

	r.generator.Update(pattern, pitch, active)
	r.generator.Samples(r.samples)
	for i, sample := range r.samples {
		r.buffer.Data[i] = int(sample * 32767)
	}
	if err := r.encoder.Write(r.buffer); err != nil {
		r.err = fmt.Errorf("writing WAV samples: %w", err)
	}
}

// Close finalizes the WAV header and closes the file. It returns the first
// error that occurred while recording.
func (r *Recorder) Close() error {
	err := r.err
	if encErr := r.encoder.Close(); encErr != nil && err == nil {
		err = fmt.Errorf("finalizing WAV file: %w", encErr)
	}
	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing WAV file: %w", closeErr)
	}
	return err
}
