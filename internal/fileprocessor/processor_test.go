package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/options"
	"github.com/retroenv/xochip/internal/xochip"
)

// drawProgram draws the font glyph of 0 at the origin and exits.
var drawProgram = []byte{
	0x60, 0x00, // ld v0, 0
	0xF0, 0x29, // ld f, v0
	0xD0, 0x05, // drw v0, v0, 5
	0x00, 0xFD, // exit
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "zero.xo8", drawProgram)
	output := filepath.Join(dir, "zero.txt")

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{Rate: options.DefaultRate, Seed: 1, Quiet: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, xochip.Height+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))
	assert.Equal(t, strings.Repeat(".", xochip.Width), lines[5])
}

func TestProcessFile_Fault(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "fault.ch8", []byte{0x00, 0xEE})
	output := filepath.Join(dir, "fault.txt")

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{Rate: options.DefaultRate, Quiet: true},
	}
	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, xochip.ErrStackUnderflow))
	assert.True(t, strings.Contains(err.Error(), "$0200"))

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestProcessFile_Wav(t *testing.T) {
	dir := t.TempDir()
	// ld v0, 30; ld st, v0; jp 0x204
	input := writeFile(t, dir, "beep.ch8", []byte{0x60, 0x1E, 0xF0, 0x18, 0x12, 0x04})
	wavFile := filepath.Join(dir, "beep.wav")

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "beep.txt"), Wav: wavFile},
		Flags:      options.Flags{Rate: options.DefaultRate, Frames: 10, Quiet: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	file, err := os.Open(wavFile)
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	dec := wav.NewDecoder(file)
	assert.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, 10*735, len(buf.Data))
	assert.True(t, buf.Data[0] != 0)
}

func TestProcessFile_Canceled(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "loop.ch8", []byte{0x12, 0x00})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "loop.txt")},
		Flags:      options.Flags{Rate: options.DefaultRate, Quiet: true},
	}
	err := ProcessFile(ctx, log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ch8", drawProgram)
	writeFile(t, dir, "b.ch8", drawProgram)
	writeFile(t, dir, "c.xo8", drawProgram)

	files, err := GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(files))

	files, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Input: "game.ch8"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "game.ch8", files[0])

	_, err = GetFilesToProcess(&options.Program{
		Parameters: options.Parameters{Batch: "[invalid"},
	})
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pong.ch8", "pong.txt"},
		{"dir/t8nks.xo8", "dir/t8nks.txt"},
		{"noext", "noext.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateOutputFilename(tt.input))
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}
