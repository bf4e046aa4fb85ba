package detector

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/options"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name        string
		profileOpt  string
		inputFile   string
		wantProfile options.Profile
	}{
		{
			name:        "explicit chip8 profile option",
			profileOpt:  "chip8",
			inputFile:   "game.xo8",
			wantProfile: options.Chip8,
		},
		{
			name:        "explicit schip profile option",
			profileOpt:  "schip",
			inputFile:   "game.bin",
			wantProfile: options.SuperChip,
		},
		{
			name:        "detect from .ch8 extension",
			inputFile:   "game.ch8",
			wantProfile: options.Chip8,
		},
		{
			name:        "detect from .xo8 extension",
			inputFile:   "game.xo8",
			wantProfile: options.XOChip,
		},
		{
			name:        "unknown extension defaults to xochip",
			inputFile:   "game.bin",
			wantProfile: options.XOChip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{System: tt.profileOpt},
			}

			got := d.Detect(opts)
			assert.Equal(t, tt.wantProfile, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantProfile options.Profile
	}{
		{
			name:        ".ch8 extension",
			filename:    "pong.ch8",
			wantProfile: options.Chip8,
		},
		{
			name:        ".CH8 extension (uppercase)",
			filename:    "PONG.CH8",
			wantProfile: options.Chip8,
		},
		{
			name:        ".sc8 extension",
			filename:    "blinky.sc8",
			wantProfile: options.SuperChip,
		},
		{
			name:        ".xo8 extension",
			filename:    "t8nks.xo8",
			wantProfile: options.XOChip,
		},
		{
			name:        "no extension",
			filename:    "game",
			wantProfile: options.XOChip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFromFile(tt.filename)
			assert.Equal(t, tt.wantProfile, got)
		})
	}
}
