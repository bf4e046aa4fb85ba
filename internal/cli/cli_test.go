package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/xochip/internal/options"
)

func TestParseFlags_Defaults(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "pong.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.DefaultRate, opts.Rate)
	assert.Equal(t, options.DefaultScale, opts.Scale)
	assert.Equal(t, "", opts.System)
	assert.False(t, opts.Headless)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "profile and rate",
			args: []string{"prog", "-s", "SCHIP", "-rate", "1000", "game.bin"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.bin"},
				Flags:      options.Flags{System: "schip", Rate: 1000, Scale: options.DefaultScale},
			},
		},
		{
			name: "headless run",
			args: []string{"prog", "-headless", "-frames", "60", "-seed", "7", "-o", "out.txt", "game.xo8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.xo8", Output: "out.txt"},
				Flags: options.Flags{Rate: options.DefaultRate, Scale: options.DefaultScale,
					Frames: 60, Seed: 7, Headless: true},
			},
		},
		{
			name: "batch implies headless",
			args: []string{"prog", "-batch", "*.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Batch: "*.ch8"},
				Flags:      options.Flags{Rate: options.DefaultRate, Scale: options.DefaultScale, Headless: true},
			},
		},
		{
			name: "quirks and audio",
			args: []string{"prog", "-shift-vy", "-mute", "-wav", "out.wav", "-scale", "4", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8", Wav: "out.wav"},
				Flags:      options.Flags{Rate: options.DefaultRate, Scale: 4, ShiftVY: true, Mute: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no file", []string{"prog"}, true},
		{"flag after file", []string{"prog", "game.ch8", "-debug"}, true},
		{"unknown profile", []string{"prog", "-s", "nes", "game.ch8"}, false},
		{"zero rate", []string{"prog", "-rate", "0", "game.ch8"}, false},
		{"negative scale", []string{"prog", "-scale", "-1", "game.ch8"}, false},
		{"negative frames", []string{"prog", "-frames", "-5", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			assert.True(t, err != nil)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
