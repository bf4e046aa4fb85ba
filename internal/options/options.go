// Package options contains the program options.
package options

import (
	"fmt"
	"strings"
)

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"ROM file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output text file of the final screen (headless mode, default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
	Wav    string `flag:"wav" usage:"record the generated audio to a WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"machine profile: chip8, schip, xochip (default: auto-detect)"`
	Rate     int    `flag:"rate" usage:"instructions executed per second" default:"500"`
	Scale    int    `flag:"scale" usage:"window scale factor" default:"10"`
	Frames   int    `flag:"frames" usage:"frames to run in headless mode, 0 runs until the program exits"`
	Seed     uint64 `flag:"seed" usage:"seed of the random number generator, 0 picks a random seed"`
	Headless bool   `flag:"headless" usage:"run without a window and print the final screen"`
	Mute     bool   `flag:"mute" usage:"disable audio playback"`
	ShiftVY  bool   `flag:"shift-vy" usage:"shift instructions shift Vx by the value of Vy"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction (requires -debug)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Default values of the numeric options.
const (
	DefaultRate  = 500
	DefaultScale = 10
)

// Profile selects the instruction set behavior a ROM was written for.
type Profile string

// Supported machine profiles.
const (
	Chip8     Profile = "chip8"
	SuperChip Profile = "schip"
	XOChip    Profile = "xochip"
)

// Profiles lists all supported machine profiles.
var Profiles = []Profile{Chip8, SuperChip, XOChip}

// ProfileFromString returns the profile matching the given name. Empty
// names return an empty profile and no error.
func ProfileFromString(name string) (Profile, error) {
	name = strings.ToLower(name)
	if name == "" {
		return "", nil
	}
	for _, profile := range Profiles {
		if string(profile) == name {
			return profile, nil
		}
	}
	return "", fmt.Errorf("unsupported machine profile '%s'", name)
}
