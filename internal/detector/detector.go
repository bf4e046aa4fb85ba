// Package detector handles machine profile detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/options"
)

// Detector handles machine profile detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new profile detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the machine profile from options or file auto-detection.
// It first checks if a profile is explicitly specified in options, otherwise
// attempts to detect the profile from the input filename extension.
func (d *Detector) Detect(opts options.Program) options.Profile {
	profile, _ := options.ProfileFromString(opts.System)
	if profile == "" {
		profile = detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected machine profile",
			log.String("profile", string(profile)),
			log.Stringer("system", arch.CHIP8System),
			log.String("file", opts.Input))
	}
	return profile
}

// detectFromFile determines the profile based on file extension.
func detectFromFile(filename string) options.Profile {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8":
		return options.Chip8
	case ".sc8", ".sc":
		return options.SuperChip
	default:
		// .xo8 and unknown extensions run with the full instruction set
		return options.XOChip
	}
}
