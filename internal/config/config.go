// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/options"
	"github.com/retroenv/xochip/internal/xochip"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the machine options for the given profile with the
// command line overrides applied.
func MachineOptions(profile options.Profile, opts options.Program) xochip.Options {
	machineOpts := xochip.DefaultOptions()

	switch profile {
	case options.Chip8, options.SuperChip:
		machineOpts.StartLowRes = true
	case options.XOChip:
		machineOpts.Quirks.ClearSelectedPlanes = true
	}

	if opts.ShiftVY {
		machineOpts.Quirks.ShiftByVY = true
	}
	machineOpts.Seed = opts.Seed
	machineOpts.Trace = opts.Trace
	return machineOpts
}
