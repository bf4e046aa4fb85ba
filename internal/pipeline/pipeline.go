// Package pipeline orchestrates the stages that turn a ROM file into a
// machine ready to run.
package pipeline

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/config"
	"github.com/retroenv/xochip/internal/detector"
	"github.com/retroenv/xochip/internal/loader"
	"github.com/retroenv/xochip/internal/options"
	"github.com/retroenv/xochip/internal/xochip"
)

// Pipeline orchestrates the complete machine setup workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new setup pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute detects the machine profile, loads the ROM file and returns a
// machine with the ROM loaded.
func (p *Pipeline) Execute(opts options.Program) (*xochip.Machine, error) {
	profile := p.detector.Detect(opts)

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithROM(rom, opts, profile)
}

// ExecuteWithROM creates a machine for the profile and loads the in memory
// ROM image into it.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (p *Pipeline) ExecuteWithROM(rom []byte, opts options.Program, profile options.Profile) (*xochip.Machine, error) {
	machine := xochip.New(p.logger, config.MachineOptions(profile, opts))
	if err := machine.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading ROM into memory: %w", err)
	}

	p.printInfo(opts, profile, len(rom))
	return machine, nil
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, profile options.Profile, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Loaded ROM",
		log.String("file", opts.Input),
		log.String("profile", string(profile)),
		log.Int("size", size),
	)
}
