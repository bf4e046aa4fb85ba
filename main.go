// Package main implements the main entry point for an XO-CHIP virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/audio"
	"github.com/retroenv/xochip/internal/cli"
	"github.com/retroenv/xochip/internal/config"
	"github.com/retroenv/xochip/internal/fileprocessor"
	"github.com/retroenv/xochip/internal/frontend"
	"github.com/retroenv/xochip/internal/options"
	"github.com/retroenv/xochip/internal/pipeline"
	"github.com/retroenv/xochip/internal/runner"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if !opts.Headless {
		if err := runWindow(logger, opts); err != nil {
			logger.Fatal("Running failed", log.Err(err))
		}
		return
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	for _, file := range files {
		opts.Input = file
		if len(files) > 1 {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Running failed", log.String("file", file), log.Err(err))
		}
	}
}

// runWindow runs the ROM in a window with realtime audio.
func runWindow(logger *log.Logger, opts options.Program) (err error) {
	machine, err := pipeline.New(logger).Execute(opts)
	if err != nil {
		return fmt.Errorf("setting up machine: %w", err)
	}

	r := runner.New(logger, machine, runner.Options{Rate: opts.Rate})

	if !opts.Mute {
		generator := audio.NewGenerator(audio.SampleRate)
		player, err := audio.NewPlayer(generator)
		if err != nil {
			logger.Warn("Audio playback disabled", log.Err(err))
		} else {
			defer func() { _ = player.Close() }()
			r.AddAudioSink(generator)
		}
	}

	if opts.Wav != "" {
		recorder, recErr := audio.NewRecorder(opts.Wav, audio.SampleRate, runner.FrameRate)
		if recErr != nil {
			return fmt.Errorf("creating audio recorder: %w", recErr)
		}
		defer func() {
			if closeErr := recorder.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		r.AddAudioSink(recorder)
	}

	title := "xochip - " + filepath.Base(opts.Input)
	game := frontend.New(logger, machine, r)
	return frontend.Run(game, title, opts.Scale)
}
