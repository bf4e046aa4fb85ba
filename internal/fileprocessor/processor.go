// Package fileprocessor handles headless ROM runs and their output files
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/audio"
	"github.com/retroenv/xochip/internal/options"
	"github.com/retroenv/xochip/internal/pipeline"
	"github.com/retroenv/xochip/internal/render"
	"github.com/retroenv/xochip/internal/runner"
	"github.com/retroenv/xochip/internal/xochip"
)

// ProcessFile runs the ROM without a window and writes the final screen
// as text. A machine fault is returned after the screen was written.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) (err error) {
	machine, err := pipeline.New(logger).Execute(opts)
	if err != nil {
		return fmt.Errorf("setting up machine: %w", err)
	}

	r := runner.New(logger, machine, runner.Options{Rate: opts.Rate})
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

	runErr := r.Run(ctx, opts.Frames)
	if errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if err := writeScreen(opts, machine.Display()); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("running ROM: %w", runErr)
	}
	if !opts.Quiet {
		logger.Info("Run finished",
			log.String("file", opts.Input),
			log.Uint64("frames", r.Frames()),
			log.Bool("halted", machine.Halted()))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".txt"
}

func writeScreen(opts options.Program, display *xochip.Display) error {
	writer, columns, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return render.Text(writer, display, columns)
}

func createWriter(opts options.Program) (io.Writer, int, error) {
	if opts.Output == "" {
		return os.Stdout, render.TerminalColumns(os.Stdout), nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, 0, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, 0, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("xochip - XO-CHIP virtual machine",
		log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
