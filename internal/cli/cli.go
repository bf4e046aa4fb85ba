// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/xochip/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(osArgs []string) (options.Program, error) {
	flags := flag.NewFlagSet(osArgs[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(osArgs[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "" && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: xochip [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	profile, err := options.ProfileFromString(opts.System)
	if err != nil {
		return err
	}
	opts.System = string(profile)

	if opts.Rate <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Rate)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d, must not be negative", opts.Frames)
	}
	if opts.Batch != "" {
		opts.Headless = true
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output text file of the final screen in headless mode, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask headless with automatic .txt file naming, for example *.ch8")
	flags.StringVar(&opts.Wav, "wav", "", "name of a .wav file to record the generated audio to")
	flags.StringVar(&opts.System, "s", "", "machine profile (chip8, schip, xochip) - if not auto-detected from file extension")
	flags.IntVar(&opts.Rate, "rate", options.DefaultRate, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor")
	flags.IntVar(&opts.Frames, "frames", 0, "frames to run in headless mode, 0 runs until the program exits")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a random seed")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the final screen")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio playback")
	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions shift Vx by the value of Vy")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
