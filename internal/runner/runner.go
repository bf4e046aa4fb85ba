// Package runner drives a machine at a fixed instruction rate with one timer
// tick per 60 Hz frame.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/xochip"
)

// FrameRate is the number of frames and timer ticks per second.
const FrameRate = 60

// Options controls the execution speed.
type Options struct {
	Rate  int  // instructions executed per second
	Paced bool // wait for the frame duration between frames
}

// DefaultOptions returns the options of an unpaced runner executing 500
// instructions per second of emulated time.
func DefaultOptions() Options {
	return Options{Rate: 500}
}

// AudioSink receives the audio state of the machine once per frame.
type AudioSink interface {
	Update(pattern [xochip.AudioPatternSize]byte, pitch uint8, active bool)
}

// Runner runs a machine frame by frame. It is not safe for concurrent use.
type Runner struct {
	logger  *log.Logger
	machine *xochip.Machine
	opts    Options
	sinks   []AudioSink

	budget int // instruction rate remainder carried between frames
	frames uint64
	fault  error
}

// New returns a runner for the machine.
func New(logger *log.Logger, machine *xochip.Machine, opts Options) *Runner {
	if opts.Rate <= 0 {
		opts.Rate = DefaultOptions().Rate
	}
	return &Runner{
		logger:  logger,
		machine: machine,
		opts:    opts,
	}
}

// AddAudioSink registers a receiver of the per frame audio state.
func (r *Runner) AddAudioSink(sink AudioSink) {
	r.sinks = append(r.sinks, sink)
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Fault returns the error that stopped the machine, if any.
func (r *Runner) Fault() error {
	return r.fault
}

// Frame executes the instructions of one frame followed by one timer tick.
// After a fault the machine is not stepped again and every call returns
// the recorded fault.
func (r *Runner) Frame() error {
	if r.fault != nil {
		return r.fault
	}

	r.budget += r.opts.Rate
	cycles := r.budget / FrameRate
	r.budget %= FrameRate

	for range cycles {
		if r.machine.Halted() {
			break
		}
		address := r.machine.PC()
		if err := r.machine.Step(); err != nil {
			r.fault = fmt.Errorf("executing instruction at $%04X: %w", address, err)
			r.logger.Error("Machine fault", log.Err(r.fault))
			r.publishAudio(false)
			return r.fault
		}
	}

	if err := r.machine.Tick(); err != nil {
		return fmt.Errorf("ticking timers: %w", err)
	}
	r.frames++
	r.publishAudio(r.machine.SoundTimer() > 0)
	return nil
}

// Run executes frames until the given number of frames was run, the
// machine halted, a fault occurred or the context was canceled. A frame
// count of 0 runs until the machine halts.
func (r *Runner) Run(ctx context.Context, frames int) error {
	var ticker *time.Ticker
	if r.opts.Paced {
		ticker = time.NewTicker(time.Second / FrameRate)
		defer ticker.Stop()
	}

	for run := 0; frames == 0 || run < frames; run++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", r.frames, err)
		}
		if r.machine.Halted() {
			r.logger.Debug("Machine halted", log.Uint64("frames", r.frames))
			return nil
		}

		if err := r.Frame(); err != nil {
			return err
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running frame %d: %w", r.frames, ctx.Err())
			case <-ticker.C:
			}
		}
	}
	return nil
}

func (r *Runner) publishAudio(active bool) {
	if len(r.sinks) == 0 {
		return
	}
	pattern := r.machine.AudioPattern()
	pitch := r.machine.Pitch()
	for _, sink := range r.sinks {
		sink.Update(pattern, pitch, active)
	}
}
