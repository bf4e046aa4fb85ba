package audio

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams the samples of a generator to the audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the audio device and starts playing the generator.
// Only one player can exist per process.
func NewPlayer(generator *Generator) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   generator.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(generator)
	player.Play()

	return &Player{
		ctx:    ctx,
		player: player,
	}, nil
}

// Close stops the playback.
func (p *Player) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
