package sound

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/wricardo/snake-game/game/driver"
)

// DefaultSampleRate is the speaker sample rate
const DefaultSampleRate = beep.SampleRate(44100)

// Player turns driver frames into sounds
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	output func(beep.Streamer) error
	mixer  *beep.Mixer
	ready  bool
	broken bool
}

// Option configures a Player
type Option func(*Player)

// WithVolume sets a linear volume, 1 being unchanged
func WithVolume(v float64) Option {
	return func(p *Player) {
		p.volume = v
	}
}

// WithOutput replaces the speaker with fn
func WithOutput(fn func(beep.Streamer) error) Option {
	return func(p *Player) {
		p.output = fn
	}
}

// NewPlayer creates a player that opens the speaker on first use
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		rate:   DefaultSampleRate,
		volume: 0.5,
		mixer:  &beep.Mixer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.output == nil {
		p.output = p.speaker
	}
	return p
}

// Sound returns the effect for an event, or nil when the event is silent
func (p *Player) Sound(event driver.Event) beep.Streamer {
	var s beep.Streamer
	switch event {
	case driver.EventAteFood:
		s = Chirp(p.rate)
	case driver.EventGameOver:
		s = Buzz(p.rate)
	case driver.EventNewBest:
		s = Chime(p.rate)
	default:
		return nil
	}
	return volume(s, p.volume)
}

// Render implements driver.Renderer
func (p *Player) Render(frame driver.Frame) {
	s := p.Sound(frame.Event)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.broken {
		return
	}
	if err := p.output(s); err != nil {
		log.Printf("Sound disabled: %v", err)
		p.broken = true
	}
}

// speaker mixes s into the speaker output, opening the device on first use.
// Called with p.mu held.
func (p *Player) speaker(s beep.Streamer) error {
	if !p.ready {
		if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
			return err
		}
		speaker.Play(p.mixer)
		p.ready = true
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		speaker.Clear()
		speaker.Close()
		p.ready = false
	}
}
