package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	Sine Wave = iota
	Square
)

// tone generates a fixed-frequency wave for a fixed number of samples
type tone struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// Tone returns a streamer playing freq Hz for d
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case Square:
			val = -1
			if t.phase < 0.5 {
				val = 1
			}
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear release over the last part of a streamer
type fade struct {
	streamer beep.Streamer
	position int
	length   int
	release  int
}

func withRelease(s beep.Streamer, d, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{streamer: s, length: rate.N(d), release: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.length - f.release
	for i := 0; i < n; i++ {
		if f.position >= start && f.release > 0 {
			vol := float64(f.length-f.position) / float64(f.release)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// volume scales s linearly; zero or less is silent
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return withRelease(Tone(freq, d, wave, rate), d, d/2, rate)
}

// Chirp is the sound of eating food
func Chirp(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(660, 40*time.Millisecond, Sine, rate),
		note(990, 60*time.Millisecond, Sine, rate),
	)
}

// Buzz is the sound of a collision
func Buzz(rate beep.SampleRate) beep.Streamer {
	return volume(note(110, 350*time.Millisecond, Square, rate), 0.4)
}

// Chime is the sound of a new best score
func Chime(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(523.25, 90*time.Millisecond, Sine, rate),
		note(659.25, 90*time.Millisecond, Sine, rate),
		note(783.99, 90*time.Millisecond, Sine, rate),
		note(1046.5, 200*time.Millisecond, Sine, rate),
	)
}
