package sound

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/jumprope/internal/core"
)

// ErrUnknownCue is returned for cues the synthesizer has no voice for.
var ErrUnknownCue = errors.New("sound: unknown cue")

// Wave is the shape of a tone.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// at returns the wave value at phase in [0, 1).
func (w Wave) at(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return 2*rng.Float64() - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone streams one note with a linear fade in and fade out.
type tone struct {
	step    float64 // Phase advance per sample
	wave    Wave
	rng     *rand.Rand
	phase   float64
	pos     int
	total   int
	fadeIn  int
	fadeOut int
}

func newTone(n note, rate beep.SampleRate) *tone {
	total := rate.N(n.dur)
	return &tone{
		step:    n.freq / float64(rate),
		wave:    n.wave,
		rng:     rand.New(rand.NewSource(int64(n.freq*1000) + int64(n.dur))),
		total:   total,
		fadeIn:  min(rate.N(n.attack), total),
		fadeOut: min(rate.N(n.release), total),
	}
}

// gain is the envelope level at the current sample.
func (t *tone) gain() float64 {
	g := 1.0
	if t.pos < t.fadeIn {
		g = float64(t.pos) / float64(t.fadeIn)
	}
	if left := t.total - t.pos; left < t.fadeOut {
		g = min(g, float64(left)/float64(t.fadeOut))
	}
	return g
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), t.total-t.pos)
	for i := range n {
		v := t.wave.at(t.phase, t.rng) * t.gain()
		samples[i] = [2]float64{v, v}

		t.phase = math.Mod(t.phase+t.step, 1)
		t.pos++
	}
	return n, n > 0
}

func (t *tone) Err() error { return nil }

// newVolume wraps s with a linear volume; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one shaped tone.
type note struct {
	freq    float64
	dur     time.Duration
	wave    Wave
	attack  time.Duration
	release time.Duration
}

// voices lists the notes played in sequence for each cue.
var voices = map[core.Cue][]note{
	core.CueJump: {
		{freq: 523.25, dur: 70 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
	},
	core.CueLand: {
		{freq: 0, dur: 60 * time.Millisecond, wave: WaveNoise, attack: 2 * time.Millisecond, release: 50 * time.Millisecond},
	},
	core.CueCollect: {
		{freq: 987.77, dur: 80 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 30 * time.Millisecond},
		{freq: 1318.51, dur: 160 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 120 * time.Millisecond},
	},
	core.CueCountdown: {
		{freq: 880, dur: 100 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 60 * time.Millisecond},
	},
	core.CueGameOver: {
		{freq: 392, dur: 150 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 60 * time.Millisecond},
		{freq: 311.13, dur: 150 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 60 * time.Millisecond},
		{freq: 261.63, dur: 300 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 200 * time.Millisecond},
	},
	core.CueLevelUp: {
		{freq: 523.25, dur: 90 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
		{freq: 659.25, dur: 90 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
		{freq: 783.99, dur: 180 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 120 * time.Millisecond},
	},
}

// Synth builds streamers for cues.
type Synth struct {
	Rate   beep.SampleRate
	Volume float64 // 0.0 to 1.0
}

// NewSynth creates a synthesizer at the given rate and master volume.
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{Rate: rate, Volume: volume}
}

// Streamer returns a finite streamer for c.
func (s *Synth) Streamer(c core.Cue) (beep.Streamer, error) {
	notes, ok := voices[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newTone(n, s.Rate))
	}
	return newVolume(beep.Seq(parts...), s.Volume), nil
}

// Duration returns the total length of the voice for c.
func Duration(c core.Cue) time.Duration {
	var d time.Duration
	for _, n := range voices[c] {
		d += n.dur
	}
	return d
}
