// Package audio plays synthesized cues through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/sound"
)

// SampleRate is the speaker rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by PlayCue before Init or after Close.
var ErrNotInitialized = errors.New("audio: speaker not initialized")

// Speaker mixes cue streamers into a single speaker stream.
type Speaker struct {
	mu          sync.Mutex
	synth       *sound.Synth
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates an output at the given master volume. Call Init before
// playing anything.
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{
		synth: sound.NewSynth(SampleRate, volume),
		mixer: &beep.Mixer{},
	}
}

// Init opens the audio device with a 100ms buffer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// PlayCue queues the voice for c. It never blocks on playback.
func (s *Speaker) PlayCue(c core.Cue) error {
	st, err := s.synth.Streamer(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}

	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
	return nil
}

// Close silences pending cues and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

var _ core.AudioOut = (*Speaker)(nil)
