package core

import "time"

// Cue names a sound effect. The set is closed; see the Cue constants.
type Cue string

const (
	CueJump      Cue = "jump"
	CueLand      Cue = "land"
	CueCollect   Cue = "collect"
	CueCountdown Cue = "countdown"
	CueGameOver  Cue = "gameover"
	CueLevelUp   Cue = "levelup"
)

// Cues lists every known cue.
var Cues = []Cue{CueJump, CueLand, CueCollect, CueCountdown, CueGameOver, CueLevelUp}

// Valid reports whether c belongs to the closed cue set.
func (c Cue) Valid() bool {
	for _, k := range Cues {
		if k == c {
			return true
		}
	}
	return false
}

// AudioOut plays a short sound effect without blocking.
type AudioOut interface {
	PlayCue(c Cue) error
}

// Haptics triggers a short vibration where the device supports it.
type Haptics interface {
	Vibrate()
}

// Prefs is a small integer key-value store.
type Prefs interface {
	Get(key string) (int, bool)
	Set(key string, value int)
}

// FrameFunc is called once per display refresh.
type FrameFunc func(now time.Time)

// FrameScheduler requests a callback at the next display refresh.
type FrameScheduler interface {
	ScheduleNextFrame(f FrameFunc)
}

// RunResult summarises a finished run.
type RunResult struct {
	GameID   string
	Score    int
	Level    int
	Won      bool
	Duration time.Duration
}

// ResultSink persists finished runs.
type ResultSink interface {
	RecordRun(r RunResult) error
}

// Logger is the structured logger the engine writes to.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Host bundles the ports a game needs from its platform.
// Audio, Haptics and Results may be nil.
type Host struct {
	Scheduler FrameScheduler
	Clock     Clock
	Prefs     Prefs
	Audio     AudioOut
	Haptics   Haptics
	Results   ResultSink
	Assets    *Assets
	Logger    Logger
}
