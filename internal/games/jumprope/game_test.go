package jumprope

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumprope/internal/collectibles"
	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/platforms"
	"github.com/vovakirdan/jumprope/internal/registry"
	"github.com/vovakirdan/jumprope/internal/storage"
)

const frameStep = 16 * time.Millisecond

var t0 = time.Unix(1_700_000_000, 0)

type recordingAudio struct {
	cues []core.Cue
}

func (a *recordingAudio) PlayCue(c core.Cue) error {
	a.cues = append(a.cues, c)
	return nil
}

func (a *recordingAudio) count(c core.Cue) int {
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordingResults struct {
	runs []core.RunResult
}

func (r *recordingResults) RecordRun(res core.RunResult) error {
	r.runs = append(r.runs, res)
	return nil
}

type countingHaptics struct{ n int }

func (c *countingHaptics) Vibrate() { c.n++ }

type harness struct {
	game    *Game
	clock   *core.ManualClock
	frames  *core.FrameQueue
	prefs   *storage.MemPrefs
	audio   *recordingAudio
	results *recordingResults
	haptics *countingHaptics
	assets  *core.Assets
}

// quietConfig is the default config without spawns, so scores come from
// landings alone.
func quietConfig() config.JumpRopeConfig {
	cfg := config.DefaultJumpRopeConfig()
	cfg.Collectibles.Enabled = false
	cfg.Platforms.Enabled = false
	return cfg
}

func newHarness(t *testing.T, cfg config.JumpRopeConfig, prefs *storage.MemPrefs) *harness {
	t.Helper()

	if prefs == nil {
		prefs = storage.NewMemPrefs()
	}
	h := &harness{
		clock:   core.NewManualClock(t0),
		frames:  &core.FrameQueue{},
		prefs:   prefs,
		audio:   &recordingAudio{},
		results: &recordingResults{},
		haptics: &countingHaptics{},
		assets:  core.NewAssets(),
	}
	h.assets.Set(core.AssetSurface, core.AssetReady)
	h.game = NewWithConfig(cfg, registry.Settings{Strict: true})

	err := h.game.Reset(core.RuntimeConfig{Seed: 42, TickRate: 60}, core.Host{
		Scheduler: h.frames,
		Clock:     h.clock,
		Prefs:     h.prefs,
		Audio:     h.audio,
		Results:   h.results,
		Haptics:   h.haptics,
		Assets:    h.assets,
		Logger:    log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return h
}

// tick advances the clock by one frame and fires the pending frame.
func (h *harness) tick() bool {
	h.clock.Advance(frameStep)
	return h.frames.Fire(h.clock.Now())
}

// ticks runs n frames.
func (h *harness) ticks(n int) {
	for range n {
		h.tick()
	}
}

// untilScoreChanges runs frames until the score moves or the run stops,
// returning the number of frames fired.
func (h *harness) untilScoreChanges(t *testing.T, limit int) int {
	t.Helper()
	start := h.game.Snapshot().Score
	for i := 1; i <= limit; i++ {
		if !h.tick() {
			t.Fatalf("no frame pending after %d ticks", i-1)
		}
		s := h.game.Snapshot()
		if s.Score != start || s.State != Running {
			return i
		}
	}
	t.Fatalf("score did not change within %d ticks", limit)
	return 0
}

func TestOscillatorRange(t *testing.T) {
	o := Oscillator{BaseHeight: 80, AirThreshold: 0.3}
	for i := 0; i < 2000; i++ {
		o.Advance(0.037)
		h := o.Height()
		if h < 0 || h > 80 {
			t.Fatalf("θ=%v: height %v outside [0, 80]", o.Theta, h)
		}
		if o.InAir() != (math.Abs(math.Sin(o.Theta)) > 0.3) {
			t.Fatalf("θ=%v: InAir() disagrees with |sin θ| > 0.3", o.Theta)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		speed, expected float64
	}{
		{2, 0.16},
		{1, 0.08},
		{0.1, 0.024}, // Clamped to the minimum factor
	}
	for _, tc := range tests {
		if got := Rate(0.08, tc.speed, 0.3); math.Abs(got-tc.expected) > 1e-12 {
			t.Errorf("Rate(0.08, %v, 0.3) = %v, expected %v", tc.speed, got, tc.expected)
		}
	}
}

func TestJumpPoints(t *testing.T) {
	tests := []struct {
		name     string
		baseY    float64
		peak     float64
		expected int
	}{
		{"full jump", 370, 290.1, 15},
		{"exact multiple", 370, 290, 16},
		{"tiny hop", 370, 366, 0},
		{"never left ground", 370, 370, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JumpPoints(tc.baseY, tc.peak, 5); got != tc.expected {
				t.Errorf("JumpPoints() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestFirstLandingScore(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.game.Start()

	// Rate 0.16: airborne from tick 2, peak |sin 1.6| at tick 10, landing at tick 18.
	n := h.untilScoreChanges(t, 100)
	if n != 18 {
		t.Errorf("first landing after %d ticks, expected 18", n)
	}

	s := h.game.Snapshot()
	if s.Score != 16 {
		t.Errorf("Score = %d, expected 16", s.Score)
	}
	if s.State != Running {
		t.Errorf("State = %v, expected running", s.State)
	}
	if s.Peak != s.BaseY {
		t.Errorf("peak should reset to baseline after landing")
	}
	if h.audio.count(core.CueJump) != 1 || h.audio.count(core.CueLand) != 1 {
		t.Errorf("cues = %v, expected one jump and one land", h.audio.cues)
	}
}

func TestPauseMidJumpPreservesLanding(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.game.Start()
	h.ticks(10)

	before := h.game.Snapshot()
	if !before.Airborne {
		t.Fatal("player should be airborne after 10 ticks")
	}

	h.game.Pause()
	h.ticks(50)
	h.clock.Advance(5 * time.Second)

	paused := h.game.Snapshot()
	if paused.Theta != before.Theta || paused.Player.Y != before.Player.Y {
		t.Fatal("pause must freeze the rope and player")
	}
	if h.frames.Pending() {
		t.Fatal("no frame should be scheduled while paused")
	}

	h.game.Resume()
	h.untilScoreChanges(t, 100)
	if got := h.game.Snapshot().Score; got != 16 {
		t.Errorf("Score after paused jump = %d, expected 16", got)
	}
}

func TestDeadlineWhileAirborneDefersEnd(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.game.Start()
	h.ticks(5)

	h.game.OnDeadlineReached()

	s := h.game.Snapshot()
	if s.State != Running || !s.Ending {
		t.Fatalf("deadline must only arm ending, got state %v ending %v", s.State, s.Ending)
	}

	h.untilScoreChanges(t, 100)
	s = h.game.Snapshot()
	if s.State != Ended {
		t.Fatalf("State = %v, expected ended at landing", s.State)
	}
	if s.Score != 16 {
		t.Errorf("final landing should still score, got %d", s.Score)
	}
	if h.frames.Pending() {
		t.Error("ended run must not schedule frames")
	}
	if h.audio.count(core.CueGameOver) != 1 {
		t.Errorf("expected one gameover cue, got %v", h.audio.cues)
	}
	if len(h.results.runs) != 1 || h.results.runs[0].Score != 16 {
		t.Errorf("recorded runs = %+v", h.results.runs)
	}
}

// hudHas reports whether a rendered frame contains the text want.
func (h *harness) hudHas(want string) bool {
	dst := core.NewDrawList(800, 450)
	h.game.Render(dst)
	for _, c := range dst.Commands() {
		if c.Kind == core.DrawText && c.Text == want {
			return true
		}
	}
	return false
}

func TestEndedRunShowsNoTimeLeft(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.game.Start()

	for i := 0; h.game.Snapshot().State == Running; i++ {
		if i > 3000 {
			t.Fatal("run did not end")
		}
		if !h.tick() {
			t.Fatalf("no frame pending after %d ticks", i)
		}
	}

	s := h.game.Snapshot()
	if s.State != Ended {
		t.Fatalf("State = %v, expected ended", s.State)
	}
	if s.Remaining != 0 {
		t.Errorf("Remaining = %d after the deadline, expected 0", s.Remaining)
	}
	if !h.hudHas("Time:  0") {
		t.Error("HUD should read \"Time:  0\" once the run ended")
	}
	if got := h.audio.count(core.CueCountdown); got != 3 {
		t.Errorf("countdown cues = %d, expected one each at 3, 2 and 1", got)
	}
}

func TestTravelCapThenScroll(t *testing.T) {
	cfg := quietConfig()
	limit := cfg.Player.TravelCap * cfg.Screen.Width
	h := newHarness(t, cfg, nil)
	h.game.Start()

	h.tick()
	s := h.game.Snapshot()
	if s.Scroll != 0 {
		t.Errorf("Scroll = %v before the cap, expected 0", s.Scroll)
	}
	if s.Player.X <= cfg.Player.StartX || s.Player.X >= cfg.Player.StartX+limit {
		t.Errorf("X = %v, expected the runner to move right of %v", s.Player.X, cfg.Player.StartX)
	}

	h.ticks(699)
	s = h.game.Snapshot()
	if s.State != Running {
		t.Fatalf("State = %v, expected the run to still be going", s.State)
	}
	if s.Player.Travel != limit || s.Player.X != cfg.Player.StartX+limit {
		t.Errorf("Travel = %v X = %v, expected travel capped at %v", s.Player.Travel, s.Player.X, limit)
	}
	if s.Scroll < 0 || s.Scroll >= cfg.Screen.Width {
		t.Fatalf("Scroll = %v, outside [0, %v)", s.Scroll, cfg.Screen.Width)
	}
	expected := core.WrapF(s.Distance-limit, cfg.Screen.Width)
	diff := math.Abs(s.Scroll - expected)
	if diff = min(diff, cfg.Screen.Width-diff); diff > 1e-6 {
		t.Errorf("Scroll = %v, expected %v (distance %v past the cap)", s.Scroll, expected, s.Distance-limit)
	}
}

func TestHapticsSetting(t *testing.T) {
	for _, on := range []bool{true, false} {
		cfg := quietConfig()
		cfg.Sound.Haptics = on
		h := newHarness(t, cfg, nil)
		h.game.Start()
		h.game.OnDeadlineReached()
		h.untilScoreChanges(t, 100)

		if h.game.Snapshot().State != Ended {
			t.Fatalf("haptics %v: run should end at the landing", on)
		}
		if vibrated := h.haptics.n > 0; vibrated != on {
			t.Errorf("haptics %v: vibrated %d times", on, h.haptics.n)
		}
	}
}

func TestPausePolicies(t *testing.T) {
	t.Run("freeze", func(t *testing.T) {
		h := newHarness(t, quietConfig(), nil)
		h.game.Start()

		h.clock.Advance(10 * time.Second)
		h.game.Pause()
		h.clock.Advance(60 * time.Second)

		s := h.game.Snapshot()
		if s.Ending {
			t.Fatal("frozen countdown must not expire while paused")
		}
		if s.Remaining != 20 {
			t.Errorf("Remaining = %d, expected 20", s.Remaining)
		}

		h.game.Resume()
		h.clock.Advance(19 * time.Second)
		if h.game.Snapshot().Ending {
			t.Fatal("deadline fired early after resume")
		}
		h.clock.Advance(2 * time.Second)
		if !h.game.Snapshot().Ending {
			t.Fatal("deadline should fire with the remaining time after resume")
		}
	})

	t.Run("continue", func(t *testing.T) {
		cfg := quietConfig()
		cfg.Timer.PausePolicy = config.PauseContinue
		h := newHarness(t, cfg, nil)
		h.game.Start()

		h.game.Pause()
		h.clock.Advance(31 * time.Second)

		s := h.game.Snapshot()
		if s.State != Paused || !s.Ending {
			t.Fatalf("continue policy: state %v ending %v, expected paused and armed", s.State, s.Ending)
		}

		h.game.Resume()
		h.untilScoreChanges(t, 100)
		if got := h.game.Snapshot().State; got != Ended {
			t.Errorf("State = %v, expected ended at the first landing after resume", got)
		}
	})
}

func TestLevelLimit(t *testing.T) {
	cfg := config.DefaultJumpRopeConfig().Timer
	tests := []struct {
		level    int
		expected time.Duration
	}{
		{1, 30 * time.Second},
		{2, 28 * time.Second},
		{13, 6 * time.Second},
		{20, 6 * time.Second},
	}
	for _, tc := range tests {
		if got := LevelLimit(cfg, tc.level); got != tc.expected {
			t.Errorf("LevelLimit(level %d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestRestart(t *testing.T) {
	tests := []struct {
		name          string
		winBase       int
		expectWon     bool
		expectLevel   int
		expectSeconds int
	}{
		{"win advances level", 10, true, 2, 28},
		{"loss keeps level", 100, false, 1, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Levels.WinScoreBase = tc.winBase
			h := newHarness(t, cfg, nil)
			h.game.Start()
			h.ticks(5)
			h.game.OnDeadlineReached()
			h.untilScoreChanges(t, 100)

			s := h.game.Snapshot()
			if s.State != Ended || s.Won != tc.expectWon {
				t.Fatalf("state %v won %v, expected ended won=%v", s.State, s.Won, tc.expectWon)
			}

			h.game.Restart()
			s = h.game.Snapshot()
			if s.State != Running || s.Ending || s.Score != 0 {
				t.Errorf("after restart: %+v", s)
			}
			if s.Level != tc.expectLevel {
				t.Errorf("Level = %d, expected %d", s.Level, tc.expectLevel)
			}
			if s.Remaining != tc.expectSeconds {
				t.Errorf("Remaining = %d, expected %d", s.Remaining, tc.expectSeconds)
			}
			if s.Theta != 0 {
				t.Errorf("restart should reset the rope, θ = %v", s.Theta)
			}
			if tc.expectWon && h.audio.count(core.CueLevelUp) != 1 {
				t.Errorf("expected a levelup cue, got %v", h.audio.cues)
			}
		})
	}
}

func TestHighScoreWrittenOnlyWhenExceeded(t *testing.T) {
	prefs := storage.NewMemPrefs()
	prefs.Set(HighScoreKey, 20)
	baseline := prefs.Writes

	h := newHarness(t, quietConfig(), prefs)
	if got := h.game.State().HighScore; got != 20 {
		t.Fatalf("HighScore = %d, expected 20 from prefs", got)
	}
	h.game.Start()

	h.untilScoreChanges(t, 100) // 16 points
	if prefs.Writes != baseline {
		t.Errorf("high score written %d times before it was beaten", prefs.Writes-baseline)
	}

	h.untilScoreChanges(t, 100) // 32 points
	s := h.game.Snapshot()
	stored, _ := prefs.Get(HighScoreKey)
	if s.Score <= 20 || stored != s.Score || s.HighScore != s.Score {
		t.Errorf("score %d, high %d, stored %d: expected all equal above 20", s.Score, s.HighScore, stored)
	}
	if prefs.Writes != baseline+1 {
		t.Errorf("expected exactly one write, got %d", prefs.Writes-baseline)
	}
}

func TestIllegalPausePanicsWhenStrict(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)

	defer func() {
		if recover() == nil {
			t.Error("Pause() while idle should panic in strict mode")
		}
		if got := h.game.RunState(); got != Idle {
			t.Errorf("state changed by an illegal request: %v", got)
		}
	}()
	h.game.Pause()
}

func TestIllegalTransitionIsLoggedWhenLenient(t *testing.T) {
	g := NewWithConfig(quietConfig(), registry.Settings{})
	if err := g.Reset(core.DefaultConfig(), core.Host{Scheduler: &core.FrameQueue{}}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	g.Resume()
	if g.RunState() != Idle {
		t.Error("illegal Resume() must not change state")
	}
}

func TestTapStateMachine(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	tap := core.NewInputFrame()
	tap.Set(core.ActionTap)

	steps := []RunState{Running, Paused, Running}
	for i, expected := range steps {
		h.game.HandleInput(tap)
		if got := h.game.RunState(); got != expected {
			t.Fatalf("tap %d: state %v, expected %v", i+1, got, expected)
		}
	}

	h.game.OnDeadlineReached()
	h.untilScoreChanges(t, 100)
	if h.game.RunState() != Ended {
		t.Fatal("run should end at landing")
	}
	h.game.HandleInput(tap)
	if h.game.RunState() != Running {
		t.Error("tap after the run ended should restart")
	}
}

func TestResetRequiresScheduler(t *testing.T) {
	g := NewWithConfig(quietConfig(), registry.Settings{})
	if err := g.Reset(core.DefaultConfig(), core.Host{}); err == nil {
		t.Error("Reset() without a scheduler should fail")
	}
}

func TestCollectibleEffects(t *testing.T) {
	tests := []struct {
		name   string
		effect collectibles.Effect
		check  func(t *testing.T, h *harness, ticks int)
	}{
		{
			name:   "score bonus",
			effect: collectibles.ScoreBonus{Points: 50},
			check: func(t *testing.T, h *harness, ticks int) {
				if ticks != 1 || h.game.Snapshot().Score != 50 {
					t.Errorf("bonus should apply on the pickup tick, got %d after %d ticks", h.game.Snapshot().Score, ticks)
				}
			},
		},
		{
			name:   "multiplier doubles the landing",
			effect: collectibles.Multiplier{Factor: 2, Duration: 5 * time.Second},
			check: func(t *testing.T, h *harness, ticks int) {
				if got := h.game.Snapshot().Score; got != 32 {
					t.Errorf("Score = %d, expected 32", got)
				}
			},
		},
		{
			name:   "slow time delays the landing",
			effect: collectibles.SlowTime{Scale: 0.5, Duration: 3 * time.Second},
			check: func(t *testing.T, h *harness, ticks int) {
				if ticks <= 30 {
					t.Errorf("landing after %d ticks, expected a slower rope", ticks)
				}
			},
		},
		{
			name:   "height boost raises the jump",
			effect: collectibles.HeightBoost{Factor: 1.5},
			check: func(t *testing.T, h *harness, ticks int) {
				if got := h.game.Snapshot().Score; got != 24 {
					t.Errorf("Score = %d, expected 24", got)
				}
				h.untilScoreChanges(t, 100)
				if got := h.game.Snapshot().Score; got != 24+16 {
					t.Errorf("boost should clear after one landing, score %d", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Collectibles.Enabled = true
			h := newHarness(t, cfg, nil)
			h.game.Start()

			// Place the pickup on the player's first-tick position.
			base := h.game.Snapshot().BaseY
			h.game.items.Add(cfg.Player.StartX+cfg.Player.TravelSpeed, base-10, 20, tc.effect)

			n := h.untilScoreChanges(t, 200)
			tc.check(t, h, n)
			if h.audio.count(core.CueCollect) != 1 {
				t.Errorf("expected one collect cue, got %v", h.audio.cues)
			}
		})
	}
}

func TestPlatformBonusOncePerPlatform(t *testing.T) {
	cfg := quietConfig()
	cfg.Platforms.Enabled = true
	h := newHarness(t, cfg, nil)
	h.game.Start()
	h.ticks(12) // Past the peak, falling

	s := h.game.Snapshot()
	if s.Player.VelocityY <= 0 {
		t.Fatalf("expected a falling player, VelocityY = %v", s.Player.VelocityY)
	}
	// Platform under the next falling position.
	p := s.Player
	h.game.platforms.Add(core.Box{X: s.Distance + cfg.Player.StartX, Y: p.Y + p.Height/2 + 10, Width: 200, Height: 30})

	before := s.Score
	h.ticks(3)
	got := h.game.Snapshot().Score - before
	if got != cfg.Platforms.Bonus {
		t.Errorf("platform bonus = %d, expected %d once", got, cfg.Platforms.Bonus)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	spawn := func(seed int64) []core.Vec2 {
		cfg := config.DefaultJumpRopeConfig()
		diff := config.NewDifficultyManager(cfg.Difficulty)
		items := collectibles.NewRegistry(core.AxisHorizontal, cfg.Screen.Width)
		plats := platforms.NewRegistry(core.AxisHorizontal, cfg.Screen.Width)
		s := NewSpawner(seed, &cfg, diff, 390, 370)
		s.Update(1800, config.Progress{Level: 1}, items, plats)

		// Everything spawned lies in [width, 1800], inside this window.
		var out []core.Vec2
		for _, c := range items.Visible(1000) {
			out = append(out, core.Vec2{X: c.X, Y: c.Y})
		}
		for _, p := range plats.Visible(1000) {
			out = append(out, core.Vec2{X: p.X, Y: p.Y})
		}
		return out
	}

	a, b, c := spawn(7), spawn(7), spawn(8)
	if len(a) == 0 {
		t.Fatal("spawner placed nothing")
	}
	if len(a) != len(b) {
		t.Fatalf("same seed spawned %d vs %d objects", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("object %d differs for the same seed: %v vs %v", i, a[i], b[i])
		}
	}
	same := len(a) == len(c)
	for i := 0; same && i < len(a); i++ {
		same = a[i] == c[i]
	}
	if same {
		t.Error("different seeds should produce different layouts")
	}
}

func TestRenderWaitsForSurface(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)
	h.assets.Set(core.AssetSurface, core.AssetLoading)
	h.game.Start()

	h.ticks(3)
	if n := h.game.LastFrame().Len(); n != 0 {
		t.Fatalf("recorded %d commands before the surface was ready", n)
	}
	if h.game.Snapshot().Theta == 0 {
		t.Fatal("physics should advance while the surface loads")
	}

	h.assets.Set(core.AssetSurface, core.AssetReady)
	h.tick()
	cmds := h.game.LastFrame().Commands()
	if len(cmds) == 0 || cmds[0].Kind != core.DrawClear {
		t.Fatalf("frame should start with a clear, got %v", cmds)
	}
}

func TestRenderOverlays(t *testing.T) {
	h := newHarness(t, quietConfig(), nil)

	hasText := h.hudHas

	if !hasText("Tap to start") {
		t.Error("idle overlay missing")
	}
	h.game.Start()
	h.game.Pause()
	if !hasText("PAUSED") {
		t.Error("paused overlay missing")
	}
	if !hasText("Score: 0") {
		t.Error("HUD score missing")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("jumprope should register itself")
	}
	g, err := registry.Create(GameID, registry.Settings{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Jump Rope" {
		t.Errorf("Title() = %q", g.Title())
	}
}
