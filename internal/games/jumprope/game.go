// Package jumprope implements the jump rope runner: a character bounces to
// the rhythm of a turning rope, travels across a scrolling backdrop, collects
// power-ups and scores on every landing before the countdown runs out.
package jumprope

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jumprope/internal/background"
	"github.com/vovakirdan/jumprope/internal/collectibles"
	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/platforms"
	"github.com/vovakirdan/jumprope/internal/registry"
	"github.com/vovakirdan/jumprope/internal/sound"
)

// GameID is the registry and score-table identifier.
const GameID = "jumprope"

// HighScoreKey is the preference key the best score is stored under.
const HighScoreKey = "highScore"

func init() {
	registry.Register(GameID, func(s registry.Settings) registry.Game {
		return New(s)
	})
}

// Game is one jump rope session. All exported methods are safe for
// concurrent use; the timer deadline only touches the ending flag.
type Game struct {
	mu sync.Mutex

	settings registry.Settings
	cfg      config.JumpRopeConfig
	fixedCfg bool // cfg was supplied by the caller and is not reloaded

	runtime core.RuntimeConfig
	host    core.Host
	logger  core.Logger

	sound      *sound.Dispatcher
	difficulty *config.DifficultyManager
	selector   *background.Selector
	platforms  *platforms.Registry
	items      *collectibles.Registry
	spawner    *Spawner
	particles  *Particles
	timer      *Timer
	frame      *core.DrawList

	state     RunState
	player    Player
	rope      Oscillator
	score     int
	highScore int
	level     int
	lastWon   bool
	ending    atomic.Bool

	wasAirborne bool
	peak        float64
	boost       float64 // Height factor from a pickup, 1 when none
	boostUsed   bool    // The boost has lifted at least one airborne frame
	distance    float64 // World distance covered this run
	scroll      float64 // Backdrop offset in [0, width)
	ticks       int
	lastSecond  int
	startedAt   time.Time
	warned      map[string]bool
}

// New creates a game that loads its configuration on Reset.
func New(s registry.Settings) *Game {
	return &Game{settings: s}
}

// NewWithConfig creates a game bound to cfg. Settings.ConfigPath and
// Settings.Difficulty are ignored.
func NewWithConfig(cfg config.JumpRopeConfig, s registry.Settings) *Game {
	return &Game{settings: s, cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Jump Rope"
}

// Config returns the configuration in effect.
func (g *Game) Config() config.JumpRopeConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// Surface returns the logical drawing size.
func (g *Game) Surface() (float64, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

// Reset binds the host ports, loads configuration and leaves the game Idle
// at level 1. The high score is read from host.Prefs.
func (g *Game) Reset(runtime core.RuntimeConfig, host core.Host) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.fixedCfg {
		cfg, _, err := config.LoadJumpRope(g.settings.ConfigPath)
		if err != nil {
			return fmt.Errorf("jumprope: %w", err)
		}
		if g.settings.Difficulty != "" {
			preset, err := config.ParsePreset(g.settings.Difficulty)
			if err != nil {
				return fmt.Errorf("jumprope: %w", err)
			}
			config.ApplyJumpRopePreset(&cfg, preset)
		}
		g.cfg = cfg
	}
	if err := g.cfg.Validate(); err != nil {
		return fmt.Errorf("jumprope: %w", err)
	}

	if host.Scheduler == nil {
		return fmt.Errorf("jumprope: host has no frame scheduler")
	}
	if host.Clock == nil {
		host.Clock = core.SystemClock{}
	}
	if host.Prefs == nil {
		host.Prefs = noPrefs{}
	}
	if host.Logger == nil {
		host.Logger = log.New(io.Discard)
	}
	if host.Assets == nil {
		host.Assets = core.NewAssets()
		host.Assets.Set(core.AssetSurface, core.AssetReady)
	}

	if g.timer != nil {
		g.timer.Stop()
	}

	g.runtime = runtime
	g.host = host
	g.logger = host.Logger
	g.warned = make(map[string]bool)

	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height
	haptics := host.Haptics
	if !g.cfg.Sound.Haptics {
		haptics = nil
	}
	g.sound = sound.NewDispatcher(host.Audio, haptics, g.logger, g.cfg.Sound.Enabled)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.selector = background.NewSelector(g.cfg.Background, w, h)
	g.platforms = platforms.NewRegistry(core.AxisHorizontal, w)
	g.items = collectibles.NewRegistry(core.AxisHorizontal, w)
	g.items.OnViolation(func(err error) {
		g.violation("collectible effect rejected", "error", err)
	})
	g.spawner = NewSpawner(runtime.Seed, &g.cfg, g.difficulty, g.groundY(), g.baseY())
	g.particles = NewParticles(runtime.Seed + 1)
	g.timer = NewTimer(host.Clock, g.cfg.Timer.PausePolicy, g.OnDeadlineReached)
	g.frame = core.NewDrawList(w, h)

	g.highScore = 0
	if v, ok := host.Prefs.Get(HighScoreKey); ok && v > 0 {
		g.highScore = v
	}
	g.level = 1
	g.lastWon = false
	g.state = Idle
	g.ending.Store(false)
	g.resetRun()

	g.logger.Debug("game reset", "seed", runtime.Seed, "high_score", g.highScore, "pause_policy", g.timer.Policy())
	return nil
}

// groundY is the y of the ground line.
func (g *Game) groundY() float64 {
	return g.cfg.Screen.Height - g.cfg.Player.GroundOffset
}

// baseY is the player's center y when standing.
func (g *Game) baseY() float64 {
	return g.groundY() - g.cfg.Player.Height/2
}

// resetRun puts the player, rope and world back to the start of a run.
// Score is cleared, the high score and level are kept.
func (g *Game) resetRun() {
	p := g.cfg.Player
	g.player = Player{
		X:            p.StartX,
		Y:            g.baseY(),
		Facing:       FacingRight,
		Alive:        true,
		Width:        p.Width,
		Height:       p.Height,
		PickupRadius: p.PickupRadius,
	}
	g.rope = Oscillator{
		BaseHeight:   g.cfg.Physics.JumpHeight,
		AirThreshold: g.cfg.Physics.AirThreshold,
	}
	g.score = 0
	g.peak = g.baseY()
	g.wasAirborne = false
	g.boost = 1
	g.boostUsed = false
	g.distance = 0
	g.scroll = 0
	g.ticks = 0

	seed := g.runtime.Seed + int64(g.level)
	g.platforms.Reset()
	g.items.Reset()
	g.spawner.Reset(seed)
	g.particles.Reset(seed + 1)
	g.frame.Reset()
}

// Start begins a run from Idle.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Idle {
		g.violation("start requested outside idle", "state", g.state)
		return
	}
	g.begin()
}

func (g *Game) begin() {
	g.resetRun()
	g.ending.Store(false)

	limit := LevelLimit(g.cfg.Timer, g.level)
	if !g.timer.Start(limit) {
		g.violation("countdown limit is not positive", "limit", limit)
	}

	now := g.host.Clock.Now()
	g.startedAt = now
	g.lastSecond = g.timer.Seconds(now)
	g.state = Running
	g.logger.Debug("run started", "level", g.level, "limit", limit)
	g.schedule()
}

func (g *Game) schedule() {
	g.host.Scheduler.ScheduleNextFrame(g.Tick)
}

// Pause stops frame scheduling. Player, score and rope angle are kept.
func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Running {
		g.violation("pause requested outside a running run", "state", g.state)
		return
	}
	g.state = Paused
	g.timer.Pause()
	g.logger.Debug("paused", "remaining", g.timer.Remaining(g.host.Clock.Now()))
}

// Resume continues a paused run exactly where it stopped.
func (g *Game) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Paused {
		g.violation("resume requested outside a paused run", "state", g.state)
		return
	}
	g.state = Running
	g.timer.Resume()
	g.logger.Debug("resumed")
	g.schedule()
}

// OnDeadlineReached arms the ending flag. The run ends at the next landing.
func (g *Game) OnDeadlineReached() {
	g.ending.Store(true)
}

// Restart begins a new run. The level advances only when the previous run
// ended in a win.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Idle {
		g.violation("restart requested before the first run")
		return
	}

	won := g.state == Ended && g.lastWon
	g.timer.Stop()
	if won && g.level < g.cfg.Levels.MaxLevel {
		g.level++
		g.sound.PlayCue(core.CueLevelUp)
		g.logger.Info("level up", "level", g.level)
	}
	g.begin()
}

// ToggleSound flips the sound dispatcher and returns the new state.
func (g *Game) ToggleSound() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sound.Toggle()
}

// HandleInput maps one frame of input onto the run state machine.
// Tap starts from Idle, pauses while Running, resumes while Paused and
// restarts once Ended.
func (g *Game) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionMute) {
		g.ToggleSound()
	}

	state := g.RunState()
	switch {
	case in.Has(core.ActionTap):
		switch state {
		case Idle:
			g.Start()
		case Running:
			g.Pause()
		case Paused:
			g.Resume()
		case Ended:
			g.Restart()
		}
	case in.Has(core.ActionPause):
		switch state {
		case Running:
			g.Pause()
		case Paused:
			g.Resume()
		}
	case in.Has(core.ActionRestart):
		if state == Ended || state == Paused {
			g.Restart()
		}
	}
}

// Tick advances the run by one frame. It is the FrameFunc handed to the
// host scheduler; it reschedules itself while the run is Running.
func (g *Game) Tick(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Running {
		return
	}

	g.step(now)

	if g.host.Assets.Ready(core.AssetSurface) {
		g.frame.Reset()
		g.render(g.frame, now)
	}

	if g.state == Running {
		g.schedule()
	}
}

func (g *Game) step(now time.Time) {
	g.ticks++
	for _, k := range g.items.Update(now) {
		g.logger.Debug("effect expired", "effect", k)
	}

	pace := g.pace()
	speed := g.cfg.Physics.JumpSpeed * pace
	g.rope.Advance(Rate(g.cfg.Physics.BaseRate, speed, g.cfg.Physics.MinFactor))

	airborne := g.rope.InAir()
	if airborne && !g.wasAirborne {
		g.player.Jumping = true
		g.sound.PlayCue(core.CueJump)
	}
	if airborne && g.boost > 1 {
		g.boostUsed = true
	}

	prevY := g.player.Y
	g.player.Y = g.baseY() - g.rope.Height()*g.boost
	g.player.VelocityY = g.player.Y - prevY
	if airborne {
		g.peak = min(g.peak, g.player.Y)
	}

	g.travel(g.cfg.Player.TravelSpeed * pace)

	landed := g.wasAirborne && !airborne
	g.wasAirborne = airborne
	if landed {
		g.land(now)
		if g.state == Ended {
			return
		}
	}

	g.countdown(now)
	g.collide(now)

	camera := g.camera()
	g.spawner.Update(camera+g.cfg.Screen.Width*1.5, g.progress(), g.items, g.platforms)
	g.platforms.Cleanup(camera)
	g.items.Cleanup(camera)
	g.particles.Update()
}

// pace is the difficulty speed scale for the current level times the
// slow-time scale.
func (g *Game) pace() float64 {
	return g.difficulty.Speed(1, g.progress()) * g.items.TimeScale()
}

func (g *Game) progress() config.Progress {
	return config.Progress{Level: g.level, Score: g.score, Ticks: g.ticks, Distance: g.distance}
}

// travel moves the runner right until it reaches the travel cap, then
// scrolls the backdrop instead.
func (g *Game) travel(step float64) {
	g.distance += step

	limit := g.cfg.Player.TravelCap * g.cfg.Screen.Width
	if g.player.Travel < limit {
		moved := min(step, limit-g.player.Travel)
		g.player.Travel += moved
		g.player.X = g.cfg.Player.StartX + g.player.Travel
		step -= moved
	}
	if step > 0 {
		g.scroll = core.WrapF(g.scroll+step, g.cfg.Screen.Width)
	}
}

// camera is the world x of the left screen edge.
func (g *Game) camera() float64 {
	return g.distance - g.player.Travel
}

// backdropProgress feeds the level selector and the cloud parallax.
func (g *Game) backdropProgress() float64 {
	scale := g.cfg.Background.ProgressScale
	if scale <= 0 {
		scale = 1
	}
	return g.distance / scale
}

// body is the player in world coordinates.
func (g *Game) body() core.Body {
	box := g.player.box()
	box.X += g.camera()
	return core.Body{Box: box, VelocityY: g.player.VelocityY, PickupRadius: g.player.PickupRadius}
}

func (g *Game) land(now time.Time) {
	g.player.Jumping = false

	points := JumpPoints(g.baseY(), g.peak, g.cfg.Physics.PointsDivisor)
	mult := g.items.Multiplier()
	g.addScore((points + 1) * mult)
	g.peak = g.baseY()

	if g.boostUsed {
		g.boost = 1
		g.boostUsed = false
	}

	g.sound.PlayCue(core.CueLand)
	g.particles.Emit(g.body().X, g.groundY(), 6, core.ColorBrown)

	if g.ending.Load() {
		g.end(now)
	}
}

// addScore adds points and persists the high score only when it is beaten.
func (g *Game) addScore(points int) {
	g.score += points
	if g.score > g.highScore {
		g.highScore = g.score
		g.host.Prefs.Set(HighScoreKey, g.highScore)
	}
}

func (g *Game) end(now time.Time) {
	g.state = Ended
	g.timer.Stop()
	g.lastWon = g.score >= g.cfg.Levels.WinScoreBase*g.level

	g.sound.PlayCue(core.CueGameOver)
	g.sound.Vibrate()

	g.logger.Info("run ended", "score", g.score, "level", g.level, "won", g.lastWon)

	if g.host.Results == nil {
		return
	}
	err := g.host.Results.RecordRun(core.RunResult{
		GameID:   GameID,
		Score:    g.score,
		Level:    g.level,
		Won:      g.lastWon,
		Duration: now.Sub(g.startedAt),
	})
	if err != nil {
		g.logger.Warn("could not save run", "error", err)
	}
}

func (g *Game) countdown(now time.Time) {
	secs := g.timer.Seconds(now)
	if secs >= g.lastSecond {
		return
	}
	g.lastSecond = secs
	if secs > 0 && secs <= g.cfg.Timer.CountdownFrom {
		g.sound.PlayCue(core.CueCountdown)
	}
}

func (g *Game) collide(now time.Time) {
	body := g.body()
	camera := g.camera()

	if g.cfg.Platforms.Enabled {
		for _, p := range g.platforms.CheckCollisions(body, camera) {
			if p.Landed {
				continue
			}
			p.Landed = true
			g.addScore(g.cfg.Platforms.Bonus * g.items.Multiplier())
			g.sound.PlayCue(core.CueLand)
			g.particles.Emit(p.X, p.Bounds().Top, 4, core.ColorBrown)
		}
	}

	if g.cfg.Collectibles.Enabled {
		for _, c := range g.items.CheckCollections(body, now, runSink{g}) {
			g.sound.PlayCue(core.CueCollect)
			g.particles.Emit(c.X, c.Y, 8, c.Kind().Color())
			g.logger.Debug("collected", "kind", c.Kind())
		}
	}
}

// runSink applies instant effects to the running game.
type runSink struct{ g *Game }

func (s runSink) AddScore(points int) { s.g.addScore(points) }

func (s runSink) BoostHeight(factor float64) {
	if factor > 1 {
		s.g.boost = factor
		s.g.boostUsed = false
	}
}

// violation reports a broken invariant. In strict mode it panics.
func (g *Game) violation(msg string, keyvals ...interface{}) {
	if g.logger != nil {
		g.logger.Error(msg, keyvals...)
	}
	if g.settings.Strict {
		panic(fmt.Sprintf("jumprope: %s", msg))
	}
}

// RunState returns the current phase.
func (g *Game) RunState() RunState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Level:     g.level,
		Phase:     g.state.String(),
		GameOver:  g.state == Ended,
		Paused:    g.state == Paused,
		Won:       g.state == Ended && g.lastWon,
	}
}

// Snapshot returns a copy of the run internals.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	remaining := 0
	if g.timer != nil && g.host.Clock != nil {
		remaining = g.timer.Seconds(g.host.Clock.Now())
	}
	mult := 1
	if g.items != nil {
		mult = g.items.Multiplier()
	}
	return Snapshot{
		State:      g.state,
		Theta:      g.rope.Theta,
		Score:      g.score,
		HighScore:  g.highScore,
		Level:      g.level,
		Multiplier: mult,
		Peak:       g.peak,
		BaseY:      g.baseY(),
		Player:     g.player,
		Airborne:   g.wasAirborne,
		Ending:     g.ending.Load(),
		Won:        g.state == Ended && g.lastWon,
		Distance:   g.distance,
		Scroll:     g.scroll,
		Remaining:  remaining,
	}
}

// LastFrame returns the draw list recorded by the most recent tick.
// It is empty when the surface was not ready. The list is reused by the
// next tick.
func (g *Game) LastFrame() *core.DrawList {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame
}

type noPrefs struct{}

func (noPrefs) Get(string) (int, bool) { return 0, false }
func (noPrefs) Set(string, int) {}
