package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/registry"
)

// Options carries the ports the terminal host hands to the game.
// Any of them may be nil.
type Options struct {
	Runtime core.RuntimeConfig
	Prefs   core.Prefs
	Results core.ResultSink
	Audio   core.AudioOut
	Logger  core.Logger
}

// Model is the Bubble Tea model that hosts a game.
type Model struct {
	game      registry.Game
	frames    *core.FrameQueue
	assets    *core.Assets
	flash     *core.Flash
	screen    *core.Screen
	list      *core.DrawList
	keyMapper *KeyMapper
	help      help.Model
	config    core.RuntimeConfig
	logger    core.Logger
	gameState core.GameState
	quitting  bool
}

// NewModel binds game to a terminal host and resets it.
// The surface stays Loading until the terminal reports its size.
func NewModel(game registry.Game, opts Options) (Model, error) {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:      game,
		frames:    &core.FrameQueue{},
		assets:    core.NewAssets(),
		flash:     &core.Flash{},
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		config:    cfg,
		logger:    opts.Logger,
	}
	m.assets.Set(core.AssetSurface, core.AssetLoading)

	err := game.Reset(cfg, core.Host{
		Scheduler: m.frames,
		Clock:     core.SystemClock{},
		Prefs:     opts.Prefs,
		Audio:     opts.Audio,
		Haptics:   m.flash,
		Results:   opts.Results,
		Assets:    m.assets,
		Logger:    opts.Logger,
	})
	if err != nil {
		return Model{}, err
	}

	w, h := game.Surface()
	m.list = core.NewDrawList(w, h)
	m.gameState = game.State()
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			frame := core.NewInputFrame()
			frame.Set(core.ActionTap)
			m.game.HandleInput(frame)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey applies input immediately so taps are not lost between frames.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	if !frame.Empty() {
		m.game.HandleInput(frame)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleResize adopts the new terminal size. The game keeps its logical
// space, so resizing never resets a run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1)) // Last row holds the help line
	m.help.Width = msg.Width

	if !m.assets.Ready(core.AssetSurface) {
		m.assets.Set(core.AssetSurface, core.AssetReady)
		if m.logger != nil {
			m.logger.Debug("terminal surface ready", "cols", msg.Width, "rows", msg.Height)
		}
	}
	return m, nil
}

// handleTick fires the game's pending frame, if any.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.frames.Fire(now)
	m.gameState = m.game.State()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".jumprope", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.logger != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

func (m *Model) draw() {
	m.list.Reset()
	m.game.Render(m.list)
	m.screen.Clear()
	Rasterize(m.screen, m.list)

	if m.flash.Active(time.Now()) {
		bottom := m.screen.Height() - 1
		for x := range m.screen.Width() {
			m.screen.SetColored(x, 0, '▀', core.ColorBrightRed)
			m.screen.SetColored(x, bottom, '▄', core.ColorBrightRed)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.assets.Ready(core.AssetSurface) {
		return "Loading..."
	}

	m.draw()
	body := RenderScreen(m.screen)

	helpLine := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keyMapper.Keys()))
	return body + "\n" + helpLine
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for game and returns its final state.
func Run(game registry.Game, opts Options) (core.GameState, error) {
	model, err := NewModel(game, opts)
	if err != nil {
		return core.GameState{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse clicks count as taps
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return game.State(), nil
}
