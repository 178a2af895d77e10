// Package window is the desktop host: Ebiten drives the frame queue at the
// display refresh and the draw list is replayed with vector primitives.
package window

import (
	"errors"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/registry"
)

// Options carries the ports the window host hands to the game.
type Options struct {
	Runtime     core.RuntimeConfig
	Prefs       core.Prefs
	Results     core.ResultSink
	Audio       core.AudioOut
	Logger      core.Logger
	BackdropDir string   // Directory theme images are read from
	Images      []string // Theme image names to preload
	Title       string
}

// Host implements ebiten.Game around a registry.Game.
type Host struct {
	game   registry.Game
	frames *core.FrameQueue
	assets *core.Assets
	images *imageCache
	flash  *core.Flash
	list   *core.DrawList
	logger core.Logger
	width  int
	height int
	state  core.GameState
}

// New resets game against a window host. The surface becomes Ready on the
// first Layout call.
func New(game registry.Game, opts Options) (*Host, error) {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := &Host{
		game:   game,
		frames: &core.FrameQueue{},
		assets: core.NewAssets(),
		flash:  &core.Flash{},
		logger: opts.Logger,
	}
	h.assets.Set(core.AssetSurface, core.AssetLoading)

	err := game.Reset(cfg, core.Host{
		Scheduler: h.frames,
		Clock:     core.SystemClock{},
		Prefs:     opts.Prefs,
		Audio:     opts.Audio,
		Haptics:   h.flash,
		Results:   opts.Results,
		Assets:    h.assets,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	w, ht := game.Surface()
	h.width, h.height = int(w), int(ht)
	h.list = core.NewDrawList(w, ht)
	h.images = newImageCache(h.assets, opts.Logger, nil)
	if opts.BackdropDir != "" {
		h.images.LoadAll(opts.BackdropDir, opts.Images)
	}
	return h, nil
}

// Update polls input and fires the pending frame.
func (h *Host) Update() error {
	frame, quit := readInput()
	if quit {
		return ebiten.Termination
	}
	if !frame.Empty() {
		h.game.HandleInput(frame)
	}
	h.frames.Fire(time.Now())
	h.state = h.game.State()
	return nil
}

// Draw replays the game's draw list onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	h.list.Reset()
	h.game.Render(h.list)
	replay(&screenCanvas{dst: screen, images: h.images}, h.list)

	if h.flash.Active(time.Now()) {
		red := RGBA(core.ColorBrightRed)
		vector.StrokeRect(screen, 2, 2, float32(h.width-4), float32(h.height-4), 4, red, false)
	}
}

// Layout keeps the game's logical resolution; Ebiten scales it to the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !h.assets.Ready(core.AssetSurface) {
		h.assets.Set(core.AssetSurface, core.AssetReady)
		h.logger.Debug("window surface ready", "width", outsideWidth, "height", outsideHeight)
	}
	return h.width, h.height
}

// State returns the last observed game state.
func (h *Host) State() core.GameState {
	return h.state
}

// Run opens a window for game and blocks until it is closed.
func Run(game registry.Game, opts Options) (core.GameState, error) {
	h, err := New(game, opts)
	if err != nil {
		return core.GameState{}, err
	}

	title := opts.Title
	if title == "" {
		title = game.Title()
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return h.State(), err
	}
	return h.State(), nil
}

// readInput maps this tick's presses to an input frame.
func readInput() (core.InputFrame, bool) {
	frame := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return frame, true
	}

	tap := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		tap = tap || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	if tap {
		frame.Set(core.ActionTap)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		frame.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		frame.Set(core.ActionRestart)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		frame.Set(core.ActionMute)
	}
	return frame, false
}

// screenCanvas adapts an Ebiten image to canvas.
type screenCanvas struct {
	dst    *ebiten.Image
	images *imageCache
}

func (s *screenCanvas) Fill(c color.Color) {
	s.dst.Fill(c)
}

func (s *screenCanvas) FillRect(x, y, w, h float32, c color.Color) {
	vector.FillRect(s.dst, x, y, w, h, c, false)
}

func (s *screenCanvas) FillCircle(x, y, r float32, c color.Color) {
	vector.FillCircle(s.dst, x, y, r, c, true)
}

func (s *screenCanvas) DrawImage(name string, x, y, w, h float64) {
	img, ok := s.images.Get(name)
	if !ok {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(img, op)
}

func (s *screenCanvas) Text(str string, x, y int) {
	ebitenutil.DebugPrintAt(s.dst, str, x, y)
}
