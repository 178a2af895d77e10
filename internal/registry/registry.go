// Package registry lets games register factories from init() so hosts can
// discover and build them by ID without importing each game directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/jumprope/internal/core"
)

// Game is the contract between a game engine and the host that drives it.
// Games never draw or play audio directly; they talk to the host only through
// the ports in core.Host.
type Game interface {
	// ID returns a unique identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset prepares the game for a new session and binds the host ports.
	// The game is left Idle; the first Tap (or Start) begins a run.
	Reset(cfg core.RuntimeConfig, host core.Host) error

	// HandleInput applies one frame of abstract input.
	HandleInput(in core.InputFrame)

	// Render records the current game state into dst.
	Render(dst *core.DrawList)

	// Surface returns the logical size of the drawing space.
	Surface() (width, height float64)

	// State returns the current score and phase.
	State() core.GameState
}

// Settings carries per-session choices from the command line.
type Settings struct {
	ConfigPath string // Custom YAML config, empty for the default search order
	Difficulty string // Difficulty preset name, empty for the config default
	Strict     bool   // Panic on invariant violations
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet Reset, game instance.
type Factory func(s Settings) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Settings{}).Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string, s Settings) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(s), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
