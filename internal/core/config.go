package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the host surface and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Host surface width (characters or pixels)
	ScreenH  int   // Host surface height
	TickRate int   // Frames per second requested from the host (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score seen so far
	Level     int    // Current level (1-based)
	Phase     string // Run state name (idle, running, paused, ended)
	GameOver  bool   // Whether the run has ended
	Paused    bool   // Whether the run is paused
	Won       bool   // Whether the last finished run was a win
}
