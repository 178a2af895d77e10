package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/jumprope/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config sources reported by LoadJumpRope.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

const configFile = "jumprope.yaml"

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// LoadJumpRope loads the runner configuration and reports where it came from.
// Search order: customPath -> ~/.jumprope/configs/jumprope.yaml -> ./configs/jumprope.yaml -> embedded default.
// Files only need to list the keys they override.
func LoadJumpRope(customPath string) (JumpRopeConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return JumpRopeConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return JumpRopeConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", configFile)
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, localPath, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultJumpRopeYAML)
	if err != nil {
		return DefaultJumpRopeConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// parse overlays data on the built-in defaults and validates the result.
func parse(data []byte) (JumpRopeConfig, error) {
	cfg := DefaultJumpRopeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JumpRopeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return JumpRopeConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg JumpRopeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumprope", "configs", filename)
}

// Validate checks value ranges. Errors wrap ErrInvalid.
func (c JumpRopeConfig) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return invalidf("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	case c.Physics.JumpHeight <= 0:
		return invalidf("physics.jump_height must be positive")
	case c.Physics.BaseRate <= 0:
		return invalidf("physics.base_rate must be positive")
	case c.Physics.MinFactor <= 0:
		return invalidf("physics.min_factor must be positive")
	case c.Physics.AirThreshold < 0 || c.Physics.AirThreshold >= 1:
		return invalidf("physics.air_threshold must be in [0, 1)")
	case c.Physics.PointsDivisor <= 0:
		return invalidf("physics.points_divisor must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return invalidf("player size must be positive")
	case c.Player.TravelCap < 0 || c.Player.TravelCap > 1:
		return invalidf("player.travel_cap must be in [0, 1]")
	case c.Timer.MinLimitMS <= 0 || c.Timer.BaseLimitMS < c.Timer.MinLimitMS:
		return invalidf("timer limits must satisfy 0 < min_limit_ms <= base_limit_ms")
	case c.Timer.StepMS < 0:
		return invalidf("timer.step_ms must not be negative")
	case c.Timer.PausePolicy != PauseFreeze && c.Timer.PausePolicy != PauseContinue:
		return invalidf("timer.pause_policy must be %q or %q, got %q", PauseFreeze, PauseContinue, c.Timer.PausePolicy)
	case c.Levels.MaxLevel < 1:
		return invalidf("levels.max_level must be at least 1")
	case c.Collectibles.MinSpacing > c.Collectibles.MaxSpacing:
		return invalidf("collectibles spacing range is inverted")
	case c.Platforms.MinSpacing > c.Platforms.MaxSpacing:
		return invalidf("platforms spacing range is inverted")
	case len(c.Background.Themes) == 0:
		return invalidf("background.themes must not be empty")
	case c.Background.ProgressScale <= 0:
		return invalidf("background.progress_scale must be positive")
	case c.Sound.Volume < 0 || c.Sound.Volume > 1:
		return invalidf("sound.volume must be in [0, 1]")
	}

	switch c.Difficulty.Progression.Type {
	case ProgressLevel, ProgressScore, ProgressTime, ProgressDistance, ProgressNone:
	default:
		return invalidf("difficulty.progression.type %q is unknown", c.Difficulty.Progression.Type)
	}

	for _, th := range c.Background.Themes {
		if _, ok := core.ParseColor(th.Color); !ok {
			return invalidf("theme %q: unknown color %q", th.Name, th.Color)
		}
	}
	return nil
}

// ApplyJumpRopePreset modifies the config based on a difficulty preset.
func ApplyJumpRopePreset(cfg *JumpRopeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timer.BaseLimitMS = 40000
		cfg.Levels.WinScoreBase = 80
	case DifficultyHard:
		cfg.Timer.BaseLimitMS = 24000
		cfg.Levels.WinScoreBase = 140
	}
}
