// Package config provides YAML-based game configuration loading and
// difficulty management for the jump rope runner.
package config

// JumpRopeConfig contains all configuration for the jump rope runner.
type JumpRopeConfig struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Player       PlayerConfig       `yaml:"player"`
	Timer        TimerConfig        `yaml:"timer"`
	Levels       LevelsConfig       `yaml:"levels"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Platforms    PlatformsConfig    `yaml:"platforms"`
	Background   BackgroundConfig   `yaml:"background"`
	Sound        SoundConfig        `yaml:"sound"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// ScreenConfig defines the logical drawing space. Hosts scale it to fit.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the rope rhythm and scoring constants.
type PhysicsConfig struct {
	JumpHeight    float64 `yaml:"jump_height"`    // Peak height of a jump in logical units
	JumpSpeed     float64 `yaml:"jump_speed"`     // Speed factor applied to the rope rate
	BaseRate      float64 `yaml:"base_rate"`      // Radians per frame at speed factor 1
	MinFactor     float64 `yaml:"min_factor"`     // Lower bound for the speed factor
	AirThreshold  float64 `yaml:"air_threshold"`  // |sin θ| above this means airborne
	PointsDivisor float64 `yaml:"points_divisor"` // Height units per jump point
}

// PlayerConfig defines the runner body and its travel.
type PlayerConfig struct {
	StartX       float64 `yaml:"start_x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance of the ground line from the bottom edge
	PickupRadius float64 `yaml:"pickup_radius"`
	TravelSpeed  float64 `yaml:"travel_speed"` // Units per frame at speed factor 1
	TravelCap    float64 `yaml:"travel_cap"`   // Fraction of the screen width the runner may cross
}

// Pause policies for the countdown timer.
const (
	PauseFreeze   = "freeze"
	PauseContinue = "continue"
)

// TimerConfig defines the per-run countdown.
type TimerConfig struct {
	BaseLimitMS   int    `yaml:"base_limit_ms"`
	MinLimitMS    int    `yaml:"min_limit_ms"`
	StepMS        int    `yaml:"step_ms"` // Reduction per level
	CountdownFrom int    `yaml:"countdown_from"`
	PausePolicy   string `yaml:"pause_policy"` // "freeze" or "continue"
}

// LevelsConfig defines the win rule.
type LevelsConfig struct {
	WinScoreBase int `yaml:"win_score_base"` // A run wins with score >= base * level
	MaxLevel     int `yaml:"max_level"`
}

// CollectiblesConfig defines pickups and their effects.
type CollectiblesConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Radius           float64 `yaml:"radius"`
	ScoreBonus       int     `yaml:"score_bonus"`
	MultiplierFactor int     `yaml:"multiplier_factor"`
	MultiplierMS     int     `yaml:"multiplier_ms"`
	SlowScale        float64 `yaml:"slow_scale"`
	SlowMS           int     `yaml:"slow_ms"`
	HeightBoost      float64 `yaml:"height_boost"`
	MinSpacing       float64 `yaml:"min_spacing"`
	MaxSpacing       float64 `yaml:"max_spacing"`
	MinLift          float64 `yaml:"min_lift"` // Height above ground, lower bound
	MaxLift          float64 `yaml:"max_lift"`
}

// PlatformsConfig defines the floating platforms.
type PlatformsConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Bonus      int     `yaml:"bonus"`
	MinSpacing float64 `yaml:"min_spacing"`
	MaxSpacing float64 `yaml:"max_spacing"`
	MinLift    float64 `yaml:"min_lift"`
	MaxLift    float64 `yaml:"max_lift"`
}

// ThemeConfig is one background level.
type ThemeConfig struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
	Color     string  `yaml:"color"`
	Image     string  `yaml:"image"` // Optional image asset name
}

// BackgroundConfig defines themes and parallax decoration.
type BackgroundConfig struct {
	Themes        []ThemeConfig `yaml:"themes"`
	ProgressScale float64       `yaml:"progress_scale"` // Travel units per progress point
	Damping       float64       `yaml:"damping"`
	Clouds        int           `yaml:"clouds"`
	CloudSpacingX float64       `yaml:"cloud_spacing_x"`
	CloudSpacingY float64       `yaml:"cloud_spacing_y"`
}

// SoundConfig defines audio and haptics.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
	Haptics bool    `yaml:"haptics"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", "time", "distance" or "none"
	MaxAt int    `yaml:"max_at"` // Level/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spawn spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", invalidf("unknown difficulty %q", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
