package config

import (
	_ "embed"
)

//go:embed defaults/jumprope.yaml
var defaultJumpRopeYAML []byte

// DefaultJumpRopeConfig returns the built-in configuration.
// It mirrors defaults/jumprope.yaml and is used when the embedded file
// cannot be parsed.
func DefaultJumpRopeConfig() JumpRopeConfig {
	return JumpRopeConfig{
		Screen: ScreenConfig{Width: 800, Height: 450},
		Physics: PhysicsConfig{
			JumpHeight:    80,
			JumpSpeed:     2,
			BaseRate:      0.08,
			MinFactor:     0.3,
			AirThreshold:  0.3,
			PointsDivisor: 5,
		},
		Player: PlayerConfig{
			StartX:       80,
			Width:        24,
			Height:       40,
			GroundOffset: 60,
			PickupRadius: 20,
			TravelSpeed:  2,
			TravelCap:    0.4,
		},
		Timer: TimerConfig{
			BaseLimitMS:   30000,
			MinLimitMS:    6000,
			StepMS:        2000,
			CountdownFrom: 3,
			PausePolicy:   PauseFreeze,
		},
		Levels: LevelsConfig{
			WinScoreBase: 100,
			MaxLevel:     20,
		},
		Collectibles: CollectiblesConfig{
			Enabled:          true,
			Radius:           20,
			ScoreBonus:       50,
			MultiplierFactor: 2,
			MultiplierMS:     5000,
			SlowScale:        0.5,
			SlowMS:           3000,
			HeightBoost:      1.5,
			MinSpacing:       250,
			MaxSpacing:       450,
			MinLift:          30,
			MaxLift:          90,
		},
		Platforms: PlatformsConfig{
			Enabled:    true,
			Width:      90,
			Height:     12,
			Bonus:      10,
			MinSpacing: 300,
			MaxSpacing: 600,
			MinLift:    20,
			MaxLift:    60,
		},
		Background: BackgroundConfig{
			Themes: []ThemeConfig{
				{Name: "Village", Threshold: 0, Color: "sky"},
				{Name: "Monrovia", Threshold: 500, Color: "orange"},
				{Name: "Rising Sun", Threshold: 1200, Color: "coral"},
			},
			ProgressScale: 5,
			Damping:       0.3,
			Clouds:        5,
			CloudSpacingX: 150,
			CloudSpacingY: 200,
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.5,
			Haptics: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				SpacingReduction: 100,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultJumpRopeYAML
}
