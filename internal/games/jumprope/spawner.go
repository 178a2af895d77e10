package jumprope

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/jumprope/internal/collectibles"
	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/platforms"
)

// Spawner places collectibles and platforms ahead of the camera in world space.
type Spawner struct {
	rng        *rand.Rand
	cfg        *config.JumpRopeConfig
	difficulty *config.DifficultyManager
	baseY      float64 // Player center when standing
	groundY    float64

	nextItemX     float64
	nextPlatformX float64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg *config.JumpRopeConfig, diff *config.DifficultyManager, groundY, baseY float64) *Spawner {
	s := &Spawner{
		cfg:        cfg,
		difficulty: diff,
		groundY:    groundY,
		baseY:      baseY,
	}
	s.Reset(seed)
	return s
}

// Reset reseeds the RNG and moves the first spawns just past the right edge.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.nextItemX = s.cfg.Screen.Width + s.cfg.Collectibles.MinSpacing
	s.nextPlatformX = s.cfg.Screen.Width + s.cfg.Platforms.MinSpacing
}

// Update spawns everything due before horizon (a world x) and returns how
// many collectibles and platforms were added.
func (s *Spawner) Update(horizon float64, p config.Progress, items *collectibles.Registry, plats *platforms.Registry) (nItems, nPlatforms int) {
	if s.cfg.Collectibles.Enabled {
		for s.nextItemX <= horizon {
			y := s.baseY - s.between(s.cfg.Collectibles.MinLift, s.cfg.Collectibles.MaxLift)
			items.Add(s.nextItemX, y, s.cfg.Collectibles.Radius, s.effect())
			s.nextItemX += s.spacing(s.cfg.Collectibles.MinSpacing, s.cfg.Collectibles.MaxSpacing, p)
			nItems++
		}
	}

	if s.cfg.Platforms.Enabled {
		for s.nextPlatformX <= horizon {
			y := s.groundY - s.between(s.cfg.Platforms.MinLift, s.cfg.Platforms.MaxLift)
			plats.Add(core.Box{
				X:      s.nextPlatformX,
				Y:      y,
				Width:  s.cfg.Platforms.Width,
				Height: s.cfg.Platforms.Height,
			})
			s.nextPlatformX += s.spacing(s.cfg.Platforms.MinSpacing, s.cfg.Platforms.MaxSpacing, p)
			nPlatforms++
		}
	}

	return nItems, nPlatforms
}

func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// spacing picks a gap in [lo, hi] and shrinks it with difficulty, never
// below half of lo.
func (s *Spawner) spacing(lo, hi float64, p config.Progress) float64 {
	gap := s.difficulty.Spacing(s.between(lo, hi), lo/2, p)
	return max(gap, 1)
}

func (s *Spawner) effect() collectibles.Effect {
	c := s.cfg.Collectibles
	switch collectibles.Kind(s.rng.Intn(int(collectibles.KindCount))) {
	case collectibles.KindMultiplier:
		return collectibles.Multiplier{
			Factor:   c.MultiplierFactor,
			Duration: time.Duration(c.MultiplierMS) * time.Millisecond,
		}
	case collectibles.KindSlowTime:
		return collectibles.SlowTime{
			Scale:    c.SlowScale,
			Duration: time.Duration(c.SlowMS) * time.Millisecond,
		}
	case collectibles.KindHeightBoost:
		return collectibles.HeightBoost{Factor: c.HeightBoost}
	default:
		return collectibles.ScoreBonus{Points: c.ScoreBonus}
	}
}
