package jumprope

import (
	"math/rand"

	"github.com/vovakirdan/jumprope/internal/core"
	"github.com/vovakirdan/jumprope/internal/pool"
)

const particleGravity = 0.15

// Particle is a short-lived dust or sparkle speck in world coordinates.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Color   core.Color
}

// Burst is the spawn argument for a particle.
type Burst struct {
	X, Y   float64
	VX, VY float64
	Life   int
	Color  core.Color
}

func resetParticle(p *Particle, b Burst) {
	*p = Particle{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, Life: b.Life, MaxLife: b.Life, Color: b.Color}
}

// Particles owns the pooled particle set.
type Particles struct {
	pool *pool.Pool[Particle, Burst]
	rng  *rand.Rand
}

// NewParticles creates an empty particle set.
func NewParticles(seed int64) *Particles {
	return &Particles{
		pool: pool.New(func(b Burst) *Particle {
			p := &Particle{}
			resetParticle(p, b)
			return p
		}, resetParticle),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Emit spawns n particles around (x, y) that spray upward.
func (ps *Particles) Emit(x, y float64, n int, color core.Color) {
	for range n {
		ps.pool.Acquire(Burst{
			X:     x,
			Y:     y,
			VX:    (ps.rng.Float64() - 0.5) * 4,
			VY:    -1 - ps.rng.Float64()*2,
			Life:  20 + ps.rng.Intn(15),
			Color: color,
		})
	}
}

// Update moves every particle and returns dead ones to the pool.
func (ps *Particles) Update() {
	ps.pool.Each(func(p *Particle) {
		p.X += p.VX
		p.Y += p.VY
		p.VY += particleGravity
		p.Life--
	})
	ps.pool.ReleaseIf(func(p *Particle) bool { return p.Life <= 0 })
}

// Draw records every live particle offset by the camera.
func (ps *Particles) Draw(dst *core.DrawList, camera float64) {
	ps.pool.Each(func(p *Particle) {
		size := 2 + 3*float64(p.Life)/float64(max(p.MaxLife, 1))
		dst.FillRect(p.X-camera-size/2, p.Y-size/2, size, size, p.Color)
	})
}

// Reset returns every particle to the pool.
func (ps *Particles) Reset(seed int64) {
	ps.pool.ReleaseAll()
	ps.rng = rand.New(rand.NewSource(seed))
}

// Active returns the number of live particles.
func (ps *Particles) Active() int { return ps.pool.ActiveCount() }
