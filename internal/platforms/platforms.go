// Package platforms tracks the floating platforms of an endless scroller
// and reports landings on them.
package platforms

import "github.com/vovakirdan/jumprope/internal/core"

// Culling margins around the viewport.
const (
	visibleMargin = 100
	cleanupMargin = 500
)

// Platform is a static box the runner can land on.
type Platform struct {
	core.Box
	Landed bool // Set by the game once the landing bonus was awarded
}

// Registry owns the platforms of a run.
type Registry struct {
	axis      core.Axis
	viewport  float64 // Viewport extent along the axis
	platforms []*Platform
}

// NewRegistry creates an empty registry scrolling along axis.
func NewRegistry(axis core.Axis, viewport float64) *Registry {
	return &Registry{axis: axis, viewport: viewport}
}

// Axis returns the scroll axis.
func (r *Registry) Axis() core.Axis { return r.axis }

// Add registers a platform centered at box.
func (r *Registry) Add(box core.Box) *Platform {
	p := &Platform{Box: box}
	r.platforms = append(r.platforms, p)
	return p
}

// Len returns the number of tracked platforms.
func (r *Registry) Len() int { return len(r.platforms) }

// Reset drops every platform.
func (r *Registry) Reset() {
	r.platforms = r.platforms[:0]
}

func (r *Registry) pos(p *Platform) float64 {
	return r.axis.Along(p.X, p.Y)
}

// Visible returns platforms inside the camera window widened by a margin.
func (r *Registry) Visible(camera float64) []*Platform {
	lo := camera - visibleMargin
	hi := camera + r.viewport + visibleMargin

	var out []*Platform
	for _, p := range r.platforms {
		if v := r.pos(p); v > lo && v < hi {
			out = append(out, p)
		}
	}
	return out
}

// Cleanup drops platforms that fell more than viewport+500 behind the camera
// and returns how many were removed. Vertically, behind means below the view;
// horizontally it means left of the camera.
func (r *Registry) Cleanup(camera float64) int {
	kept := r.platforms[:0]
	for _, p := range r.platforms {
		if r.behind(r.pos(p), camera) {
			continue
		}
		kept = append(kept, p)
	}
	removed := len(r.platforms) - len(kept)
	for i := len(kept); i < len(r.platforms); i++ {
		r.platforms[i] = nil
	}
	r.platforms = kept
	return removed
}

func (r *Registry) behind(v, camera float64) bool {
	if r.axis == core.AxisHorizontal {
		return v < camera-(r.viewport+cleanupMargin)
	}
	return v >= camera+r.viewport+cleanupMargin
}

// CheckCollisions returns the visible platforms the body is landing on.
// Only a falling body (VelocityY > 0) can land.
func (r *Registry) CheckCollisions(body core.Body, camera float64) []*Platform {
	var hits []*Platform
	for _, p := range r.Visible(camera) {
		if _, ok := core.LandingContact(body.Box, p.Box, body.VelocityY); ok {
			hits = append(hits, p)
		}
	}
	return hits
}
