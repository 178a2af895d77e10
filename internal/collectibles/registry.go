// Package collectibles tracks world pickups and the time-boxed effects
// they grant.
package collectibles

import (
	"time"

	"github.com/vovakirdan/jumprope/internal/core"
)

// DefaultRadius is used for collectibles added without a radius.
const DefaultRadius = 20

// Culling margins around the viewport.
const (
	visibleMargin = 100
	cleanupMargin = 500
)

// Collectible is a pickup placed in the world.
type Collectible struct {
	X, Y      float64
	Radius    float64
	Effect    Effect
	Collected bool // Monotone: never reset once true
}

// Kind returns the kind of the granted effect.
func (c *Collectible) Kind() Kind {
	if c.Effect == nil {
		return KindCount
	}
	return c.Effect.Kind()
}

// Sink receives effects that act on game state outside the registry.
type Sink interface {
	AddScore(points int)
	BoostHeight(factor float64)
}

// Registry owns collectibles and active effects.
type Registry struct {
	axis     core.Axis
	viewport float64

	items   []*Collectible
	effects []ActiveEffect

	onViolation func(err error)
}

// NewRegistry creates an empty registry scrolling along axis.
func NewRegistry(axis core.Axis, viewport float64) *Registry {
	return &Registry{axis: axis, viewport: viewport}
}

// OnViolation installs the handler for effects that cannot be dispatched.
// Without a handler the registry panics.
func (r *Registry) OnViolation(fn func(err error)) {
	r.onViolation = fn
}

// Add places a collectible. A non-positive radius uses DefaultRadius.
func (r *Registry) Add(x, y, radius float64, e Effect) *Collectible {
	if radius <= 0 {
		radius = DefaultRadius
	}
	c := &Collectible{X: x, Y: y, Radius: radius, Effect: e}
	r.items = append(r.items, c)
	return c
}

// Len returns the number of tracked collectibles, collected or not.
func (r *Registry) Len() int { return len(r.items) }

// Reset drops every collectible and effect.
func (r *Registry) Reset() {
	r.items = r.items[:0]
	r.effects = r.effects[:0]
}

// CheckCollections collects every item within radius+PickupRadius of the body
// and applies its effect. An item is collected at most once.
func (r *Registry) CheckCollections(body core.Body, now time.Time, sink Sink) []*Collectible {
	reach := body.PickupRadius
	player := core.Vec2{X: body.X, Y: body.Y}

	var collected []*Collectible
	for _, c := range r.items {
		if c.Collected {
			continue
		}
		if player.Dist(core.Vec2{X: c.X, Y: c.Y}) >= c.Radius+reach {
			continue
		}
		c.Collected = true
		collected = append(collected, c)
		r.apply(c.Effect, now, sink)
	}
	return collected
}

func (r *Registry) apply(e Effect, now time.Time, sink Sink) {
	switch e := e.(type) {
	case ScoreBonus:
		sink.AddScore(e.Points)
	case Multiplier:
		r.addEffect(ActiveEffect{Kind: KindMultiplier, Until: now.Add(e.Duration), Factor: e.Factor})
	case SlowTime:
		r.addEffect(ActiveEffect{Kind: KindSlowTime, Until: now.Add(e.Duration), Scale: e.Scale})
	case HeightBoost:
		sink.BoostHeight(e.Factor)
	default:
		r.violation(&UnknownEffectError{Effect: e})
	}
}

func (r *Registry) violation(err error) {
	if r.onViolation == nil {
		panic(err)
	}
	r.onViolation(err)
}

// addEffect adds or extends an effect.
func (r *Registry) addEffect(e ActiveEffect) {
	for i := range r.effects {
		if r.effects[i].Kind == e.Kind {
			r.effects[i] = e
			return
		}
	}
	r.effects = append(r.effects, e)
}

// Update removes effects that have expired and returns their kinds.
// Afterwards every remaining effect expires strictly after now.
func (r *Registry) Update(now time.Time) []Kind {
	var expired []Kind
	active := r.effects[:0]

	for _, e := range r.effects {
		if !e.Until.After(now) {
			expired = append(expired, e.Kind)
		} else {
			active = append(active, e)
		}
	}

	r.effects = active
	return expired
}

// Effects returns the active timed effects.
func (r *Registry) Effects() []ActiveEffect {
	return r.effects
}

// HasEffect returns true if the given effect is active.
func (r *Registry) HasEffect(k Kind) bool {
	_, ok := r.find(k)
	return ok
}

func (r *Registry) find(k Kind) (ActiveEffect, bool) {
	for _, e := range r.effects {
		if e.Kind == k {
			return e, true
		}
	}
	return ActiveEffect{}, false
}

// TimeScale returns the slow-time scale while it is active, else 1.
func (r *Registry) TimeScale() float64 {
	if e, ok := r.find(KindSlowTime); ok && e.Scale > 0 {
		return e.Scale
	}
	return 1.0
}

// Multiplier returns the boosted score factor while active, else 1.
func (r *Registry) Multiplier() int {
	if e, ok := r.find(KindMultiplier); ok && e.Factor > 1 {
		return e.Factor
	}
	return 1
}

// Visible returns uncollected items inside the camera window.
func (r *Registry) Visible(camera float64) []*Collectible {
	lo := camera - visibleMargin
	hi := camera + r.viewport + visibleMargin

	var out []*Collectible
	for _, c := range r.items {
		if c.Collected {
			continue
		}
		if v := r.axis.Along(c.X, c.Y); v > lo && v < hi {
			out = append(out, c)
		}
	}
	return out
}

// Cleanup drops collected items and those far behind the camera.
func (r *Registry) Cleanup(camera float64) int {
	kept := r.items[:0]
	for _, c := range r.items {
		if c.Collected || r.behind(r.axis.Along(c.X, c.Y), camera) {
			continue
		}
		kept = append(kept, c)
	}
	removed := len(r.items) - len(kept)
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = kept
	return removed
}

func (r *Registry) behind(v, camera float64) bool {
	if r.axis == core.AxisHorizontal {
		return v < camera-(r.viewport+cleanupMargin)
	}
	return v >= camera+r.viewport+cleanupMargin
}
