// Package physics wraps the Chipmunk rigid-body space used by the table.
//
// World owns the cp.Space and enforces the table rules that live below the
// game layer: the ball speed clamp after every step, begin-phase collision
// handlers keyed by category, and atomic creation/removal of multi-part
// bodies through Handle.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// Collision categories.
const (
	CategoryBall     cp.CollisionType = 1
	CategoryObject   cp.CollisionType = 2
	CategoryReserved cp.CollisionType = 3 // gates, recline and shield
)

// Material holds surface properties of a shape.
type Material struct {
	Elasticity float64
	Friction   float64
}

// BeginFunc is called when two shapes start touching. a has the first
// category of the handler. Returning false ignores the contact.
type BeginFunc func(a, b *cp.Shape) bool

// World is the rigid-body world of one table.
type World struct {
	space    *cp.Space
	maxSpeed float64
	balls    []*cp.Body
}

// NewWorld creates a world with the configured gravity and solver settings.
func NewWorld(cfg config.PhysicsConfig) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	if cfg.Damping > 0 {
		space.SetDamping(cfg.Damping)
	}
	return &World{
		space:    space,
		maxSpeed: cfg.MaxSpeed,
	}
}

// Space exposes the underlying cp.Space.
func (w *World) Space() *cp.Space {
	return w.space
}

// Step advances the world by dt seconds and clamps ball speeds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
	w.clampBalls()
}

func (w *World) clampBalls() {
	if w.maxSpeed <= 0 {
		return
	}
	for _, b := range w.balls {
		v := b.Velocity()
		if v.Length() > w.maxSpeed {
			b.SetVelocityVector(v.Normalize().Mult(w.maxSpeed))
		}
	}
}

// TrackBall subjects a body to the speed clamp.
func (w *World) TrackBall(b *cp.Body) {
	for _, t := range w.balls {
		if t == b {
			return
		}
	}
	w.balls = append(w.balls, b)
}

// UntrackBall removes a body from the speed clamp.
func (w *World) UntrackBall(b *cp.Body) {
	for i, t := range w.balls {
		if t == b {
			w.balls = append(w.balls[:i], w.balls[i+1:]...)
			return
		}
	}
}

// MaxSpeed returns the ball speed limit.
func (w *World) MaxSpeed() float64 {
	return w.maxSpeed
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() cp.Vector {
	return w.space.Gravity()
}

// SetGravity changes gravity.
func (w *World) SetGravity(g cp.Vector) {
	w.space.SetGravity(g)
}

// AddCollisionHandler registers a begin-phase handler for a category pair.
func (w *World) AddCollisionHandler(a, b cp.CollisionType, fn BeginFunc) {
	h := w.space.NewCollisionHandler(a, b)
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		sa, sb := arb.Shapes()
		return fn(sa, sb)
	}
}

// AddSegment adds a static segment to the world.
func (w *World) AddSegment(a, b cp.Vector, radius float64, m Material) *cp.Shape {
	shape := cp.NewSegment(w.space.StaticBody, a, b, radius)
	shape.SetElasticity(m.Elasticity)
	shape.SetFriction(m.Friction)
	return w.space.AddShape(shape)
}

// PointQuery returns the nearest shape within maxDist of p, or nil.
func (w *World) PointQuery(p cp.Vector, maxDist float64) (*cp.Shape, float64) {
	info := w.space.PointQueryNearest(p, maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil, 0
	}
	return info.Shape, info.Distance
}

// BodyCount returns the number of non-static bodies in the world.
func (w *World) BodyCount() int {
	n := 0
	w.space.EachBody(func(b *cp.Body) {
		if b.GetType() == cp.BODY_DYNAMIC {
			n++
		}
	})
	return n
}
