package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// FlipperSpec describes one flipper assembly. Angles are in radians.
type FlipperSpec struct {
	Pos          cp.Vector // center of the flipper box
	IsLeft       bool
	Length       float64
	Width        float64
	Mass         float64
	Stiffness    float64
	Damping      float64
	Elasticity   float64
	Friction     float64
	DefaultAngle float64
	ActiveAngle  float64
}

// Flipper is a box body pivoting around one top corner, held between its
// default and active angles by a rotary limit and driven by a damped
// rotary spring whose rest angle selects the target.
type Flipper struct {
	*Handle
	spring       *cp.DampedRotarySpring
	pivot        cp.Vector // world point
	anchor       cp.Vector // body-local point
	defaultAngle float64
	activeAngle  float64
	isLeft       bool
}

// NewFlipper builds the body, shape, pivot, limit and spring and adds them
// to the world.
func NewFlipper(w *World, s FlipperSpec) *Flipper {
	body := cp.NewBody(s.Mass, cp.MomentForBox(s.Mass, s.Length, s.Width))
	shape := cp.NewBox(body, s.Length, s.Width, 0)
	shape.SetElasticity(s.Elasticity)
	shape.SetFriction(s.Friction)
	shape.SetCollisionType(CategoryObject)

	f := &Flipper{
		defaultAngle: s.DefaultAngle,
		activeAngle:  s.ActiveAngle,
		isLeft:       s.IsLeft,
	}
	if s.IsLeft {
		f.pivot = cp.Vector{X: s.Pos.X - s.Length/2, Y: s.Pos.Y - s.Width/2}
		f.anchor = cp.Vector{X: -s.Length / 2, Y: -s.Width / 2}
	} else {
		f.pivot = cp.Vector{X: s.Pos.X + s.Length/2, Y: s.Pos.Y - s.Width/2}
		f.anchor = cp.Vector{X: s.Length / 2, Y: -s.Width / 2}
	}
	f.place(body, s.DefaultAngle)

	static := w.space.StaticBody
	pivot := cp.NewPivotJoint2(static, body, f.pivot, f.anchor)
	pivot.SetErrorBias(0)
	limit := cp.NewRotaryLimitJoint(static, body,
		math.Min(s.DefaultAngle, s.ActiveAngle), math.Max(s.DefaultAngle, s.ActiveAngle))
	spring := cp.NewDampedRotarySpring(body, static, s.DefaultAngle, s.Stiffness, s.Damping)
	f.spring = spring.Class.(*cp.DampedRotarySpring)

	f.Handle = w.Attach(body, []*cp.Shape{shape}, pivot, limit, spring)
	return f
}

// place sets the angle and moves the body so the anchor sits on the pivot.
func (f *Flipper) place(body *cp.Body, angle float64) {
	body.SetAngle(angle)
	body.SetPosition(f.pivot.Sub(f.anchor.Rotate(cp.ForAngle(angle))))
}

// SetActive selects the active or default angle as the spring target.
func (f *Flipper) SetActive(on bool) {
	if on {
		f.spring.RestAngle = f.activeAngle
	} else {
		f.spring.RestAngle = f.defaultAngle
	}
	f.body.Activate()
}

// IsActive reports whether the spring targets the active angle.
func (f *Flipper) IsActive() bool {
	return f.spring.RestAngle == f.activeAngle
}

// Target returns the angle the spring drives toward.
func (f *Flipper) Target() float64 {
	if f.IsActive() {
		return f.activeAngle
	}
	return f.defaultAngle
}

// Snap sets the angle to the target and stops rotation when the flipper is
// within tol radians of it. A zero tol snaps only on exact equality.
func (f *Flipper) Snap(tol float64) {
	if !f.Live() {
		return
	}
	target := f.Target()
	d := math.Abs(f.body.Angle() - target)
	if d < tol || d == 0 {
		f.place(f.body, target)
		f.body.SetAngularVelocity(0)
		f.body.SetVelocity(0, 0)
	}
}

// Angle returns the current body angle.
func (f *Flipper) Angle() float64 {
	return f.body.Angle()
}

// AngularVelocity returns the current angular velocity.
func (f *Flipper) AngularVelocity() float64 {
	return f.body.AngularVelocity()
}

// IsLeft reports which side the flipper pivots on.
func (f *Flipper) IsLeft() bool {
	return f.isLeft
}

// Pivot returns the world pivot point.
func (f *Flipper) Pivot() cp.Vector {
	return f.pivot
}

// Tip returns the world position of the free end's top corner.
func (f *Flipper) Tip() cp.Vector {
	return f.body.LocalToWorld(cp.Vector{X: -f.anchor.X, Y: f.anchor.Y})
}

// Destroy removes every part of the flipper. Idempotent.
func (f *Flipper) Destroy() {
	f.Remove()
}

// FlipperSpecFor builds a spec from the configured flipper settings.
// pos is the box center at rest; angles in the config are degrees.
func FlipperSpecFor(cfg config.FlipperConfig, pos cp.Vector, isLeft bool) FlipperSpec {
	s := FlipperSpec{
		Pos:        pos,
		IsLeft:     isLeft,
		Length:     cfg.Length,
		Width:      cfg.Width,
		Mass:       cfg.Mass,
		Stiffness:  cfg.Stiffness,
		Damping:    cfg.Damping,
		Elasticity: cfg.Elasticity,
		Friction:   cfg.Friction,
	}
	if isLeft {
		s.DefaultAngle = radians(cfg.LeftDefault)
		s.ActiveAngle = radians(cfg.LeftActive)
	} else {
		s.DefaultAngle = radians(cfg.RightDefault)
		s.ActiveAngle = radians(cfg.RightActive)
	}
	return s
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
