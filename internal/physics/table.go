package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// Table holds the static geometry of the playfield. Gate, Ramp and Shield
// are toggled between sensor and solid during play.
type Table struct {
	Gate   *cp.Shape
	Ramp   *cp.Shape
	Shield *cp.Shape
	Walls  []*cp.Shape
	Line   RampLine
	Layout config.Layout
}

func vec(p config.Point) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// BuildTable adds walls, curves, the launch lane and the reserved segments
// to the world.
func BuildTable(w *World, l config.Layout) (*Table, error) {
	if l.RightWallX <= l.LeftWallX || l.BottomWallY <= l.TopWallY {
		return nil, fmt.Errorf("physics: table bounds: %w", config.ErrInvalidLayout)
	}
	if l.RampWallX <= l.RightWallX {
		return nil, fmt.Errorf("physics: launch lane has no width: %w", config.ErrInvalidLayout)
	}

	r := l.WallRadius
	wall := Material{Elasticity: l.WallElasticity}
	t := &Table{Layout: l}

	segments := [][2]cp.Vector{
		{{X: l.LeftWallX, Y: l.ScreenHeight}, {X: l.LeftWallX, Y: l.TopWallY}},
		{{X: l.RightWallX, Y: l.ScreenHeight}, {X: l.RightWallX, Y: l.BottomOpeningBottom}},
		{{X: l.RightWallX, Y: l.BottomOpeningTop}, {X: l.RightWallX, Y: l.LaunchOpeningTop}},
		{{X: l.LeftWallX, Y: l.TopWallY}, {X: l.RampWallX, Y: l.TopWallY}},
		{vec(l.DividerStart), vec(l.DividerEnd)},
		{vec(l.ReclineLeftStart), vec(l.ReclineLeftEnd)},
		{vec(l.ReclineRightStart), vec(l.ReclineRightEnd)},
		{{X: l.RampWallX, Y: l.BottomWallY}, {X: l.RampWallX, Y: l.TopWallY}},
	}
	for _, s := range segments {
		t.Walls = append(t.Walls, w.AddSegment(s[0], s[1], r, wall))
	}

	curve := Material{}
	cl, cr := vec(l.CurveCenterLeft), vec(l.CurveCenterRight)
	n := float64(l.CurveSegments)
	for i := 0; i < l.CurveSegments; i++ {
		a1 := float64(i) / n * math.Pi / 2
		a2 := float64(i+1) / n * math.Pi / 2
		right := w.AddSegment(
			cp.Vector{X: cr.X + l.CurveRadius*math.Cos(a1), Y: cr.Y - l.CurveRadius*math.Sin(a1)},
			cp.Vector{X: cr.X + l.CurveRadius*math.Cos(a2), Y: cr.Y - l.CurveRadius*math.Sin(a2)},
			r, curve)
		left := w.AddSegment(
			cp.Vector{X: cl.X - l.CurveRadius*math.Cos(a1), Y: cl.Y - l.CurveRadius*math.Sin(a1)},
			cp.Vector{X: cl.X - l.CurveRadius*math.Cos(a2), Y: cl.Y - l.CurveRadius*math.Sin(a2)},
			r, curve)
		t.Walls = append(t.Walls, right, left)
	}

	bottom := w.AddSegment(
		cp.Vector{X: l.RampWallX, Y: l.BottomWallY},
		cp.Vector{X: l.RightWallX, Y: l.BottomWallY},
		r, Material{Elasticity: 0.1, Friction: 1})
	t.Walls = append(t.Walls, bottom)

	t.Gate = w.addReserved(vec(l.GateStart), vec(l.GateEnd), r, wall)
	t.Ramp = w.addReserved(vec(l.RampStart), vec(l.RampEnd), r, wall)
	t.Shield = w.addReserved(vec(l.ShieldStart), vec(l.ShieldEnd), r, Material{Elasticity: l.ShieldElasticity})
	t.Line = RampLine{A: vec(l.RampStart), B: vec(l.RampEnd)}
	return t, nil
}

func (w *World) addReserved(a, b cp.Vector, r float64, m Material) *cp.Shape {
	s := w.AddSegment(a, b, r, m)
	s.SetSensor(true)
	s.SetCollisionType(CategoryReserved)
	return s
}

// InLane reports whether p is right of the playfield wall.
func (t *Table) InLane(p cp.Vector) bool {
	return p.X > t.Layout.RightWallX
}

// UpdateValve toggles the gate and recline for the given ball positions and
// reports whether every ball has left the lane. The gate is a sensor while
// any ball is in the lane. The recline turns solid for a lane ball above
// the ramp line and back to a sensor for one below it.
func (t *Table) UpdateValve(balls []cp.Vector) (cleared bool) {
	inLane := false
	for _, p := range balls {
		if !t.InLane(p) {
			continue
		}
		inLane = true
		switch t.Line.Classify(p, t.Layout.RampMargin) {
		case Above:
			t.Ramp.SetSensor(false)
		case Below:
			t.Ramp.SetSensor(true)
		}
	}
	t.Gate.SetSensor(inLane)
	return !inLane
}

// ShieldUp reports whether the shield is solid.
func (t *Table) ShieldUp() bool {
	return !t.Shield.Sensor()
}

// SetShield makes the shield solid or lets balls pass.
func (t *Table) SetShield(up bool) {
	t.Shield.SetSensor(!up)
}
