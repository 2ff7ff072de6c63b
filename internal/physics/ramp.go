package physics

import "github.com/jakecoffman/cp"

// Side is the position of a point relative to the ramp line.
type Side int

const (
	On Side = iota
	Above
	Below
)

func (s Side) String() string {
	switch s {
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "on"
	}
}

// RampLine is the line between the two recline anchors. Screen y grows
// downward, so "above" means a smaller y.
type RampLine struct {
	A, B cp.Vector
}

// Y returns the line's y at x, linearly interpolated.
func (l RampLine) Y(x float64) float64 {
	dx := l.B.X - l.A.X
	if dx == 0 {
		return l.A.Y
	}
	return l.A.Y + (l.B.Y-l.A.Y)*(x-l.A.X)/dx
}

// Classify places p above or below the line when it is farther than margin
// from it, and On otherwise.
func (l RampLine) Classify(p cp.Vector, margin float64) Side {
	y := l.Y(p.X)
	switch {
	case p.Y < y-margin:
		return Above
	case p.Y > y+margin:
		return Below
	default:
		return On
	}
}
