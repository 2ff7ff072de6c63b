package config

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned when table geometry cannot be built.
var ErrInvalidLayout = errors.New("invalid table layout")

// Layout holds table coordinates derived from TableConfig and FlipperConfig.
type Layout struct {
	LeftWallX    float64
	RightWallX   float64
	TopWallY     float64
	BottomWallY  float64
	RampWallX    float64
	ScreenHeight float64

	LaunchOpeningTop    float64
	BottomOpeningTop    float64
	BottomOpeningBottom float64

	ReclineLeftStart, ReclineLeftEnd   Point
	ReclineRightStart, ReclineRightEnd Point

	CurveCenterLeft, CurveCenterRight Point
	CurveRadius                       float64
	CurveSegments                     int

	DividerStart, DividerEnd Point
	GateStart, GateEnd       Point
	RampStart, RampEnd       Point
	ShieldStart, ShieldEnd   Point

	BallStart     Point
	DrainY        float64
	LaunchAreaTop float64 // balls in the lane below this y can be launched

	WallRadius       float64
	WallElasticity   float64
	ShieldElasticity float64
	RampMargin       float64
}

// Layout derives the table coordinates. It returns ErrInvalidLayout when
// the configuration describes an impossible table.
func (c *PinballConfig) Layout() (Layout, error) {
	t := c.Table
	f := c.Flippers

	if t.FieldWidth <= 0 || t.FieldHeight <= 0 {
		return Layout{}, fmt.Errorf("config: field size %vx%v: %w", t.FieldWidth, t.FieldHeight, ErrInvalidLayout)
	}
	if t.LaunchRampWidth <= 0 {
		return Layout{}, fmt.Errorf("config: launch ramp width %v: %w", t.LaunchRampWidth, ErrInvalidLayout)
	}
	if t.CurveRadius < 0 || t.CurveRadius*2 > t.FieldWidth {
		return Layout{}, fmt.Errorf("config: curve radius %v: %w", t.CurveRadius, ErrInvalidLayout)
	}
	if f.Length <= 0 || f.Width <= 0 {
		return Layout{}, fmt.Errorf("config: flipper size %vx%v: %w", f.Length, f.Width, ErrInvalidLayout)
	}

	l := Layout{
		LeftWallX:        t.LeftWallX,
		RightWallX:       t.LeftWallX + t.FieldWidth,
		TopWallY:         t.TopWallY,
		BottomWallY:      t.TopWallY + t.FieldHeight,
		ScreenHeight:     t.ScreenHeight,
		CurveRadius:      t.CurveRadius,
		CurveSegments:    max(t.CurveSegments, 1),
		WallRadius:       t.WallRadius,
		WallElasticity:   t.WallElasticity,
		ShieldElasticity: t.ShieldElasticity,
		RampMargin:       t.RampMargin,
	}
	l.RampWallX = l.RightWallX + t.LaunchRampWidth
	l.LaunchOpeningTop = l.TopWallY + t.LaunchOpeningHeight
	l.BottomOpeningBottom = l.BottomWallY - t.BottomOpeningDistance
	l.BottomOpeningTop = l.BottomOpeningBottom - t.BottomOpeningHeight
	if l.BottomOpeningTop <= l.LaunchOpeningTop {
		return Layout{}, fmt.Errorf("config: bottom opening overlaps launch opening: %w", ErrInvalidLayout)
	}
	if l.ScreenHeight < l.BottomWallY {
		l.ScreenHeight = l.BottomWallY
	}

	l.ReclineLeftStart = Point{l.LeftWallX, l.BottomWallY - 50}
	l.ReclineLeftEnd = Point{f.LeftPos.X - f.Length/2 - 10, f.LeftPos.Y - f.Width/2}
	l.ReclineRightStart = Point{l.RightWallX, l.BottomWallY - 50}
	l.ReclineRightEnd = Point{f.RightPos.X + f.Length/2 + 10, f.RightPos.Y - f.Width/2}

	l.CurveCenterLeft = Point{l.LeftWallX + t.CurveRadius, l.TopWallY + t.CurveRadius}
	l.CurveCenterRight = Point{l.RampWallX - t.CurveRadius, l.TopWallY + t.CurveRadius}

	l.DividerStart = Point{t.DividerX, t.DividerY1}
	l.DividerEnd = Point{t.DividerX, t.DividerY2}
	l.GateStart = Point{l.RightWallX, l.TopWallY}
	l.GateEnd = Point{l.RightWallX, l.BottomOpeningBottom}
	l.RampStart = Point{l.RightWallX, l.BottomOpeningBottom}
	l.RampEnd = Point{l.RampWallX, l.BottomOpeningBottom - t.RampDrop}
	l.ShieldStart = Point{f.LeftPos.X, f.LeftPos.Y + t.ShieldOffset}
	l.ShieldEnd = Point{f.RightPos.X, f.RightPos.Y + t.ShieldOffset}

	l.BallStart = Point{(l.RightWallX + l.RampWallX) / 2, l.BottomWallY - 30}
	l.DrainY = l.ScreenHeight + c.Round.DrainMargin
	l.LaunchAreaTop = l.BottomWallY - c.Launch.AreaHeight
	return l, nil
}

// InField reports whether a point lies strictly inside the playfield walls.
func (l Layout) InField(p Point) bool {
	return p.X > l.LeftWallX && p.X < l.RightWallX && p.Y > l.TopWallY && p.Y < l.BottomWallY
}

// InLane reports whether a point lies in the launch lane.
func (l Layout) InLane(p Point) bool {
	return p.X > l.RightWallX
}
