// Package core provides fundamental types and utilities for the pinball platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned area of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Bounds is an axis-aligned area in world (pixel) coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Viewport projects world coordinates onto a rectangle of screen cells.
// Terminal cells are roughly twice as tall as they are wide, so the
// projection keeps the world aspect ratio under that assumption.
type Viewport struct {
	World  Bounds
	Screen Rect
}

// CellAspect is the height/width ratio of a terminal cell.
const CellAspect = 2.0

// FitViewport returns the largest viewport inside area that shows the whole
// world without distortion, centered in the area.
func FitViewport(world Bounds, area Rect) Viewport {
	if area.W <= 0 || area.H <= 0 || world.Width() <= 0 || world.Height() <= 0 {
		return Viewport{World: world, Screen: Rect{X: area.X, Y: area.Y}}
	}
	// cells per world unit, horizontally
	sx := float64(area.W) / world.Width()
	sy := float64(area.H) * CellAspect / world.Height()
	s := math.Min(sx, sy)

	w := Clamp(int(world.Width()*s), 1, area.W)
	h := Clamp(int(world.Height()*s/CellAspect), 1, area.H)
	return Viewport{
		World:  world,
		Screen: NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h),
	}
}

// ToCell maps a world point to a screen cell.
// ok is false when the point falls outside the viewport.
func (v Viewport) ToCell(x, y float64) (cx, cy int, ok bool) {
	if v.Screen.W == 0 || v.Screen.H == 0 {
		return 0, 0, false
	}
	fx := (x - v.World.MinX) / v.World.Width()
	fy := (y - v.World.MinY) / v.World.Height()
	cx = v.Screen.X + int(math.Floor(fx*float64(v.Screen.W)))
	cy = v.Screen.Y + int(math.Floor(fy*float64(v.Screen.H)))
	return cx, cy, v.Screen.Contains(cx, cy)
}

// ToWorld maps the center of a screen cell back to world coordinates.
func (v Viewport) ToWorld(cx, cy int) (x, y float64) {
	if v.Screen.W == 0 || v.Screen.H == 0 {
		return v.World.MinX, v.World.MinY
	}
	fx := (float64(cx-v.Screen.X) + 0.5) / float64(v.Screen.W)
	fy := (float64(cy-v.Screen.Y) + 0.5) / float64(v.Screen.H)
	return v.World.MinX + fx*v.World.Width(), v.World.MinY + fy*v.World.Height()
}

// CellsX converts a world length to a number of horizontal cells.
func (v Viewport) CellsX(length float64) int {
	if v.World.Width() == 0 {
		return 0
	}
	return int(math.Round(length / v.World.Width() * float64(v.Screen.W)))
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
