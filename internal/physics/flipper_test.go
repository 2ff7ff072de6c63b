package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

const flipperDt = 1.0 / 180

func newTestFlipper(t *testing.T, left bool) (*World, *Flipper) {
	t.Helper()
	cfg := config.DefaultPinballConfig()
	w := NewWorld(cfg.Physics)
	pos := cfg.Flippers.RightPos
	if left {
		pos = cfg.Flippers.LeftPos
	}
	f := NewFlipper(w, FlipperSpecFor(cfg.Flippers, cp.Vector{X: pos.X, Y: pos.Y}, left))
	return w, f
}

func run(w *World, f *Flipper, steps int) {
	for i := 0; i < steps; i++ {
		w.Step(flipperDt)
		f.Snap(0.1)
	}
}

func TestFlipperStartsAtDefault(t *testing.T) {
	_, f := newTestFlipper(t, true)
	if f.Angle() != radians(30) {
		t.Errorf("angle = %v, want %v", f.Angle(), radians(30))
	}
	if f.IsActive() {
		t.Error("new flipper is active")
	}
	if d := f.Body().LocalToWorld(f.anchor).Distance(f.Pivot()); d > 1e-9 {
		t.Errorf("anchor is %v away from the pivot", d)
	}
}

func TestFlipperSnapConvergence(t *testing.T) {
	for _, left := range []bool{true, false} {
		w, f := newTestFlipper(t, left)
		for cycle := 0; cycle < 4; cycle++ {
			f.SetActive(true)
			run(w, f, 120)
			if f.Angle() != f.activeAngle || f.AngularVelocity() != 0 {
				t.Fatalf("left=%v cycle %d: active angle %v ω %v, want %v ω 0",
					left, cycle, f.Angle(), f.AngularVelocity(), f.activeAngle)
			}

			f.SetActive(false)
			run(w, f, 120)
			if f.Angle() != f.defaultAngle || f.AngularVelocity() != 0 {
				t.Fatalf("left=%v cycle %d: default angle %v ω %v, want %v ω 0",
					left, cycle, f.Angle(), f.AngularVelocity(), f.defaultAngle)
			}
		}
	}
}

func TestFlipperSnapOutsideTolerance(t *testing.T) {
	_, f := newTestFlipper(t, true)
	f.SetActive(true)
	f.Snap(0.1)
	if f.Angle() != f.defaultAngle {
		t.Errorf("snapped across %v rad", math.Abs(f.activeAngle-f.defaultAngle))
	}
}

func TestFlipperDestroy(t *testing.T) {
	w, f := newTestFlipper(t, false)
	if w.BodyCount() != 1 {
		t.Fatalf("BodyCount = %d, want 1", w.BodyCount())
	}
	f.Destroy()
	f.Destroy()
	if w.BodyCount() != 0 {
		t.Errorf("BodyCount = %d after Destroy", w.BodyCount())
	}
	n := 0
	w.space.EachConstraint(func(*cp.Constraint) { n++ })
	if n != 0 {
		t.Errorf("%d constraints left", n)
	}
}
