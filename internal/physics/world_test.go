package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

func newBall(w *World, pos cp.Vector) *Handle {
	body := cp.NewBody(1, cp.MomentForCircle(1, 0, 10, cp.Vector{}))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, 10, cp.Vector{})
	shape.SetCollisionType(CategoryBall)
	h := w.Attach(body, []*cp.Shape{shape})
	w.TrackBall(body)
	return h
}

func TestVelocityClamp(t *testing.T) {
	w := NewWorld(config.PhysicsConfig{MaxSpeed: 100})
	ball := newBall(w, cp.Vector{X: 0, Y: 0})
	ball.Body().SetVelocity(300, 400)

	w.Step(1.0 / 60)

	v := ball.Body().Velocity()
	if math.Abs(v.Length()-100) > 1e-9 {
		t.Errorf("speed after clamp = %v, want 100", v.Length())
	}
	if math.Abs(v.X/v.Y-0.75) > 1e-9 {
		t.Errorf("direction changed: %v", v)
	}
}

func TestVelocityBelowLimitUntouched(t *testing.T) {
	w := NewWorld(config.PhysicsConfig{MaxSpeed: 1000})
	ball := newBall(w, cp.Vector{})
	ball.Body().SetVelocity(30, 40)

	w.Step(1.0 / 60)

	if got := ball.Body().Velocity().Length(); math.Abs(got-50) > 1e-9 {
		t.Errorf("speed = %v, want 50", got)
	}
}

func TestHandleRemoveIdempotent(t *testing.T) {
	w := NewWorld(config.PhysicsConfig{})
	h := newBall(w, cp.Vector{})
	if w.BodyCount() != 1 {
		t.Fatalf("BodyCount = %d, want 1", w.BodyCount())
	}

	h.Remove()
	h.Remove()

	if w.BodyCount() != 0 {
		t.Errorf("BodyCount after remove = %d, want 0", w.BodyCount())
	}
	if h.Live() {
		t.Error("handle still live after Remove")
	}
	if w.space.ContainsShape(h.Shape()) {
		t.Error("shape still in space")
	}
}

func TestCollisionHandlerFires(t *testing.T) {
	w := NewWorld(config.PhysicsConfig{Gravity: config.Point{Y: 900}})
	newBall(w, cp.Vector{X: 100, Y: 80})
	floor := w.AddSegment(cp.Vector{X: 0, Y: 100}, cp.Vector{X: 200, Y: 100}, 5, Material{})
	floor.SetCollisionType(CategoryObject)

	hits := 0
	w.AddCollisionHandler(CategoryBall, CategoryObject, func(a, b *cp.Shape) bool {
		hits++
		if b != floor {
			t.Errorf("second shape is not the floor")
		}
		return true
	})
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 120)
	}
	if hits == 0 {
		t.Error("begin handler never fired")
	}
}

func TestPointQuery(t *testing.T) {
	w := NewWorld(config.PhysicsConfig{})
	seg := w.AddSegment(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 100, Y: 0}, 5, Material{})

	shape, dist := w.PointQuery(cp.Vector{X: 50, Y: 20}, 30)
	if shape != seg {
		t.Fatalf("PointQuery did not find the segment")
	}
	if math.Abs(dist-15) > 1e-9 {
		t.Errorf("distance = %v, want 15", dist)
	}
	if shape, _ := w.PointQuery(cp.Vector{X: 50, Y: 200}, 30); shape != nil {
		t.Error("PointQuery found a shape out of range")
	}
}

func TestRampLineClassify(t *testing.T) {
	line := RampLine{A: cp.Vector{X: 550, Y: 550}, B: cp.Vector{X: 600, Y: 520}}

	if got := line.Y(575); got != 535 {
		t.Fatalf("Y(575) = %v, want 535", got)
	}
	tests := []struct {
		p    cp.Vector
		want Side
	}{
		{cp.Vector{X: 575, Y: 530}, Above},
		{cp.Vector{X: 575, Y: 540}, Below},
		{cp.Vector{X: 575, Y: 536}, On},
		{cp.Vector{X: 600, Y: 400}, Above},
	}
	for _, tt := range tests {
		if got := line.Classify(tt.p, 2); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func defaultTable(t *testing.T) (*World, *Table) {
	t.Helper()
	cfg := config.DefaultPinballConfig()
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	w := NewWorld(cfg.Physics)
	table, err := BuildTable(w, layout)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	return w, table
}

func TestBuildTableReservedStartAsSensors(t *testing.T) {
	_, table := defaultTable(t)

	for name, s := range map[string]*cp.Shape{"gate": table.Gate, "ramp": table.Ramp, "shield": table.Shield} {
		if !s.Sensor() {
			t.Errorf("%s should start as a sensor", name)
		}
	}
	if table.ShieldUp() {
		t.Error("shield should start down")
	}
	// 8 walls, 2 curves of 10 segments, lane bottom
	if len(table.Walls) != 29 {
		t.Errorf("wall count = %d, want 29", len(table.Walls))
	}
}

func TestBuildTableRejectsEmptyLane(t *testing.T) {
	cfg := config.DefaultPinballConfig()
	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	layout.RampWallX = layout.RightWallX

	_, err = BuildTable(NewWorld(cfg.Physics), layout)
	if !errors.Is(err, config.ErrInvalidLayout) {
		t.Errorf("err = %v, want ErrInvalidLayout", err)
	}
}

func TestValveOneWay(t *testing.T) {
	_, table := defaultTable(t)

	// ball resting at the bottom of the lane
	if table.UpdateValve([]cp.Vector{{X: 575, Y: 720}}) {
		t.Error("lane ball reported as cleared")
	}
	if !table.Gate.Sensor() || !table.Ramp.Sensor() {
		t.Error("gate and recline should let a launched ball through")
	}

	// ball above the recline on its way up
	table.UpdateValve([]cp.Vector{{X: 575, Y: 300}})
	if table.Ramp.Sensor() {
		t.Error("recline should catch a ball above the line")
	}
	if !table.Gate.Sensor() {
		t.Error("gate should stay open while the ball is in the lane")
	}

	// ball entered the field
	if !table.UpdateValve([]cp.Vector{{X: 300, Y: 100}}) {
		t.Error("field ball should clear the lane")
	}
	if table.Gate.Sensor() {
		t.Error("gate should close once every ball left the lane")
	}

	// one ball in the lane keeps the gate open for both
	if table.UpdateValve([]cp.Vector{{X: 300, Y: 100}, {X: 575, Y: 720}}) {
		t.Error("cleared with a ball still in the lane")
	}
	if !table.Gate.Sensor() {
		t.Error("gate closed with a ball in the lane")
	}
}

func TestShieldToggle(t *testing.T) {
	_, table := defaultTable(t)
	table.SetShield(true)
	if !table.ShieldUp() || table.Shield.Sensor() {
		t.Error("shield should be solid")
	}
	table.SetShield(false)
	if table.ShieldUp() {
		t.Error("shield should be down")
	}
}
