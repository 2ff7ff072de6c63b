package objects

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

func newFactory(t *testing.T) (*physics.World, *Arena, *Factory) {
	t.Helper()
	cfg := config.Default()
	w := physics.NewWorld(cfg.Physics)
	a := NewArena()
	return w, a, NewFactory(w, a, &cfg)
}

func TestHitStartsCooldown(t *testing.T) {
	o := &GameObject{Kind: KindBumper, BaseCooldown: 1, Cooldown: 1}

	fire, cooled := o.Hit()
	if !fire || !cooled {
		t.Fatalf("first hit: fire=%v cooled=%v, want true true", fire, cooled)
	}
	if fire, _ := o.Hit(); fire {
		t.Error("hit during cooldown fired")
	}

	o.Update(1.0)
	if o.CooldownTimer != 0 {
		t.Errorf("CooldownTimer = %v, expected 0", o.CooldownTimer)
	}
	if fire, _ := o.Hit(); !fire {
		t.Error("hit after cooldown did not fire")
	}
}

func TestHitWithoutCooldownAlwaysFires(t *testing.T) {
	o := &GameObject{Kind: KindBumper}
	for i := 0; i < MaxActivations; i++ {
		fire, cooled := o.Hit()
		if !fire || cooled {
			t.Fatalf("hit %d: fire=%v cooled=%v", i, fire, cooled)
		}
	}
}

func TestLockoutAfterTooManyActivations(t *testing.T) {
	o := &GameObject{Kind: KindBumper, BaseCooldown: 0.2}
	for i := 0; i < MaxActivations; i++ {
		o.Hit()
		o.CooldownTimer = 0
	}
	if fire, cooled := o.Hit(); fire || cooled {
		t.Errorf("hit past the activation limit: fire=%v cooled=%v, expected neither", fire, cooled)
	}
	if o.Cooldown != LockoutTime || o.CooldownTimer != LockoutTime {
		t.Errorf("cooldown = %v/%v, expected %v", o.Cooldown, o.CooldownTimer, LockoutTime)
	}
	if !o.Locked() {
		t.Error("object should be locked")
	}

	o.Update(LockoutTime)
	if o.Cooldown != 0.2 {
		t.Errorf("Cooldown after lockout = %v, expected base 0.2", o.Cooldown)
	}
}

func TestActivationsDecay(t *testing.T) {
	o := &GameObject{Kind: KindPin}
	o.Hit()
	o.Hit()
	o.Hit()

	o.Update(0.4)
	if o.Activations != 3 {
		t.Errorf("Activations = %d before a full window, expected 3", o.Activations)
	}
	o.Update(0.6)
	if o.Activations != 1 {
		t.Errorf("Activations = %d after 1 s, expected 1", o.Activations)
	}
	o.Update(5)
	if o.Activations != 0 {
		t.Errorf("Activations = %d, expected 0", o.Activations)
	}
}

func TestSensorWhileCoolingDown(t *testing.T) {
	_, _, f := newFactory(t)
	o, err := f.Spawn("bumper_big", cp.Vector{X: 200, Y: 300}, false)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	o.CooldownTimer = 0.5
	o.Update(0.1)
	if !o.Shape().Sensor() {
		t.Error("shape should be a sensor above the threshold")
	}
	o.Update(0.2)
	if o.Shape().Sensor() {
		t.Error("shape should collide below the threshold")
	}
}

func TestBumpedFlash(t *testing.T) {
	o := &GameObject{Kind: KindBumper}
	o.Hit()
	if o.Bumped != FlashTime {
		t.Fatalf("Bumped = %v, expected %v", o.Bumped, FlashTime)
	}
	o.Update(0.05)
	if o.Bumped <= 0 {
		t.Error("flash ended early")
	}
	o.Update(0.1)
	if o.Bumped != 0 {
		t.Errorf("Bumped = %v, expected 0", o.Bumped)
	}
}

func TestBallActivateAndRemove(t *testing.T) {
	w, a, f := newFactory(t)
	ball, err := f.NewBall("ball_standard")
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	if ball.Live() {
		t.Fatal("new ball is already in the world")
	}

	f.Activate(ball, cp.Vector{X: 575, Y: 720})
	f.Activate(ball, cp.Vector{X: 575, Y: 700})
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount = %d after re-activation, expected 1", w.BodyCount())
	}
	if got := ball.Position(); got.Y != 700 {
		t.Errorf("position = %v, expected y 700", got)
	}

	ball.Remove()
	ball.Remove()
	if w.BodyCount() != 0 || ball.Live() {
		t.Error("ball still in the world after Remove")
	}
	if _, ok := a.Get(ball.ID); !ok {
		t.Error("Remove dropped the wrapper from the arena")
	}

	f.Destroy(ball)
	if _, ok := a.Get(ball.ID); ok {
		t.Error("Destroy kept the wrapper")
	}
}

func TestConvertKeepsMotion(t *testing.T) {
	_, _, f := newFactory(t)
	ball, err := f.NewBall("ball_standard")
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	f.Activate(ball, cp.Vector{X: 300, Y: 300})
	ball.SetVelocity(cp.Vector{X: 10, Y: -20})

	if err := f.Convert(ball, "ball_heavy"); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if ball.Class != "ball_heavy" {
		t.Errorf("Class = %q", ball.Class)
	}
	if v := ball.Velocity(); v.X != 10 || v.Y != -20 {
		t.Errorf("velocity = %v, expected (10, -20)", v)
	}
	if p := ball.Position(); p.X != 300 || p.Y != 300 {
		t.Errorf("position = %v", p)
	}
	if err := f.Convert(ball, "bumper_big"); err == nil {
		t.Error("converting into a bumper should fail")
	}
}

func TestArenaResolvesShapes(t *testing.T) {
	_, a, f := newFactory(t)
	bumper, err := f.Spawn("bumper_small", cp.Vector{X: 150, Y: 400}, false)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	flipper, err := f.Spawn("flipper_standard", cp.Vector{X: 220, Y: 750}, true)
	if err != nil {
		t.Fatalf("Spawn flipper: %v", err)
	}

	for _, o := range []*GameObject{bumper, flipper} {
		got, ok := a.ByShape(o.Shape())
		if !ok || got != o {
			t.Errorf("ByShape(%s) = %v, %v", o.Kind, got, ok)
		}
	}
	if _, ok := a.ByShape(nil); ok {
		t.Error("ByShape(nil) found an object")
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, expected 2", a.Len())
	}
}

func TestSpawnErrors(t *testing.T) {
	_, a, f := newFactory(t)
	if _, err := f.Spawn("nope", cp.Vector{}, false); err == nil {
		t.Error("unknown class should fail")
	}
	if _, err := f.Spawn("ball_standard", cp.Vector{}, false); err == nil {
		t.Error("placing a ball should fail")
	}
	if _, err := f.NewBall("pin"); err == nil {
		t.Error("NewBall with a pin class should fail")
	}
	if a.Len() != 0 {
		t.Errorf("failed spawns left %d objects", a.Len())
	}
}

func TestFlipperObjectRemove(t *testing.T) {
	w, _, f := newFactory(t)
	o, err := f.Spawn("flipper_power", cp.Vector{X: 380, Y: 750}, false)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if o.Flipper() == nil || o.Flipper().IsLeft() {
		t.Fatal("expected a right flipper")
	}
	o.Update(1.0 / 180)
	o.Remove()
	o.Remove()
	if w.BodyCount() != 0 {
		t.Errorf("BodyCount = %d, expected 0", w.BodyCount())
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseKind("spinner"); err == nil {
		t.Error("unknown kind should fail")
	}
}
