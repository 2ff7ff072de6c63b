// Package objects holds the things on a pinball table: balls, bumpers, pins
// and flippers. Every object lives in an Arena and is found from a physics
// shape through the ID stored in the shape's UserData.
package objects

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Kind is the physical type of an object.
type Kind int

const (
	KindBall Kind = iota
	KindBumper
	KindPin
	KindFlipper
)

var kindNames = map[Kind]string{
	KindBall:    "ball",
	KindBumper:  "bumper",
	KindPin:     "pin",
	KindFlipper: "flipper",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a config kind name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("objects: unknown kind %q", s)
}

// Cooldown tuning.
const (
	// SensorThreshold is the cooldown time above which the object stops
	// colliding.
	SensorThreshold = 0.3
	// ActivationWindow is how often one activation is forgotten.
	ActivationWindow = 0.5
	// MaxActivations is the activation count that triggers the lockout.
	MaxActivations = 6
	// LockoutTime is the forced cooldown after too many activations.
	LockoutTime = 5.0
	// FlashTime is how long an object shows as bumped.
	FlashTime = 0.1
)

// GameObject is a ball, bumper, pin or flipper.
type GameObject struct {
	ID      ID
	Kind    Kind
	Class   string
	Name    string
	Texture string // empty means primitive rendering
	Effects []effects.Binding
	Flags   map[string]float64

	Radius   float64
	Mass     float64
	Force    float64 // elasticity
	Friction float64
	IsLeft   bool

	BaseCooldown  float64
	Cooldown      float64
	CooldownTimer float64
	Activations   int
	Bumped        float64

	activationClock float64
	snapTolerance   float64
	pos             cp.Vector
	handle          *physics.Handle
	flipper         *physics.Flipper
}

// Hit records a collision. fire reports whether the object's own collision
// bindings may run; cooled reports that a cooldown was started by this hit.
func (o *GameObject) Hit() (fire, cooled bool) {
	o.Activations++
	if o.Kind != KindBall {
		o.Bumped = FlashTime
	}
	if o.Activations > MaxActivations {
		// a runaway lockout is not a cooldown: cooldown bindings stay quiet
		o.Cooldown = LockoutTime
		o.CooldownTimer = LockoutTime
		return false, false
	}
	if o.CooldownTimer > 0 {
		return false, false
	}
	if o.Cooldown > 0 {
		o.CooldownTimer = o.Cooldown
		return true, true
	}
	return true, false
}

// Locked reports whether the object is in its no-collision window.
func (o *GameObject) Locked() bool {
	return o.CooldownTimer > SensorThreshold
}

// Update advances timers by dt.
func (o *GameObject) Update(dt float64) {
	if o.CooldownTimer > 0 {
		o.CooldownTimer -= dt
		if o.CooldownTimer <= 0 {
			o.CooldownTimer = 0
			o.Cooldown = o.BaseCooldown
		}
	}

	o.activationClock += dt
	if n := math.Floor(o.activationClock / ActivationWindow); n > 0 {
		o.Activations = max(0, o.Activations-int(n))
		o.activationClock -= n * ActivationWindow
	}

	if o.Kind != KindBall && o.Kind != KindFlipper && o.handle.Live() {
		if s := o.handle.Shape(); s != nil {
			s.SetSensor(o.Locked())
		}
	}

	if o.Bumped > 0 {
		o.Bumped = math.Max(0, o.Bumped-dt)
	}

	if o.flipper != nil {
		o.flipper.Snap(o.snapTolerance)
	}
}

// Live reports whether the object has a body in the world.
func (o *GameObject) Live() bool {
	return o.handle.Live()
}

// Shape returns the object's collision shape, or nil when not in the world.
func (o *GameObject) Shape() *cp.Shape {
	if !o.Live() {
		return nil
	}
	return o.handle.Shape()
}

// Body returns the object's body, or nil when not in the world.
func (o *GameObject) Body() *cp.Body {
	if !o.Live() {
		return nil
	}
	return o.handle.Body()
}

// Position returns the body position, or the last known one.
func (o *GameObject) Position() cp.Vector {
	if b := o.Body(); b != nil {
		return b.Position()
	}
	return o.pos
}

// Origin returns where the object was spawned or last activated.
func (o *GameObject) Origin() cp.Vector {
	return o.pos
}

// Velocity returns the body velocity.
func (o *GameObject) Velocity() cp.Vector {
	if b := o.Body(); b != nil {
		return b.Velocity()
	}
	return cp.Vector{}
}

// SetVelocity sets the body velocity when the object is in the world.
func (o *GameObject) SetVelocity(v cp.Vector) {
	if b := o.Body(); b != nil {
		b.SetVelocityVector(v)
	}
}

// SetForce changes the bounce of the object.
func (o *GameObject) SetForce(f float64) {
	o.Force = f
	if s := o.Shape(); s != nil {
		s.SetElasticity(f)
	}
}

// Flipper returns the flipper assembly, or nil for other kinds.
func (o *GameObject) Flipper() *physics.Flipper {
	return o.flipper
}

// Bindings returns the object's bindings for trigger.
func (o *GameObject) Bindings(t effects.Trigger) []effects.Binding {
	var out []effects.Binding
	for _, b := range o.Effects {
		if b.Trigger == t {
			out = append(out, b)
		}
	}
	return out
}

// Binding returns a pointer to the first binding running effect, so its
// params can be changed in place.
func (o *GameObject) Binding(effect string) *effects.Binding {
	for i := range o.Effects {
		if o.Effects[i].Effect == effect {
			return &o.Effects[i]
		}
	}
	return nil
}
