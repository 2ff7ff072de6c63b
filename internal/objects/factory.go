package objects

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/physics"
	"github.com/vovakirdan/tui-pinball/internal/registry"
)

// Factory builds objects from configured classes.
type Factory struct {
	world         *physics.World
	arena         *Arena
	classes       *registry.Table[config.ObjectClass]
	flippers      config.FlipperConfig
	snapTolerance float64
}

// NewFactory registers the object classes of cfg.
func NewFactory(w *physics.World, a *Arena, cfg *config.PinballConfig) *Factory {
	f := &Factory{
		world:         w,
		arena:         a,
		classes:       registry.NewTable[config.ObjectClass]("object class"),
		flippers:      cfg.Flippers,
		snapTolerance: cfg.Physics.SnapTolerance,
	}
	for name, class := range cfg.Objects {
		f.classes.Register(name, class)
	}
	return f
}

// Class returns a registered class.
func (f *Factory) Class(name string) (config.ObjectClass, error) {
	return f.classes.Get(name)
}

// Classes lists registered class names.
func (f *Factory) Classes() []string {
	return f.classes.List()
}

func (f *Factory) newObject(className string) (*GameObject, error) {
	class, err := f.classes.Get(className)
	if err != nil {
		return nil, err
	}
	kind, err := ParseKind(class.Kind)
	if err != nil {
		return nil, fmt.Errorf("objects: class %q: %w", className, err)
	}
	o := &GameObject{
		Kind:          kind,
		Class:         className,
		Name:          class.Name,
		Texture:       class.Texture,
		Effects:       effects.CloneAll(class.Effects),
		Flags:         map[string]float64{},
		Radius:        class.Size,
		Mass:          class.Mass,
		Force:         class.Force,
		Friction:      class.Friction,
		BaseCooldown:  class.Cooldown,
		Cooldown:      class.Cooldown,
		snapTolerance: f.snapTolerance,
	}
	if o.Name == "" {
		o.Name = className
	}
	f.arena.add(o)
	return o, nil
}

// NewBall creates a ball wrapper that is not yet in the world.
func (f *Factory) NewBall(className string) (*GameObject, error) {
	o, err := f.newObject(className)
	if err != nil {
		return nil, err
	}
	if o.Kind != KindBall {
		f.arena.Remove(o.ID)
		return nil, fmt.Errorf("objects: class %q is a %s, not a ball", className, o.Kind)
	}
	return o, nil
}

// Spawn creates a static object or flipper at pos and adds it to the world.
func (f *Factory) Spawn(className string, pos cp.Vector, isLeft bool) (*GameObject, error) {
	o, err := f.newObject(className)
	if err != nil {
		return nil, err
	}
	o.pos = pos
	o.IsLeft = isLeft

	switch o.Kind {
	case KindBumper, KindPin:
		body := cp.NewStaticBody()
		body.SetPosition(pos)
		shape := cp.NewCircle(body, o.Radius, cp.Vector{})
		shape.SetElasticity(o.Force)
		shape.SetFriction(o.Friction)
		shape.SetCollisionType(physics.CategoryObject)
		shape.UserData = o.ID
		o.handle = f.world.Attach(body, []*cp.Shape{shape})
	case KindFlipper:
		spec := physics.FlipperSpecFor(f.flippers, pos, isLeft)
		if o.Mass > 0 {
			spec.Mass = o.Mass
		}
		if o.Force > 0 {
			spec.Elasticity = o.Force
		}
		if o.Friction > 0 {
			spec.Friction = o.Friction
		}
		o.flipper = physics.NewFlipper(f.world, spec)
		o.flipper.Shape().UserData = o.ID
		o.handle = o.flipper.Handle
		o.Radius = spec.Length / 2
	default:
		f.arena.Remove(o.ID)
		return nil, fmt.Errorf("objects: class %q: cannot place a %s", className, o.Kind)
	}
	return o, nil
}

// Activate (re)creates the ball body at pos. An existing body is removed
// first.
func (f *Factory) Activate(o *GameObject, pos cp.Vector) {
	o.Remove()
	body := cp.NewBody(o.Mass, cp.MomentForCircle(o.Mass, 0, o.Radius, cp.Vector{}))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, o.Radius, cp.Vector{})
	shape.SetElasticity(o.Force)
	shape.SetFriction(o.Friction)
	shape.SetCollisionType(physics.CategoryBall)
	shape.UserData = o.ID
	o.pos = pos
	o.handle = f.world.Attach(body, []*cp.Shape{shape})
	f.world.TrackBall(body)
}

// Convert turns a ball into another ball class in place, keeping its
// position and velocity when it is in the world.
func (f *Factory) Convert(o *GameObject, className string) error {
	class, err := f.classes.Get(className)
	if err != nil {
		return err
	}
	if class.Kind != KindBall.String() {
		return fmt.Errorf("objects: class %q is not a ball", className)
	}
	live := o.Live()
	pos, vel := o.Position(), o.Velocity()

	o.Class = className
	o.Name = class.Name
	o.Texture = class.Texture
	o.Effects = effects.CloneAll(class.Effects)
	o.Radius = class.Size
	o.Mass = class.Mass
	o.Force = class.Force
	o.Friction = class.Friction
	o.BaseCooldown = class.Cooldown
	o.Cooldown = class.Cooldown

	if live {
		f.Activate(o, pos)
		o.SetVelocity(vel)
	}
	return nil
}

// Clone creates a copy of a ball wrapper with fresh flags, not in the world.
func (f *Factory) Clone(o *GameObject) *GameObject {
	c := &GameObject{
		Kind:          o.Kind,
		Class:         o.Class,
		Name:          o.Name,
		Texture:       o.Texture,
		Effects:       effects.CloneAll(o.Effects),
		Flags:         map[string]float64{},
		Radius:        o.Radius,
		Mass:          o.Mass,
		Force:         o.Force,
		Friction:      o.Friction,
		BaseCooldown:  o.BaseCooldown,
		Cooldown:      o.BaseCooldown,
		snapTolerance: o.snapTolerance,
	}
	f.arena.add(c)
	return c
}

// Remove takes the object out of the world and keeps the wrapper.
func (o *GameObject) Remove() {
	if o.flipper != nil {
		o.flipper.Destroy()
		return
	}
	o.handle.Remove()
}

// Destroy removes the object from the world and the arena.
func (f *Factory) Destroy(o *GameObject) {
	o.Remove()
	f.arena.Remove(o.ID)
}
