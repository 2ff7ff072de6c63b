package pinball

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/objects"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Placement errors.
var (
	ErrOutOfField    = errors.New("pinball: position is outside the field")
	ErrBlocked       = errors.New("pinball: position is too close to another object")
	ErrNoFlipperSlot = errors.New("pinball: no flipper close enough to replace")
	ErrNotRemovable  = errors.New("pinball: object cannot be removed")
)

// placeClearance is added to an object's size when checking for room.
const placeClearance = 30.0

// Field is the table with everything built on it. It outlives rounds:
// placed objects and the ball collection carry over.
type Field struct {
	World   *physics.World
	Table   *physics.Table
	Arena   *objects.Arena
	Factory *objects.Factory

	// Balls is the player's ball collection. Rounds queue these in order.
	Balls []*objects.GameObject

	// OnHit receives ball/object contacts from the world.
	OnHit func(ball, obj *objects.GameObject)

	layout   config.Layout
	flippers config.FlipperConfig
}

// NewField builds the table, the configured board and the starting balls.
func NewField(cfg *config.PinballConfig) (*Field, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	w := physics.NewWorld(cfg.Physics)
	table, err := physics.BuildTable(w, layout)
	if err != nil {
		return nil, err
	}
	arena := objects.NewArena()
	f := &Field{
		World:    w,
		Table:    table,
		Arena:    arena,
		Factory:  objects.NewFactory(w, arena, cfg),
		layout:   layout,
		flippers: cfg.Flippers,
	}
	f.registerHandlers()

	for _, p := range cfg.Board {
		if _, err := f.Factory.Spawn(p.Class, vec(p.Pos), p.IsLeft); err != nil {
			return nil, fmt.Errorf("pinball: board: %w", err)
		}
	}
	for range cfg.Round.Balls {
		if _, err := f.AddBall(cfg.Round.BallClass); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func vec(p config.Point) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func (f *Field) registerHandlers() {
	f.World.AddCollisionHandler(physics.CategoryBall, physics.CategoryObject, func(a, b *cp.Shape) bool {
		ball, ok := f.Arena.ByShape(a)
		if !ok {
			return true
		}
		obj, ok := f.Arena.ByShape(b)
		if !ok {
			return true
		}
		if f.OnHit != nil {
			f.OnHit(ball, obj)
		}
		return true
	})
	// Balls bounce off each other and off the shield without scoring.
	f.World.AddCollisionHandler(physics.CategoryBall, physics.CategoryBall, func(_, _ *cp.Shape) bool { return true })
	f.World.AddCollisionHandler(physics.CategoryBall, physics.CategoryReserved, func(_, _ *cp.Shape) bool { return true })
}

// Layout returns the table coordinates.
func (f *Field) Layout() config.Layout {
	return f.layout
}

// AddBall appends a ball of className to the collection.
func (f *Field) AddBall(className string) (*objects.GameObject, error) {
	b, err := f.Factory.NewBall(className)
	if err != nil {
		return nil, err
	}
	f.Balls = append(f.Balls, b)
	return b, nil
}

// Owned reports whether b belongs to the collection.
func (f *Field) Owned(b *objects.GameObject) bool {
	return slices.Contains(f.Balls, b)
}

// DropBall removes b from the collection and destroys it.
func (f *Field) DropBall(b *objects.GameObject) {
	if i := slices.Index(f.Balls, b); i >= 0 {
		f.Balls = slices.Delete(f.Balls, i, i+1)
	}
	f.Factory.Destroy(b)
}

// BallNames returns the class of every collected ball, in order.
func (f *Field) BallNames() []string {
	out := make([]string, len(f.Balls))
	for i, b := range f.Balls {
		out[i] = b.Class
	}
	return out
}

// SetBalls replaces the collection with balls of the given classes.
func (f *Field) SetBalls(classes []string) error {
	for _, b := range f.Balls {
		f.Factory.Destroy(b)
	}
	f.Balls = nil
	for _, c := range classes {
		if _, err := f.AddBall(c); err != nil {
			return err
		}
	}
	return nil
}

// Objects returns the placed objects in creation order.
func (f *Field) Objects() []*objects.GameObject {
	return f.Arena.Filter(func(o *objects.GameObject) bool {
		return o.Kind != objects.KindBall
	})
}

// Has reports whether o is still on the field.
func (f *Field) Has(o *objects.GameObject) bool {
	got, ok := f.Arena.Get(o.ID)
	return ok && got == o
}

// Flippers returns the flippers on one side.
func (f *Field) Flippers(left bool) []*objects.GameObject {
	return f.Arena.Filter(func(o *objects.GameObject) bool {
		return o.Kind == objects.KindFlipper && o.IsLeft == left
	})
}

// SetFlippers drives every flipper on a side.
func (f *Field) SetFlippers(left, on bool) {
	for _, o := range f.Flippers(left) {
		o.Flipper().SetActive(on)
	}
}

// Board describes the placed objects so they can be rebuilt.
func (f *Field) Board() []config.Placement {
	objs := f.Objects()
	out := make([]config.Placement, 0, len(objs))
	for _, o := range objs {
		p := o.Origin()
		out = append(out, config.Placement{Class: o.Class, Pos: config.Point{X: p.X, Y: p.Y}, IsLeft: o.IsLeft})
	}
	return out
}

// SetBoard replaces the placed objects.
func (f *Field) SetBoard(board []config.Placement) error {
	for _, o := range f.Objects() {
		f.Factory.Destroy(o)
	}
	for _, p := range board {
		if _, err := f.Factory.Spawn(p.Class, vec(p.Pos), p.IsLeft); err != nil {
			return fmt.Errorf("pinball: board: %w", err)
		}
	}
	return nil
}

// CanPlace checks whether an object of className fits at pos. For flippers
// it returns the flipper that would be replaced.
func (f *Field) CanPlace(className string, pos cp.Vector) (*objects.GameObject, error) {
	class, err := f.Factory.Class(className)
	if err != nil {
		return nil, err
	}
	if !f.layout.InField(config.Point{X: pos.X, Y: pos.Y}) {
		return nil, ErrOutOfField
	}

	if class.Kind == objects.KindFlipper.String() {
		var best *objects.GameObject
		bestDist := f.flippers.SnapRadius
		for _, o := range f.Arena.Filter(func(o *objects.GameObject) bool { return o.Kind == objects.KindFlipper }) {
			if d := o.Origin().Distance(pos); d <= bestDist {
				best, bestDist = o, d
			}
		}
		if best == nil {
			return nil, ErrNoFlipperSlot
		}
		return best, nil
	}

	if s, _ := f.World.PointQuery(pos, placeClearance+class.Size); s != nil {
		return nil, ErrBlocked
	}
	return nil, nil
}

// Place puts an object of className at pos. A flipper replaces the nearest
// flipper and takes over its position and side.
func (f *Field) Place(className string, pos cp.Vector) (*objects.GameObject, error) {
	old, err := f.CanPlace(className, pos)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return f.Factory.Spawn(className, pos, false)
	}
	origin, isLeft := old.Origin(), old.IsLeft
	f.Factory.Destroy(old)
	return f.Factory.Spawn(className, origin, isLeft)
}

// Delete removes a placed object. Flippers stay: the table needs them.
func (f *Field) Delete(o *objects.GameObject) error {
	if o.Kind == objects.KindFlipper || o.Kind == objects.KindBall {
		return ErrNotRemovable
	}
	f.Factory.Destroy(o)
	return nil
}

// ObjectAt returns the placed object under pos.
func (f *Field) ObjectAt(pos cp.Vector) (*objects.GameObject, bool) {
	s, _ := f.World.PointQuery(pos, 0)
	if s == nil {
		return nil, false
	}
	o, ok := f.Arena.ByShape(s)
	if !ok || o.Kind == objects.KindBall {
		return nil, false
	}
	return o, true
}
