package physics

import "github.com/jakecoffman/cp"

// Handle owns a body together with its shapes and constraints and removes
// them from the world as one unit.
type Handle struct {
	world       *World
	body        *cp.Body
	shapes      []*cp.Shape
	constraints []*cp.Constraint
	ownsBody    bool // false when the body is the space's static body
	live        bool
}

// Attach adds body, shapes and constraints to the world and returns their
// handle. Passing the space's static body attaches only the shapes.
func (w *World) Attach(body *cp.Body, shapes []*cp.Shape, constraints ...*cp.Constraint) *Handle {
	h := &Handle{
		world:    w,
		body:     body,
		ownsBody: body != w.space.StaticBody,
		live:     true,
	}
	if h.ownsBody {
		w.space.AddBody(body)
	}
	for _, s := range shapes {
		h.shapes = append(h.shapes, w.space.AddShape(s))
	}
	for _, c := range constraints {
		h.constraints = append(h.constraints, w.space.AddConstraint(c))
	}
	return h
}

// Live reports whether the handle is still in the world.
func (h *Handle) Live() bool {
	return h != nil && h.live
}

// Body returns the owned body.
func (h *Handle) Body() *cp.Body {
	return h.body
}

// Shape returns the first shape, or nil.
func (h *Handle) Shape() *cp.Shape {
	if len(h.shapes) == 0 {
		return nil
	}
	return h.shapes[0]
}

// Shapes returns all owned shapes.
func (h *Handle) Shapes() []*cp.Shape {
	return h.shapes
}

// Remove detaches constraints, shapes and the body. It is safe to call more
// than once. Must not be called from inside a collision callback.
func (h *Handle) Remove() {
	if !h.Live() {
		return
	}
	space := h.world.space
	for _, c := range h.constraints {
		if space.ContainsConstraint(c) {
			space.RemoveConstraint(c)
		}
	}
	for _, s := range h.shapes {
		if space.ContainsShape(s) {
			space.RemoveShape(s)
		}
	}
	if h.ownsBody && space.ContainsBody(h.body) {
		h.world.UntrackBall(h.body)
		space.RemoveBody(h.body)
	}
	h.live = false
}
