package objects

import "github.com/jakecoffman/cp"

// ID identifies an object in an Arena. Zero is never allocated.
type ID uint64

// Arena owns the objects of one table in insertion order.
type Arena struct {
	next  ID
	objs  map[ID]*GameObject
	order []ID
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{objs: make(map[ID]*GameObject)}
}

func (a *Arena) add(o *GameObject) ID {
	a.next++
	o.ID = a.next
	a.objs[o.ID] = o
	a.order = append(a.order, o.ID)
	return o.ID
}

// Get returns the object with id.
func (a *Arena) Get(id ID) (*GameObject, bool) {
	o, ok := a.objs[id]
	return o, ok
}

// ByShape resolves the object owning a shape.
func (a *Arena) ByShape(s *cp.Shape) (*GameObject, bool) {
	if s == nil {
		return nil, false
	}
	id, ok := s.UserData.(ID)
	if !ok {
		return nil, false
	}
	return a.Get(id)
}

// Remove forgets the object. It does not touch the world.
func (a *Arena) Remove(id ID) {
	if _, ok := a.objs[id]; !ok {
		return
	}
	delete(a.objs, id)
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Each calls fn for every object in insertion order. fn may remove objects.
func (a *Arena) Each(fn func(*GameObject)) {
	ids := append([]ID(nil), a.order...)
	for _, id := range ids {
		if o, ok := a.objs[id]; ok {
			fn(o)
		}
	}
}

// Filter returns the objects for which keep returns true.
func (a *Arena) Filter(keep func(*GameObject) bool) []*GameObject {
	var out []*GameObject
	for _, id := range a.order {
		if o := a.objs[id]; keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// Len returns the number of objects.
func (a *Arena) Len() int {
	return len(a.order)
}
