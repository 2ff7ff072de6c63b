package inventory

import (
	"slices"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

// Applied holds the cards in use during a round.
type Applied struct {
	Items []*Item
}

// Add puts an active item on the list.
func (a *Applied) Add(it *Item) {
	a.Items = append(a.Items, it)
}

// Remove drops it from the list.
func (a *Applied) Remove(it *Item) bool {
	idx := slices.Index(a.Items, it)
	if idx < 0 {
		return false
	}
	a.Items = slices.Delete(a.Items, idx, idx+1)
	return true
}

// Len returns the number of applied items.
func (a *Applied) Len() int {
	return len(a.Items)
}

// Tick counts down the active bindings of every item by dt. Infinite
// bindings never run out. Items whose bindings have all reached zero are
// removed and returned; the caller revokes them.
func (a *Applied) Tick(dt float64) []*Item {
	var expired []*Item
	kept := a.Items[:0]
	for _, it := range a.Items {
		if tick(it, dt) {
			expired = append(expired, it)
			continue
		}
		kept = append(kept, it)
	}
	clear(a.Items[len(kept):])
	a.Items = kept
	return expired
}

func tick(it *Item, dt float64) (done bool) {
	done = true
	for i, b := range it.Effects {
		if b.Usage != effects.UsageActive || i >= len(it.Remaining) {
			continue
		}
		r := it.Remaining[i]
		if r == effects.Infinite {
			done = false
			continue
		}
		if r > 0 {
			r = max(0, r-dt)
			it.Remaining[i] = r
		}
		if r > 0 {
			done = false
		}
	}
	return done
}

// Drain empties the list and returns what it held.
func (a *Applied) Drain() []*Item {
	items := a.Items
	a.Items = nil
	return items
}
