// Package inventory implements the card lifecycle: buying (add), selling,
// using and the countdown of applied cards. Effects run through a
// Dispatcher so every step can be rolled back.
package inventory

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/effects"
)

// Kind is the item type.
type Kind int

const (
	KindCard Kind = iota
	KindBuildable
	KindImmediate
	KindPack
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return config.ItemCard
	case KindBuildable:
		return config.ItemBuildable
	case KindImmediate:
		return config.ItemImmediate
	case KindPack:
		return config.ItemPack
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a catalog item type. An empty type is a card.
func ParseKind(s string) (Kind, error) {
	switch s {
	case config.ItemCard, "":
		return KindCard, nil
	case config.ItemBuildable:
		return KindBuildable, nil
	case config.ItemImmediate:
		return KindImmediate, nil
	case config.ItemPack:
		return KindPack, nil
	}
	return 0, fmt.Errorf("inventory: unknown item type %q", s)
}

// RarityNegative marks items whose price never drops after purchase.
const RarityNegative = "negative"

// Dispatcher applies and revokes bindings on behalf of an item. ApplyAll
// and RecallAll are atomic: on failure the bindings already handled are
// undone before they return false.
type Dispatcher interface {
	Call(b effects.Binding, it *Item) bool
	Recall(b effects.Binding, it *Item) bool
	ApplyAll(bs []effects.Binding, it *Item) bool
	RecallAll(bs []effects.Binding, it *Item) bool
}

// Item is a card, buildable, immediate or pack.
type Item struct {
	Name        string
	Description string
	Rarity      string
	Category    string
	Kind        Kind
	Price       int // sell price once owned
	BuyPrice    int
	Effects     []effects.Binding
	Functional  []effects.Functional
	Flags       map[string]float64
	Class       string
	Pack        config.PackSpec

	Active    bool
	Duration  float64   // total duration of the current use, Infinite if any binding is
	Remaining []float64 // per binding
}

// FromSpec creates an item from a catalog entry.
func FromSpec(spec config.ItemSpec) (*Item, error) {
	kind, err := ParseKind(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("inventory: item %q: %w", spec.Name, err)
	}
	return &Item{
		Name:        spec.Name,
		Description: spec.Description,
		Rarity:      spec.Rarity,
		Category:    spec.Category,
		Kind:        kind,
		Price:       spec.Price,
		BuyPrice:    spec.Price,
		Effects:     effects.CloneAll(spec.Effects),
		Functional:  slices.Clone(spec.Functional),
		Flags:       map[string]float64{},
		Class:       spec.Class,
		Pack:        spec.Pack,
	}, nil
}

// Clone returns an unused copy of the item with fresh flags.
func (it *Item) Clone() *Item {
	c := *it
	c.Effects = effects.CloneAll(it.Effects)
	c.Functional = slices.Clone(it.Functional)
	c.Flags = map[string]float64{}
	c.Active = false
	c.Duration = 0
	c.Remaining = nil
	return &c
}

// Usable reports whether the item has active bindings, so the player can
// use it.
func (it *Item) Usable() bool {
	for _, b := range it.Effects {
		if b.Usage == effects.UsageActive {
			return true
		}
	}
	return false
}

// Lasting reports whether any binding has a duration.
func (it *Item) Lasting() bool {
	for _, b := range it.Effects {
		if b.Duration != 0 {
			return true
		}
	}
	return false
}

// Bindings returns the bindings for a trigger and usage.
func (it *Item) Bindings(t effects.Trigger, u effects.Usage) []effects.Binding {
	var out []effects.Binding
	for _, b := range it.Effects {
		if b.Is(t, u) {
			out = append(out, b)
		}
	}
	return out
}

// LiveBindings returns the active bindings for a trigger that still have
// time left in the current use.
func (it *Item) LiveBindings(t effects.Trigger) []effects.Binding {
	if !it.Active {
		return nil
	}
	var out []effects.Binding
	for i, b := range it.Effects {
		if b.Is(t, effects.UsageActive) && i < len(it.Remaining) && it.Remaining[i] != 0 {
			out = append(out, b)
		}
	}
	return out
}

// Use runs the active use bindings. If one fails the ones already run are
// revoked and false is returned. On success the item becomes active with
// its duration set to the longest binding, or Infinite.
func (it *Item) Use(d Dispatcher) bool {
	if !d.ApplyAll(it.Bindings(effects.TriggerUse, effects.UsageActive), it) {
		return false
	}

	it.Active = true
	it.Duration = 0
	it.Remaining = make([]float64, len(it.Effects))
	for i, b := range it.Effects {
		it.Remaining[i] = b.Duration
		if it.Duration == effects.Infinite {
			continue
		}
		if b.Duration == effects.Infinite {
			it.Duration = effects.Infinite
			continue
		}
		it.Duration = max(it.Duration, b.Duration)
	}
	return true
}

// EndUse revokes the active use bindings.
func (it *Item) EndUse(d Dispatcher) bool {
	if !d.RecallAll(it.Bindings(effects.TriggerUse, effects.UsageActive), it) {
		panic(fmt.Sprintf("inventory: failed to revoke lasting effects of %q", it.Name))
	}
	it.Active = false
	return true
}

func (it *Item) group(negative bool) []effects.Binding {
	var out []effects.Binding
	for _, b := range it.Effects {
		if b.Negative == negative && b.Is(effects.TriggerUse, effects.UsagePassive) {
			out = append(out, b)
		}
	}
	return out
}

// Add applies the passive use bindings of one group: the drawbacks when
// negative is true, the benefits otherwise. A failure revokes the group's
// bindings already applied.
func (it *Item) Add(d Dispatcher, negative bool) bool {
	return d.ApplyAll(it.group(negative), it)
}

// Sell revokes the passive use bindings of one group. A failure re-applies
// the group's bindings already revoked.
func (it *Item) Sell(d Dispatcher, negative bool) bool {
	return d.RecallAll(it.group(negative), it)
}

// TimeLeft returns the longest remaining time among the active bindings,
// or Infinite.
func (it *Item) TimeLeft() float64 {
	left := 0.0
	for i, b := range it.Effects {
		if b.Usage != effects.UsageActive || i >= len(it.Remaining) {
			continue
		}
		if it.Remaining[i] == effects.Infinite {
			return effects.Infinite
		}
		left = max(left, it.Remaining[i])
	}
	return left
}

// SetDuration changes the duration of every binding running effect.
// The item's total duration grows to cover the new value.
func (it *Item) SetDuration(effect string, m effects.Mode, diff float64) {
	for i := range it.Effects {
		b := &it.Effects[i]
		if b.Effect != effect {
			continue
		}
		b.Duration = m.Apply(b.Duration, diff)
		if i < len(it.Remaining) {
			it.Remaining[i] = m.Apply(it.Remaining[i], diff)
		}
		if it.Duration != effects.Infinite {
			it.Duration = max(it.Duration, b.Duration)
		}
	}
}
