package inventory

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// PlayerInventory holds the cards the player owns, in display order.
type PlayerInventory struct {
	Items   []*Item
	MaxSize int
	logger  *log.Logger
}

// NewPlayerInventory creates an empty inventory. A nil logger uses the
// default logger.
func NewPlayerInventory(maxSize int, logger *log.Logger) *PlayerInventory {
	if logger == nil {
		logger = log.Default()
	}
	return &PlayerInventory{
		MaxSize: maxSize,
		logger:  logger.WithPrefix("inventory"),
	}
}

// Len returns the number of items held.
func (p *PlayerInventory) Len() int {
	return len(p.Items)
}

// Full reports whether no more items fit.
func (p *PlayerInventory) Full() bool {
	return len(p.Items) >= p.MaxSize
}

// Index returns the position of it, or -1.
func (p *PlayerInventory) Index(it *Item) int {
	return slices.Index(p.Items, it)
}

// Find returns the first held item with the given name.
func (p *PlayerInventory) Find(name string) (*Item, bool) {
	for _, it := range p.Items {
		if it.Name == name {
			return it, true
		}
	}
	return nil, false
}

// AddItem applies the item's benefits, checks capacity, applies its
// drawbacks and stores it. Any failure leaves the game as it was. A bought
// item sells for half its price (at least 1) unless its rarity is negative.
func (p *PlayerInventory) AddItem(d Dispatcher, it *Item) bool {
	if !it.Add(d, false) {
		return false
	}
	if p.Full() {
		p.rollbackAdd(d, it)
		return false
	}
	if !it.Add(d, true) {
		p.logger.Warn("drawbacks failed, rolling back", "item", it.Name)
		p.rollbackAdd(d, it)
		return false
	}
	p.Items = append(p.Items, it)
	if it.Rarity != RarityNegative && it.Price > 1 {
		it.Price = max(it.Price/2, 1)
	}
	return true
}

func (p *PlayerInventory) rollbackAdd(d Dispatcher, it *Item) {
	if !it.Sell(d, false) {
		panic(fmt.Sprintf("inventory: failed to revoke benefits of %q", it.Name))
	}
}

// RemoveItem revokes the item's benefits and drawbacks and drops it. Any
// failure leaves the game as it was.
func (p *PlayerInventory) RemoveItem(d Dispatcher, it *Item) bool {
	idx := p.Index(it)
	if idx < 0 {
		return false
	}
	if !it.Sell(d, false) {
		return false
	}
	if !it.Sell(d, true) {
		p.logger.Warn("drawbacks could not be revoked, rolling back", "item", it.Name)
		if !it.Add(d, false) {
			panic(fmt.Sprintf("inventory: failed to reapply benefits of %q", it.Name))
		}
		return false
	}
	p.Items = slices.Delete(p.Items, idx, idx+1)
	return true
}

// Move swaps the item at i with the one at j.
func (p *PlayerInventory) Move(i, j int) {
	if i < 0 || j < 0 || i >= len(p.Items) || j >= len(p.Items) {
		return
	}
	p.Items[i], p.Items[j] = p.Items[j], p.Items[i]
}

// Names returns the item names in order.
func (p *PlayerInventory) Names() []string {
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Name
	}
	return names
}
