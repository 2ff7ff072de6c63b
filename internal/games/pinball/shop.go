package pinball

import (
	"slices"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
)

// Pack opening modes.
const (
	PackOneOf = "oneof"
	PackAll   = "all"
)

// Shop holds the offers of the current visit. Bought slots become nil.
type Shop struct {
	Offers []*inventory.Item
}

// PackOpening is a pack being opened.
type PackOpening struct {
	Source *inventory.Item
	Items  []*inventory.Item
	Left   int // picks left
}

// Placing is a buildable waiting for a spot on the field.
type Placing struct {
	Item   *inventory.Item
	Cursor cp.Vector
	Err    error
}

// ChooseItems draws up to n catalog items of a category. A rarity is
// picked by weight among the rarities that still have allowed items, then
// an item of that rarity uniformly. With unique set an item is drawn at
// most once.
func (g *Game) ChooseItems(category string, n int, unique bool) []*inventory.Item {
	pools := map[string][]config.ItemSpec{}
	for _, spec := range g.cfg.ItemsIn(category) {
		if g.predicates.Allowed(g, spec.Functional) {
			pools[spec.Rarity] = append(pools[spec.Rarity], spec)
		}
	}
	weights := g.Rarities[category]
	rarities := make([]string, 0, len(weights))
	for r := range weights {
		rarities = append(rarities, r)
	}
	sort.Strings(rarities)

	var out []*inventory.Item
	for len(out) < n {
		total := 0.0
		for _, r := range rarities {
			if len(pools[r]) > 0 && weights[r] > 0 {
				total += weights[r]
			}
		}
		if total <= 0 {
			break
		}
		roll := g.rng.Float64() * total
		pick := ""
		for _, r := range rarities {
			if len(pools[r]) == 0 || weights[r] <= 0 {
				continue
			}
			pick = r
			if roll < weights[r] {
				break
			}
			roll -= weights[r]
		}

		pool := pools[pick]
		i := g.rng.Intn(len(pool))
		it, err := inventory.FromSpec(pool[i])
		if err != nil {
			g.logger.Warn("bad catalog item", "item", pool[i].Name, "error", err)
			pools[pick] = slices.Delete(pool, i, i+1)
			continue
		}
		out = append(out, it)
		if unique {
			pools[pick] = slices.Delete(pool, i, i+1)
		}
	}
	return out
}

// OpenShop starts a shop visit.
func (g *Game) OpenShop() {
	g.mode = ModeShop
	g.RerollCost = g.RerollStart
	g.fillShop()
	g.cursor = cursor{}
	g.fireCards(effects.TriggerShopCreate, nil)
}

func (g *Game) fillShop() {
	cats := make([]string, 0, len(g.cfg.Shop.Slots))
	for c := range g.cfg.Shop.Slots {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	g.Shop.Offers = g.Shop.Offers[:0]
	for _, c := range cats {
		g.Shop.Offers = append(g.Shop.Offers, g.ChooseItems(c, g.cfg.Shop.Slots[c], true)...)
	}
}

// Reroll replaces the offers for the current reroll cost, which then
// grows.
func (g *Game) Reroll() bool {
	if g.mode != ModeShop {
		return false
	}
	if g.Money < g.RerollCost {
		g.refuse("not enough money")
		return false
	}
	g.Money -= g.RerollCost
	g.RerollCost += g.cfg.Shop.RerollStep
	g.fillShop()
	g.fireCards(effects.TriggerReroll, nil)
	g.Sound.Play(SoundClick)
	return true
}

// Buy purchases offer i.
func (g *Game) Buy(i int) bool {
	if g.mode != ModeShop || i < 0 || i >= len(g.Shop.Offers) || g.Shop.Offers[i] == nil {
		return false
	}
	it := g.Shop.Offers[i]
	price := float64(it.Price)
	if g.Money < price {
		g.refuse("not enough money")
		return false
	}

	switch it.Kind {
	case inventory.KindCard, inventory.KindBuildable:
		if !g.Inventory.AddItem(g, it) {
			g.refuse("cannot take " + it.Name)
			return false
		}
	case inventory.KindImmediate:
		if !g.applyImmediate(it) {
			g.refuse("cannot apply " + it.Name)
			return false
		}
	case inventory.KindPack:
		g.openPack(it)
	}

	g.Money -= price
	g.Shop.Offers[i] = nil
	g.Sound.Play(SoundClick)
	return true
}

// applyImmediate applies both groups of an immediate item for good.
func (g *Game) applyImmediate(it *inventory.Item) bool {
	if !it.Add(g, false) {
		return false
	}
	if !it.Add(g, true) {
		if !it.Sell(g, false) {
			panic("pinball: failed to revoke immediate " + it.Name)
		}
		return false
	}
	return true
}

// SellItem sells inventory item i for its price.
func (g *Game) SellItem(i int) bool {
	if i < 0 || i >= g.Inventory.Len() {
		return false
	}
	it := g.Inventory.Items[i]
	if !g.Inventory.RemoveItem(g, it) {
		g.refuse("cannot sell " + it.Name)
		return false
	}
	g.Money += float64(it.Price)
	g.Sound.Play(SoundClick)
	return true
}

// UseItem uses inventory item i. Cards run their active effects; a card
// that fails goes back to its slot. Buildables start placement.
func (g *Game) UseItem(i int) bool {
	if i < 0 || i >= g.Inventory.Len() {
		return false
	}
	it := g.Inventory.Items[i]
	round := g.Round != nil && g.Round.State == RoundRunning && g.mode == ModeRound

	if it.Kind == inventory.KindBuildable {
		if g.mode != ModeShop {
			g.refuse("build between rounds")
			return false
		}
		g.placing = &Placing{Item: it, Cursor: g.placeStart()}
		g.mode = ModePlace
		return true
	}
	if !it.Usable() {
		g.refuse(it.Name + " is passive")
		return false
	}
	if it.Lasting() && !round {
		g.refuse("use " + it.Name + " during a round")
		return false
	}

	price := it.Price
	if !g.Inventory.RemoveItem(g, it) {
		g.refuse("cannot use " + it.Name)
		return false
	}
	if !it.Use(g) {
		g.giveBack(it, i, price)
		g.refuse("cannot use " + it.Name)
		return false
	}
	if it.Lasting() {
		g.Round.Applied.Add(it)
	}
	g.notify(it.Name + " used")
	return true
}

func (g *Game) placeStart() cp.Vector {
	l := g.Field.Layout()
	return cp.Vector{X: (l.LeftWallX + l.RightWallX) / 2, Y: (l.TopWallY + l.BottomWallY) / 2}
}

// MovePlacement moves the placement cursor, keeping it on the field.
func (g *Game) MovePlacement(d cp.Vector) {
	if g.placing == nil {
		return
	}
	l := g.Field.Layout()
	p := g.placing.Cursor.Add(d)
	p.X = min(max(p.X, l.LeftWallX), l.RightWallX)
	p.Y = min(max(p.Y, l.TopWallY), l.BottomWallY)
	g.placing.Cursor = p
	_, g.placing.Err = g.Field.CanPlace(g.placing.Item.Class, p)
}

// ConfirmPlacement builds the object under the cursor and consumes the
// item.
func (g *Game) ConfirmPlacement() bool {
	pl := g.placing
	if pl == nil {
		return false
	}
	if _, err := g.Field.CanPlace(pl.Item.Class, pl.Cursor); err != nil {
		pl.Err = err
		g.Sound.Play(SoundBuzz)
		return false
	}
	i, price := g.Inventory.Index(pl.Item), pl.Item.Price
	if !g.Inventory.RemoveItem(g, pl.Item) {
		g.refuse("cannot place " + pl.Item.Name)
		return false
	}
	if _, err := g.Field.Place(pl.Item.Class, pl.Cursor); err != nil {
		g.logger.Warn("placement failed", "item", pl.Item.Name, "error", err)
		if !g.giveBack(pl.Item, i, price) {
			g.CancelPlacement()
		}
		pl.Err = err
		return false
	}
	g.placing = nil
	g.mode = ModeShop
	g.Sound.Play(SoundClick)
	return true
}

// giveBack returns an item taken out for a use that failed to slot i at
// its old sell price. An item that no longer fits is lost and logged.
func (g *Game) giveBack(it *inventory.Item, i, price int) bool {
	if !g.Inventory.AddItem(g, it) {
		g.logger.Error("item lost after failed use", "item", it.Name)
		return false
	}
	g.Inventory.Move(g.Inventory.Index(it), i)
	it.Price = price
	return true
}

// CancelPlacement returns to the shop.
func (g *Game) CancelPlacement() {
	g.placing = nil
	g.mode = ModeShop
}

func (g *Game) openPack(it *inventory.Item) {
	spec := it.Pack
	items := g.ChooseItems(spec.Category, max(spec.Count, 1), true)
	left := spec.Take
	if spec.Mode == PackAll || left <= 0 {
		left = len(items)
	}
	g.Pack = &PackOpening{Source: it, Items: items, Left: left}
	g.mode = ModePack
	g.cursor.pack = 0
	if spec.Mode == PackAll {
		for i := range items {
			g.TakeFromPack(i)
		}
	}
}

// TakeFromPack moves pack item i to the inventory.
func (g *Game) TakeFromPack(i int) bool {
	p := g.Pack
	if p == nil || i < 0 || i >= len(p.Items) || p.Items[i] == nil || p.Left <= 0 {
		return false
	}
	it := p.Items[i]
	var ok bool
	if it.Kind == inventory.KindImmediate {
		ok = g.applyImmediate(it)
	} else {
		ok = g.Inventory.AddItem(g, it)
	}
	if !ok {
		g.refuse("cannot take " + it.Name)
		return false
	}
	p.Items[i] = nil
	p.Left--
	if p.Left == 0 {
		g.ClosePack()
	}
	return true
}

// ClosePack discards whatever was not taken.
func (g *Game) ClosePack() {
	g.Pack = nil
	if g.mode == ModePack {
		g.mode = ModeShop
	}
}
