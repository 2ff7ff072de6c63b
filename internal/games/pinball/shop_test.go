package pinball

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
)

func TestChooseItemsUnique(t *testing.T) {
	g := newTestGame(t)
	packs := g.cfg.ItemsIn("packs")

	got := g.ChooseItems("packs", 10, true)
	if len(got) != len(packs) {
		t.Fatalf("ChooseItems returned %d items, expected %d", len(got), len(packs))
	}
	seen := map[string]bool{}
	for _, it := range got {
		if seen[it.Name] {
			t.Errorf("%q drawn twice", it.Name)
		}
		seen[it.Name] = true
	}
}

func TestChooseItemsRespectsPredicates(t *testing.T) {
	g := newTestGame(t)
	cards := g.cfg.ItemsIn("cards")

	got := g.ChooseItems("cards", 100, true)
	if len(got) != len(cards)-1 {
		t.Errorf("ChooseItems returned %d cards, expected %d", len(got), len(cards)-1)
	}
	for _, it := range got {
		if it.Name == "Scrap Dealer" {
			t.Error("Scrap Dealer offered before anything broke")
		}
	}

	g.Flags["broken"] = 1
	got = g.ChooseItems("cards", 100, true)
	if len(got) != len(cards) {
		t.Errorf("ChooseItems returned %d cards, expected %d", len(got), len(cards))
	}
}

func TestChooseItemsDeterministic(t *testing.T) {
	names := func() []string {
		g := newTestGame(t)
		var out []string
		for _, it := range g.ChooseItems("cards", 5, false) {
			out = append(out, it.Name)
		}
		return out
	}
	a, b := names(), names()
	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("draws = %d/%d, expected 5/5", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("draw %d = %q/%q, expected equal", i, a[i], b[i])
		}
	}
}

func TestBuyAndSellCard(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Shop.Offers = []*inventory.Item{item(t, g, "Coupon")}
	g.Money = 100

	if !g.Buy(0) {
		t.Fatal("Buy(0) failed")
	}
	if g.Money != 60 {
		t.Errorf("Money = %v, expected 60", g.Money)
	}
	if g.Shop.Offers[0] != nil {
		t.Error("bought offer should be cleared")
	}
	if g.RerollStart != 4 || g.RerollCost != 4 {
		t.Errorf("reroll start/cost = %v/%v, expected 4/4", g.RerollStart, g.RerollCost)
	}
	if g.Buy(0) {
		t.Error("Buy of a sold slot should fail")
	}

	if !g.SellItem(0) {
		t.Fatal("SellItem(0) failed")
	}
	// sells for half the price
	if g.Money != 80 {
		t.Errorf("Money = %v, expected 80", g.Money)
	}
	if g.RerollStart != 5 || g.RerollCost != 5 {
		t.Errorf("reroll start/cost = %v/%v, expected 5/5", g.RerollStart, g.RerollCost)
	}
	if g.Inventory.Len() != 0 {
		t.Errorf("inventory = %d, expected 0", g.Inventory.Len())
	}
}

func TestBuyWithoutMoney(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Shop.Offers = []*inventory.Item{item(t, g, "Echo")}
	g.Money = 10

	if g.Buy(0) {
		t.Error("Buy should fail without money")
	}
	if g.Money != 10 || g.Inventory.Len() != 0 {
		t.Errorf("money/inventory = %v/%d, expected 10/0", g.Money, g.Inventory.Len())
	}
	if len(g.Notices()) == 0 {
		t.Error("refusal should leave a notice")
	}
}

func TestBuyImmediate(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Shop.Offers = []*inventory.Item{item(t, g, "+Ball")}
	g.Money = 50

	if !g.Buy(0) {
		t.Fatal("Buy(+Ball) failed")
	}
	if len(g.Field.Balls) != 4 {
		t.Errorf("balls = %d, expected 4", len(g.Field.Balls))
	}
	if g.Inventory.Len() != 0 {
		t.Errorf("inventory = %d, expected 0", g.Inventory.Len())
	}
}

func TestReroll(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Money = 10

	if !g.Reroll() {
		t.Fatal("Reroll() failed")
	}
	if g.Money != 5 || g.RerollCost != 6 {
		t.Errorf("money/cost = %v/%v, expected 5/6", g.Money, g.RerollCost)
	}
	if g.Reroll() {
		t.Error("Reroll() should fail when the cost exceeds the money")
	}

	// the cost starts over on the next visit
	g.OpenShop()
	if g.RerollCost != 5 {
		t.Errorf("RerollCost = %v, expected 5", g.RerollCost)
	}
}

func TestPackOneOf(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Shop.Offers = []*inventory.Item{item(t, g, "Card Pack")}
	g.Money = 1000

	if !g.Buy(0) {
		t.Fatal("Buy(Card Pack) failed")
	}
	if g.Mode() != ModePack {
		t.Fatalf("Mode() = %v, expected %v", g.Mode(), ModePack)
	}
	if len(g.Pack.Items) != 4 || g.Pack.Left != 1 {
		t.Errorf("pack items/left = %d/%d, expected 4/1", len(g.Pack.Items), g.Pack.Left)
	}

	if !g.TakeFromPack(0) {
		t.Fatal("TakeFromPack(0) failed")
	}
	if g.Mode() != ModeShop || g.Pack != nil {
		t.Errorf("Mode() = %v, expected the pack closed", g.Mode())
	}
	if g.Inventory.Len() != 1 {
		t.Errorf("inventory = %d, expected 1", g.Inventory.Len())
	}
}

func TestPackAll(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Shop.Offers = []*inventory.Item{item(t, g, "Big Object Pack")}
	g.Money = 1000

	if !g.Buy(0) {
		t.Fatal("Buy(Big Object Pack) failed")
	}
	if g.Mode() != ModeShop {
		t.Errorf("Mode() = %v, expected %v", g.Mode(), ModeShop)
	}
	if g.Inventory.Len() != 3 {
		t.Errorf("inventory = %d, expected 3", g.Inventory.Len())
	}
}

func TestPlaceBuildable(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	if !g.Inventory.AddItem(g, item(t, g, "Small Bumper")) {
		t.Fatal("AddItem(Small Bumper) failed")
	}
	before := len(g.Field.Objects())

	if !g.UseItem(0) {
		t.Fatal("UseItem(Small Bumper) failed")
	}
	if g.Mode() != ModePlace {
		t.Fatalf("Mode() = %v, expected %v", g.Mode(), ModePlace)
	}
	cursor := g.placing.Cursor
	if !g.ConfirmPlacement() {
		t.Fatalf("ConfirmPlacement failed: %v", g.placing.Err)
	}
	if len(g.Field.Objects()) != before+1 {
		t.Errorf("objects = %d, expected %d", len(g.Field.Objects()), before+1)
	}
	if g.Inventory.Len() != 0 || g.Mode() != ModeShop {
		t.Errorf("inventory/mode = %d/%v, expected 0/shop", g.Inventory.Len(), g.Mode())
	}

	if _, err := g.Field.CanPlace("bumper_small", cursor); !errors.Is(err, ErrBlocked) {
		t.Errorf("CanPlace on the new bumper = %v, expected ErrBlocked", err)
	}
}

func TestPlaceCancel(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Inventory.AddItem(g, item(t, g, "Pin"))

	g.UseItem(0)
	g.Step(press(core.ActionBack))
	if g.Mode() != ModeShop {
		t.Errorf("Mode() = %v, expected %v", g.Mode(), ModeShop)
	}
	if g.Inventory.Len() != 1 {
		t.Errorf("inventory = %d, expected the item kept", g.Inventory.Len())
	}
}

func TestCanPlace(t *testing.T) {
	g := newTestGame(t)
	f := g.Field

	tests := []struct {
		name     string
		class    string
		pos      cp.Vector
		expected error
	}{
		{"outside", "pin", cp.Vector{X: 10, Y: 10}, ErrOutOfField},
		{"lane", "pin", cp.Vector{X: 575, Y: 400}, ErrOutOfField},
		{"on bumper", "pin", cp.Vector{X: 200, Y: 300}, ErrBlocked},
		{"free", "pin", cp.Vector{X: 120, Y: 550}, nil},
		{"no flipper slot", "flipper_power", cp.Vector{X: 120, Y: 550}, ErrNoFlipperSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.CanPlace(tt.class, tt.pos); !errors.Is(err, tt.expected) {
				t.Errorf("CanPlace(%s, %v) = %v, expected %v", tt.class, tt.pos, err, tt.expected)
			}
		})
	}
}

func TestFlipperPlacementReplaces(t *testing.T) {
	g := newTestGame(t)
	f := g.Field

	o, err := f.Place("flipper_power", cp.Vector{X: 230, Y: 740})
	if err != nil {
		t.Fatalf("Place(flipper_power): %v", err)
	}
	left := f.Flippers(true)
	if len(left) != 1 || left[0] != o {
		t.Fatalf("left flippers = %d, expected the new one only", len(left))
	}
	if o.Origin() != (cp.Vector{X: 220, Y: 750}) {
		t.Errorf("Origin() = %v, expected the old flipper's", o.Origin())
	}
	if len(f.Flippers(false)) != 1 {
		t.Errorf("right flippers = %d, expected 1", len(f.Flippers(false)))
	}
}

func TestUseLastingCardOutsideRound(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	g.Inventory.AddItem(g, item(t, g, "Shield"))

	if g.UseItem(0) {
		t.Error("Shield should only be usable during a round")
	}
	if g.Inventory.Len() != 1 {
		t.Errorf("inventory = %d, expected 1", g.Inventory.Len())
	}
}

func TestFailedUseKeepsCard(t *testing.T) {
	g := newTestGame(t)
	g.Inventory.AddItem(g, item(t, g, "Coupon"))
	g.Inventory.AddItem(g, item(t, g, "Splitter"))
	price := g.Inventory.Items[1].Price

	// nothing launched yet, nothing to split
	if g.UseItem(1) {
		t.Fatal("Splitter should fail before launch")
	}
	if g.Inventory.Len() != 2 || g.Inventory.Items[1].Name != "Splitter" {
		t.Errorf("inventory = %v, expected Splitter back in place", g.Inventory.Names())
	}
	if g.Inventory.Items[1].Price != price {
		t.Errorf("Price = %d, expected %d", g.Inventory.Items[1].Price, price)
	}
}

func TestGiveBackRestoresSlotAndPrice(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	for _, name := range []string{"Small Bumper", "Big Bumper"} {
		if !g.Inventory.AddItem(g, item(t, g, name)) {
			t.Fatalf("AddItem(%s) failed", name)
		}
	}
	it := g.Inventory.Items[0]
	price := it.Price
	if !g.Inventory.RemoveItem(g, it) {
		t.Fatal("RemoveItem failed")
	}

	if !g.giveBack(it, 0, price) {
		t.Fatal("giveBack failed with room left")
	}
	if g.Inventory.Index(it) != 0 {
		t.Errorf("Index = %d, expected 0", g.Inventory.Index(it))
	}
	if it.Price != price {
		t.Errorf("Price = %d, expected %d", it.Price, price)
	}
}

func TestGiveBackWhenFullDropsItem(t *testing.T) {
	g := newTestGame(t)
	winRound(t, g)
	for !g.Inventory.Full() {
		if !g.Inventory.AddItem(g, item(t, g, "Small Bumper")) {
			t.Fatal("AddItem(Small Bumper) failed")
		}
	}
	extra := item(t, g, "Big Bumper")

	if g.giveBack(extra, 0, extra.Price) {
		t.Error("giveBack succeeded on a full inventory")
	}
	if g.Inventory.Index(extra) >= 0 {
		t.Error("item should not be held")
	}
}
