package pinball

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// runState is everything a revocable card effect may touch.
type runState struct {
	Economy     config.EconomyConfig
	Flags       map[string]float64
	CardFlags   map[string]float64
	Rarities    map[string]map[string]float64
	Scale       float64
	Shift       float64
	RerollStart float64
	RerollCost  float64
	Required    float64
	Balls       int
	Queue       int
	Gravity     cp.Vector
	Shield      bool
	Forces      []float64
}

func captureState(g *Game, card *inventory.Item) runState {
	s := runState{
		Economy:     g.Economy,
		Flags:       map[string]float64{},
		CardFlags:   map[string]float64{},
		Rarities:    map[string]map[string]float64{},
		Scale:       g.Scale,
		Shift:       g.Shift,
		RerollStart: g.RerollStart,
		RerollCost:  g.RerollCost,
		Required:    g.Round.Required,
		Balls:       len(g.Field.Balls),
		Queue:       len(g.Round.Queue),
		Gravity:     g.Field.World.Gravity(),
		Shield:      g.Field.Table.ShieldUp(),
	}
	for k, v := range g.Flags {
		s.Flags[k] = v
	}
	for k, v := range card.Flags {
		s.CardFlags[k] = v
	}
	for cat, w := range g.Rarities {
		s.Rarities[cat] = map[string]float64{}
		for r, v := range w {
			s.Rarities[cat][r] = v
		}
	}
	for _, o := range g.Field.Objects() {
		if o.Kind == objects.KindBumper {
			s.Forces = append(s.Forces, o.Force)
		}
	}
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func nearMap(a, b map[string]float64) bool {
	for k, v := range a {
		if !near(v, b[k]) {
			return false
		}
	}
	for k, v := range b {
		if !near(a[k], v) {
			return false
		}
	}
	return true
}

// diffState lists the fields of got that differ from want.
func diffState(got, want runState) []string {
	var out []string
	check := func(name string, ok bool) {
		if !ok {
			out = append(out, name)
		}
	}
	ge, we := got.Economy, want.Economy
	check("Economy", near(ge.StartMoney, we.StartMoney) && near(ge.BaseAward, we.BaseAward) &&
		near(ge.ExtraAwardPerOrder, we.ExtraAwardPerOrder) && near(ge.ExtraAwardPerBall, we.ExtraAwardPerBall) &&
		near(ge.InterestRate, we.InterestRate) && near(ge.InterestCap, we.InterestCap) &&
		near(ge.ScoreMultiplier, we.ScoreMultiplier))
	check("Flags", nearMap(got.Flags, want.Flags))
	check("CardFlags", nearMap(got.CardFlags, want.CardFlags))
	rarities := len(got.Rarities) == len(want.Rarities)
	for cat, w := range want.Rarities {
		rarities = rarities && nearMap(got.Rarities[cat], w)
	}
	check("Rarities", rarities)
	check("Scale", near(got.Scale, want.Scale))
	check("Shift", near(got.Shift, want.Shift))
	check("RerollStart", near(got.RerollStart, want.RerollStart))
	check("RerollCost", near(got.RerollCost, want.RerollCost))
	check("Required", near(got.Required, want.Required))
	check("Balls", got.Balls == want.Balls && got.Queue == want.Queue)
	check("Gravity", near(got.Gravity.X, want.Gravity.X) && near(got.Gravity.Y, want.Gravity.Y))
	check("Shield", got.Shield == want.Shield)
	forces := len(got.Forces) == len(want.Forces)
	for i := 0; forces && i < len(want.Forces); i++ {
		forces = near(got.Forces[i], want.Forces[i])
	}
	check("Forces", forces)
	return out
}

// numeric draws a revertible [diff, mode] pair.
func numeric(rng *rand.Rand) (float64, string) {
	if rng.IntN(2) == 0 {
		return 0.25 + rng.Float64()*3.75, "m"
	}
	return rng.Float64()*100 - 50, "s"
}

func economyParams(rng *rand.Rand) effects.Params {
	diff, mode := numeric(rng)
	return effects.Params{diff, mode}
}

// reversibleParams builds random params for every card effect that can be
// revoked.
var reversibleParams = map[string]func(rng *rand.Rand) effects.Params{
	"change_ball_reward":      economyParams,
	"change_interest":         economyParams,
	"change_interest_cap":     economyParams,
	"change_score_multiplier": economyParams,
	"change_reroll_cost":      economyParams,
	"score_requirement":       economyParams,
	"change_ball_amount": func(rng *rand.Rand) effects.Params {
		return effects.Params{rng.IntN(4)}
	},
	"change_card_flag": func(rng *rand.Rand) effects.Params {
		diff, mode := numeric(rng)
		return effects.Params{"charges", diff, mode}
	},
	"change_rarities": func(rng *rand.Rand) effects.Params {
		return effects.Params{[]any{"common", "rare"}, 0.25 + rng.Float64()*3.75}
	},
	"bumper_empower": func(rng *rand.Rand) effects.Params {
		return effects.Params{0.25 + rng.Float64()*3.75}
	},
	"time_warp": func(rng *rand.Rand) effects.Params {
		return effects.Params{0.25 + rng.Float64()*1.75}
	},
	"shield": func(*rand.Rand) effects.Params { return nil },
}

// notRestoring are revocable effects whose revoke is a check or a reset,
// not an undo.
var notRestoring = map[string]bool{
	"check_score": true, // the revoke is the sell condition
	"break":       true, // broken objects stay broken
}

func TestCardEffectsAreReversible(t *testing.T) {
	g := newTestGame(t)
	rng := rand.New(rand.NewPCG(7, 11))
	card := &inventory.Item{Name: "Test Card", Flags: map[string]float64{"charges": 3}}
	ctx := &EffectContext{Game: g, Card: card}

	for _, name := range g.cards.Names() {
		if g.cards.ResolveNegative(name) == nil || notRestoring[name] {
			continue
		}
		gen, ok := reversibleParams[name]
		if !ok {
			t.Errorf("%s can be revoked but has no reversibility case", name)
			continue
		}
		for i := 0; i < 25; i++ {
			b := effects.Binding{Effect: name, Params: gen(rng)}
			before := captureState(g, card)

			if !g.cards.Call(ctx, b) {
				if d := diffState(captureState(g, card), before); len(d) > 0 {
					t.Errorf("%s %v: refused apply changed %v", name, b.Params, d)
				}
				continue
			}
			if !g.cards.Recall(ctx, b) {
				t.Errorf("%s %v: revoke failed after apply", name, b.Params)
				continue
			}
			if d := diffState(captureState(g, card), before); len(d) > 0 {
				t.Errorf("%s %v: apply then revoke changed %v", name, b.Params, d)
			}
		}
	}
}

func TestUnrevertibleChangesAreRefused(t *testing.T) {
	tests := []struct {
		effect string
		params effects.Params
	}{
		{"change_score_multiplier", effects.Params{2, "e"}},
		{"change_score_multiplier", effects.Params{0, "m"}},
		{"change_interest", effects.Params{0.5, "e"}},
		{"change_ball_reward", effects.Params{0, "m"}},
		{"change_reroll_cost", effects.Params{1, "e"}},
		{"change_reroll_cost", effects.Params{0, "m"}},
		{"change_card_flag", effects.Params{"charges", 9, "e"}},
		{"change_card_flag", effects.Params{"charges", 0, "m"}},
	}
	for _, tt := range tests {
		g := newTestGame(t)
		card := &inventory.Item{Name: "Test Card", Flags: map[string]float64{"charges": 3}}
		before := captureState(g, card)

		b := effects.Binding{Effect: tt.effect, Params: tt.params}
		if g.cards.Call(&EffectContext{Game: g, Card: card}, b) {
			t.Errorf("%s %v: apply succeeded, expected a refusal", tt.effect, tt.params)
		}
		if d := diffState(captureState(g, card), before); len(d) > 0 {
			t.Errorf("%s %v: refusal changed %v", tt.effect, tt.params, d)
		}
	}
}

func TestPassiveCardWithUnrevertibleChangeIsNotAdded(t *testing.T) {
	g := newTestGame(t)
	card := &inventory.Item{
		Name:  "Fixed Odds",
		Price: 10,
		Flags: map[string]float64{},
		Effects: []effects.Binding{
			{Effect: "change_interest", Params: effects.Params{0.1, "s"}},
			{Effect: "change_score_multiplier", Params: effects.Params{3, "e"}},
		},
	}
	before := captureState(g, card)

	if g.Inventory.AddItem(g, card) {
		t.Fatal("AddItem succeeded with a change that cannot be revoked")
	}
	if g.Inventory.Len() != 0 {
		t.Errorf("inventory = %d, expected 0", g.Inventory.Len())
	}
	if d := diffState(captureState(g, card), before); len(d) > 0 {
		t.Errorf("failed add changed %v", d)
	}
}

func TestSetScoreRequirementCannotBeRevoked(t *testing.T) {
	g := newTestGame(t)
	b := effects.Binding{Effect: "score_requirement", Params: effects.Params{300, "e"}}
	ctx := &EffectContext{Game: g}

	if !g.cards.Call(ctx, b) {
		t.Fatal("score_requirement set failed")
	}
	if g.cards.Recall(ctx, b) {
		t.Error("revoking a set requirement should fail")
	}
}
