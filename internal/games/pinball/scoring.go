package pinball

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// Immediate accumulates what the effects of one collision earned.
type Immediate struct {
	Score  float64
	Money  float64
	Multi  float64
	Splash []Splash
}

func (im *Immediate) reset() {
	*im = Immediate{Multi: 1}
}

// hitTextOffset places score labels beside the struck object.
var hitTextOffset = cp.Vector{X: 20}

// contact is a ball/object begin event waiting for the end of the step.
type contact struct {
	ball, obj *objects.GameObject
}

// collide runs the scoring pipeline for one contact. Contacts are collected
// during the world step and processed after it, so effects may add and
// remove bodies freely.
func (g *Game) collide(ball, obj *objects.GameObject) {
	r := g.Round
	if r == nil || r.State != RoundRunning {
		return
	}
	if obj.Kind == objects.KindFlipper || obj.Locked() || !g.Field.Has(obj) {
		return
	}

	r.Imm.reset()
	arbiters := []*objects.GameObject{ball, obj}
	pos := obj.Position()
	fire, cooled := obj.Hit()

	g.fireCards(effects.TriggerCollision, arbiters)
	if g.Field.Has(obj) {
		if fire {
			g.fireObject(obj, effects.TriggerCollision, arbiters)
			g.fireObject(ball, effects.TriggerCollision, arbiters)
		}
		if cooled {
			g.fireObject(obj, effects.TriggerCooldown, arbiters)
		}
	}

	if g.commit(pos) {
		g.fireCards(effects.TriggerScoringCollision, arbiters)
		g.commit(pos)
	}
}

// commit moves the immediate buffer into the round and the wallet.
// It reports whether anything was earned.
func (g *Game) commit(pos cp.Vector) bool {
	r := g.Round
	im := &r.Imm
	for _, s := range im.Splash {
		r.addText(s.Text, s.Pos, s.Color)
	}

	base := im.Score * g.Economy.ScoreMultiplier
	delta := base * im.Multi
	money := im.Money
	if delta != 0 {
		r.Score += delta
		r.addText(scoreLabel(base, im.Multi), pos.Add(hitTextOffset), core.ColorScore)
	}
	if money != 0 {
		g.Money += money
		r.addText(fmt.Sprintf("$%s", formatAmount(money)), pos.Add(hitTextOffset).Add(cp.Vector{Y: 20}), core.ColorMoney)
	}
	im.reset()
	return delta != 0 || money != 0
}

// fireCards dispatches a trigger to the passive bindings of every held
// card and to the live bindings of applied cards.
func (g *Game) fireCards(t effects.Trigger, arbiters []*objects.GameObject) {
	for _, it := range slices.Clone(g.Inventory.Items) {
		for _, b := range it.Bindings(t, effects.UsagePassive) {
			g.callCard(b, it, arbiters)
		}
	}
	if g.Round == nil {
		return
	}
	for _, it := range slices.Clone(g.Round.Applied.Items) {
		for _, b := range it.LiveBindings(t) {
			g.callCard(b, it, arbiters)
		}
	}
}

// fireObject dispatches a trigger to an object's own bindings.
func (g *Game) fireObject(o *objects.GameObject, t effects.Trigger, arbiters []*objects.GameObject) {
	for _, b := range o.Bindings(t) {
		g.objfuncs.Call(&EffectContext{Game: g, Object: o, Arbiters: arbiters}, b)
	}
}

func (g *Game) callCard(b effects.Binding, it *inventory.Item, arbiters []*objects.GameObject) bool {
	return g.cards.Call(&EffectContext{Game: g, Card: it, Arbiters: arbiters}, b)
}

// scoreLabel is the hit text for a score change, signed only when it gains.
func scoreLabel(base, multi float64) string {
	text := formatAmount(base)
	if base >= 0 {
		text = "+" + text
	}
	if multi != 1 {
		text += " x" + formatAmount(multi)
	}
	return text
}

// formatAmount prints whole numbers without a fraction.
func formatAmount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
