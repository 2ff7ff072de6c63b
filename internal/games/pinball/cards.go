package pinball

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

type cardFunc = effects.Func[*EffectContext]

// newCardEffects registers the effects cards can carry.
func newCardEffects(logger *log.Logger) *effects.Registry[*EffectContext] {
	r := effects.NewRegistry[*EffectContext](logger)

	r.Register("change_ball_amount", effects.Entry[*EffectContext]{Apply: changeBallAmount(1), Negate: changeBallAmount(-1)})
	r.Register("change_ball_reward", economyEntry(func(g *Game) *float64 { return &g.Economy.ExtraAwardPerBall }))
	r.Register("change_interest", economyEntry(func(g *Game) *float64 { return &g.Economy.InterestRate }))
	r.Register("change_interest_cap", economyEntry(func(g *Game) *float64 { return &g.Economy.InterestCap }))
	r.Register("change_score_multiplier", economyEntry(func(g *Game) *float64 { return &g.Economy.ScoreMultiplier }))
	r.Register("change_reroll_cost", effects.Entry[*EffectContext]{Apply: changeRerollCost(false), Negate: changeRerollCost(true)})
	r.Register("change_rarities", effects.Entry[*EffectContext]{Apply: changeRarities(false), Negate: changeRarities(true)})
	r.Register("score_requirement", effects.Entry[*EffectContext]{Apply: scoreRequirement(false), Negate: scoreRequirement(true)})
	r.Register("change_card_flag", effects.Entry[*EffectContext]{Apply: changeCardFlag(false), Negate: changeCardFlag(true)})
	r.Register("change_effect_duration", effects.Entry[*EffectContext]{Apply: changeEffectDuration})
	r.Register("multiply_score", effects.Entry[*EffectContext]{Apply: multiplyScore})
	r.Register("collector", effects.Entry[*EffectContext]{Apply: collector})
	r.Register("check_score", effects.Entry[*EffectContext]{Apply: alwaysTrue, Negate: checkScore})
	r.Register("break", effects.Entry[*EffectContext]{Apply: breakObjects, Negate: unbreak})
	r.Register("bumper_empower", effects.Entry[*EffectContext]{Apply: bumperEmpower(false), Negate: bumperEmpower(true)})
	r.Register("convert_ball", effects.Entry[*EffectContext]{Apply: convertBall})
	r.Register("split_ball", effects.Entry[*EffectContext]{Apply: splitBall})
	r.Register("sell_ball", effects.Entry[*EffectContext]{Apply: sellBall})
	r.Register("shuffle_balls", effects.Entry[*EffectContext]{Apply: shuffleBalls})
	r.Register("time_warp", effects.Entry[*EffectContext]{Apply: timeWarp(false), Negate: timeWarp(true)})
	r.Register("venture", effects.Entry[*EffectContext]{Apply: venture})
	r.Register("dupe_activate", effects.Entry[*EffectContext]{Apply: dupeActivate})
	r.Register("giveaway", effects.Entry[*EffectContext]{Apply: giveaway})
	r.Register("multiply_prices", effects.Entry[*EffectContext]{Apply: multiplyPrices})
	r.Register("reroll_reset", effects.Entry[*EffectContext]{Apply: rerollReset})
	r.Register("return_chance", effects.Entry[*EffectContext]{Apply: returnChance})
	r.Register("splash", effects.Entry[*EffectContext]{Apply: splash})
	r.Register("shield", effects.Entry[*EffectContext]{Apply: shield(true), Negate: shield(false)})
	r.Register("reward_bonus", effects.Entry[*EffectContext]{Apply: rewardBonus})
	return r
}

func alwaysTrue(*EffectContext, effects.Params) bool { return true }

// revertible refuses changes that a later revoke could not undo.
func revertible(ctx *EffectContext, m effects.Mode, diff float64) bool {
	if m.Revertible(diff) {
		return true
	}
	ctx.Game.logger.Warn("refusing change that cannot be revoked", "mode", string(m), "diff", diff)
	return false
}

// economyEntry changes one economy value by params [diff, mode].
func economyEntry(field func(g *Game) *float64) effects.Entry[*EffectContext] {
	return effects.Entry[*EffectContext]{
		Apply: func(ctx *EffectContext, p effects.Params) bool {
			m, diff := p.Mode(1), p.Float(0, 0)
			if !revertible(ctx, m, diff) {
				return false
			}
			v := field(ctx.Game)
			*v = m.Apply(*v, diff)
			return true
		},
		Negate: func(ctx *EffectContext, p effects.Params) bool {
			v := field(ctx.Game)
			*v = p.Mode(1).Revert(*v, p.Float(0, 0))
			return true
		},
	}
}

// changeBallAmount adds or removes balls of the default class. Removal
// fails when there are not enough balls left to take.
func changeBallAmount(sign int) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		g := ctx.Game
		n := sign * p.Int(0, 0)
		if n >= 0 {
			for range n {
				b, err := g.Field.AddBall(g.cfg.Round.BallClass)
				if err != nil {
					g.logger.Warn("cannot add ball", "error", err)
					return false
				}
				if r := ctx.Round(); r != nil {
					r.Queue = append(r.Queue, b)
				}
			}
			return true
		}

		n = -n
		if r := ctx.Round(); r != nil {
			if len(r.Queue) < n {
				return false
			}
			drop := slices.Clone(r.Queue[len(r.Queue)-n:])
			r.Queue = r.Queue[:len(r.Queue)-n]
			for _, b := range drop {
				g.Field.DropBall(b)
			}
			return true
		}
		if len(g.Field.Balls) < n {
			return false
		}
		for _, b := range slices.Clone(g.Field.Balls[len(g.Field.Balls)-n:]) {
			g.Field.DropBall(b)
		}
		return true
	}
}

func changeRerollCost(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		g := ctx.Game
		m, diff := p.Mode(1), p.Float(0, 0)
		if !negate && !revertible(ctx, m, diff) {
			return false
		}
		if negate {
			g.RerollStart = m.Revert(g.RerollStart, diff)
			g.RerollCost = m.Revert(g.RerollCost, diff)
		} else {
			g.RerollStart = m.Apply(g.RerollStart, diff)
			g.RerollCost = m.Apply(g.RerollCost, diff)
		}
		return true
	}
}

// changeRarities scales the weight of the named rarities in every
// category. Params: [rarities, coefficient].
func changeRarities(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		names := p.Strings(0)
		coef := p.Float(1, 1)
		if coef == 0 {
			return false
		}
		if negate {
			coef = 1 / coef
		}
		for _, weights := range ctx.Game.Rarities {
			for rarity := range weights {
				if slices.Contains(names, rarity) {
					weights[rarity] *= coef
				}
			}
		}
		return true
	}
}

// scoreRequirement scales (m), shifts (s) or sets (e) the score needed.
// The running round follows the change. A set cannot be revoked.
func scoreRequirement(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		g := ctx.Game
		diff := p.Float(0, 0)
		switch m := p.Mode(1); m {
		case effects.ModeMult:
			if diff == 0 {
				return false
			}
			if negate {
				g.Scale /= diff
			} else {
				g.Scale *= diff
			}
		case effects.ModeSet:
			if negate {
				g.logger.Warn("cannot revoke a set score requirement", "value", diff)
				return false
			}
			g.Shift = diff - g.BaseScoreNeeded()*g.Scale
		default:
			if negate {
				g.Shift -= diff
			} else {
				g.Shift += diff
			}
		}
		if r := ctx.Round(); r != nil {
			r.Required = g.ScoreNeeded()
		}
		return true
	}
}

// changeCardFlag changes a flag on the card itself. Params: [flag, diff, mode].
func changeCardFlag(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		if ctx.Card == nil {
			return false
		}
		name := p.String(0, "")
		m, diff := p.Mode(2), p.Float(1, 0)
		if !negate && !revertible(ctx, m, diff) {
			return false
		}
		if negate {
			ctx.Card.Flags[name] = m.Revert(ctx.Card.Flags[name], diff)
		} else {
			ctx.Card.Flags[name] = m.Apply(ctx.Card.Flags[name], diff)
		}
		return true
	}
}

// changeEffectDuration stretches another effect of the same card.
// Params: [effect, diff, mode].
func changeEffectDuration(ctx *EffectContext, p effects.Params) bool {
	if ctx.Card == nil {
		return false
	}
	ctx.Card.SetDuration(p.String(0, ""), p.Mode(2), p.Float(1, 0))
	return true
}

// multiplyScore changes the multiplier of the current collision.
func multiplyScore(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	r.Imm.Multi = p.Mode(1).Apply(r.Imm.Multi, p.Float(0, 1))
	return true
}

// collector multiplies the collision while every collected ball is of a
// different class.
func collector(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	seen := map[string]bool{}
	for _, b := range ctx.Game.Field.Balls {
		if seen[b.Class] {
			return false
		}
		seen[b.Class] = true
	}
	r.Imm.Multi = p.Mode(1).Apply(r.Imm.Multi, p.Float(0, 1))
	return true
}

// checkScore allows selling only once the last round scored enough.
// Params: [ratio, "relative" | absolute score].
func checkScore(ctx *EffectContext, p effects.Params) bool {
	g := ctx.Game
	if g.Round == nil {
		return false
	}
	need := p.Float(1, 0)
	if p.String(1, "") == "relative" {
		need = g.Round.Required
	}
	if need <= 0 {
		return true
	}
	return g.Round.Score/need >= p.Float(0, 1)
}

// breakObjects removes the struck objects from the table.
func breakObjects(ctx *EffectContext, _ effects.Params) bool {
	g := ctx.Game
	for _, o := range ctx.Others() {
		if err := g.Field.Delete(o); err != nil {
			continue
		}
		g.Flags["broken"]++
		g.Sound.Play(SoundTear)
	}
	return true
}

func unbreak(ctx *EffectContext, _ effects.Params) bool {
	if ctx.Game.Flags["broken"] > 0 {
		ctx.Game.Flags["broken"] = 0
		return true
	}
	return false
}

func bumperEmpower(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		k := p.Float(0, 1)
		if k == 0 {
			return false
		}
		if negate {
			k = 1 / k
		}
		for _, o := range ctx.Game.Field.Objects() {
			if o.Kind == objects.KindBumper {
				o.SetForce(o.Force * k)
			}
		}
		return true
	}
}

// convertBall turns the first active ball into another class for good.
func convertBall(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil || len(r.Active) == 0 {
		return false
	}
	if err := ctx.Game.Field.Factory.Convert(r.Active[0], p.String(0, "")); err != nil {
		ctx.Game.logger.Warn("cannot convert ball", "error", err)
		return false
	}
	return true
}

// splitBall adds a temporary copy of the first active ball beside it.
func splitBall(ctx *EffectContext, _ effects.Params) bool {
	r := ctx.Round()
	if r == nil || !r.BallLaunched || len(r.Active) == 0 {
		return false
	}
	src := r.Active[0]
	clone := ctx.Game.Field.Factory.Clone(src)
	ctx.Game.Field.Factory.Activate(clone, src.Position().Add(cp.Vector{X: src.Radius}))
	v := src.Velocity()
	clone.SetVelocity(cp.Vector{X: -v.X, Y: v.Y})
	r.Active = append(r.Active, clone)
	return true
}

// sellBall removes the first active ball from the run for money.
func sellBall(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil || len(r.Active) == 0 {
		return false
	}
	b := r.Active[0]
	r.removeActive(b)
	ctx.Game.Field.DropBall(b)
	ctx.Game.Money += p.Float(0, 0)
	return true
}

// shuffleBalls shuffles the queue, taking back a ball still in the lane.
func shuffleBalls(ctx *EffectContext, _ effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	charged := r.Charged()
	if len(r.Queue) == 0 {
		return false
	}
	if charged != nil {
		r.removeActive(charged)
		r.Queue = append(r.Queue, charged)
	}
	ctx.Game.rng.Shuffle(len(r.Queue), func(i, j int) {
		r.Queue[i], r.Queue[j] = r.Queue[j], r.Queue[i]
	})
	if charged != nil {
		r.recharge()
	}
	return true
}

// timeWarp scales gravity and, once launched, the speed of active balls.
func timeWarp(negate bool) cardFunc {
	return func(ctx *EffectContext, p effects.Params) bool {
		g := ctx.Game
		r := g.Round
		if r == nil || (!negate && r.State != RoundRunning) {
			return false
		}
		k := p.Float(0, 1)
		if k == 0 {
			return false
		}
		if negate {
			k = 1 / k
		}
		g.Field.World.SetGravity(g.Field.World.Gravity().Mult(k))
		if r.BallLaunched {
			for _, b := range r.Active {
				b.SetVelocity(b.Velocity().Mult(k))
			}
		}
		return true
	}
}

// venture turns the first active ball golden, or loses it.
func venture(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil || len(r.Active) == 0 {
		return false
	}
	g := ctx.Game
	b := r.Active[0]
	if g.rng.Chance(p.Float(0, 0.5)) {
		if err := g.Field.Factory.Convert(b, g.cfg.Round.GoldenClass); err != nil {
			g.logger.Warn("cannot convert ball", "error", err)
			return false
		}
		return true
	}
	r.removeActive(b)
	g.Field.DropBall(b)
	return true
}

// dupeActivate uses a copy of the first usable card in the inventory.
func dupeActivate(ctx *EffectContext, _ effects.Params) bool {
	g := ctx.Game
	for _, it := range g.Inventory.Items {
		if it == ctx.Card || !it.Usable() || hasEffect(it, "dupe_activate") {
			continue
		}
		c := it.Clone()
		if !c.Use(g) {
			continue
		}
		if c.Lasting() {
			if r := ctx.Round(); r != nil {
				r.Applied.Add(c)
			} else {
				c.EndUse(g)
			}
		}
		return true
	}
	return false
}

func hasEffect(it *inventory.Item, name string) bool {
	for _, b := range it.Effects {
		if b.Effect == name {
			return true
		}
	}
	return false
}

// giveaway makes up to n priced cards or buildables in the shop free.
func giveaway(ctx *EffectContext, p effects.Params) bool {
	g := ctx.Game
	var pool []*inventory.Item
	for _, it := range g.Shop.Offers {
		if it != nil && (it.Kind == inventory.KindCard || it.Kind == inventory.KindBuildable) && it.Price > 0 {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		return false
	}
	for range min(p.Int(0, 1), len(pool)) {
		i := g.rng.Intn(len(pool))
		pool[i].Price = 0
		pool[i].BuyPrice = 0
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

// multiplyPrices scales the sell price of every held item.
// Params: [coefficient, positive_only].
func multiplyPrices(ctx *EffectContext, p effects.Params) bool {
	coef, positiveOnly := p.Float(0, 1), p.Bool(1, false)
	for _, it := range ctx.Game.Inventory.Items {
		if positiveOnly && it.Price <= 0 {
			continue
		}
		it.Price = int(math.Round(float64(it.Price) * coef))
	}
	return true
}

func rerollReset(ctx *EffectContext, _ effects.Params) bool {
	g := ctx.Game
	if g.mode != ModeShop {
		return false
	}
	g.RerollCost = g.RerollStart
	return true
}

// returnChance puts a lost ball back in the queue with probability p.
func returnChance(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	b := ctx.Ball()
	if r == nil || b == nil {
		return false
	}
	if !ctx.Game.rng.Chance(p.Float(0, 0)) {
		return false
	}
	if !slices.Contains(r.Queue, b) {
		r.Queue = append(r.Queue, b)
	}
	return true
}

// splash shows a label. Params: [relative, offset, text, color] where
// relative is "ball" or an [x, y] point.
func splash(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	var origin cp.Vector
	if xy, ok := p.Floats(0); ok && len(xy) == 2 {
		origin = cp.Vector{X: xy[0], Y: xy[1]}
	} else if p.String(0, "") == "ball" {
		if b := ctx.Ball(); b != nil {
			origin = b.Position()
		}
	}
	if off, ok := p.Floats(1); ok && len(off) == 2 {
		origin = origin.Add(cp.Vector{X: off[0], Y: off[1]})
	}
	r.Imm.Splash = append(r.Imm.Splash, Splash{
		Text:  p.String(2, ""),
		Pos:   origin,
		Color: core.ParseColor(p.String(3, "")),
	})
	return true
}

func shield(up bool) cardFunc {
	return func(ctx *EffectContext, _ effects.Params) bool {
		ctx.Game.Field.Table.SetShield(up)
		return true
	}
}

// rewardBonus adds to this round's reward buffer. Params: [kind, amount]
// with kind one of interest, interest_cap, per_order, per_ball.
func rewardBonus(ctx *EffectContext, p effects.Params) bool {
	b := &ctx.Game.Bonus
	v := p.Float(1, 0)
	switch p.String(0, "") {
	case "interest":
		b.Interest += v
	case "interest_cap":
		b.InterestCap += v
	case "per_order":
		b.PerOrder += v
	case "per_ball":
		b.PerBall += v
	default:
		return false
	}
	return true
}
