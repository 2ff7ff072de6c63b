package pinball

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// Flag names kept on objects.
const (
	flagHits = "hits"
	flagLit  = "lit"
)

// newObjectEffects registers the effects table objects can carry.
func newObjectEffects(logger *log.Logger) *effects.Registry[*EffectContext] {
	r := effects.NewRegistry[*EffectContext](logger)
	r.Register("bump", effects.Entry[*EffectContext]{Apply: bump})
	r.Register("1up", effects.Entry[*EffectContext]{Apply: oneUp})
	r.Register("8ball", effects.Entry[*EffectContext]{Apply: eightBall})
	r.Register("8ball_lost", effects.Entry[*EffectContext]{Apply: eightBallLost})
	r.Register("change_flag", effects.Entry[*EffectContext]{Apply: changeFlag})
	r.Register("chaos", effects.Entry[*EffectContext]{Apply: chaos})
	r.Register("pin_points", effects.Entry[*EffectContext]{Apply: pinPoints})
	r.Register("return_chance", effects.Entry[*EffectContext]{Apply: returnChance})
	return r
}

// bump scores params [score, money].
func bump(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	r.Imm.Score += p.Float(0, 0)
	r.Imm.Money += p.Float(1, 0)
	ctx.Game.Sound.Play(SoundChime)
	return true
}

// oneUp grows the bump score of the struck objects. Params: [diff, mode].
func oneUp(ctx *EffectContext, p effects.Params) bool {
	m, diff := p.Mode(1), p.Float(0, 0)
	for _, o := range ctx.Others() {
		if b := o.Binding("bump"); b != nil {
			b.Params.Set(0, m.Apply(b.Params.Float(0, 0), diff))
		}
	}
	return true
}

// eightBall counts hits on the ball and sometimes scores.
// Params: [score, chance].
func eightBall(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	if b := ctx.Ball(); b != nil {
		b.Flags[flagHits]++
	}
	if ctx.Game.rng.Chance(p.Float(1, 0)) {
		r.Imm.Score += p.Float(0, 0)
	}
	return true
}

// eightBallLost wipes the round score and the wallet when the ball drained
// with fewer hits than params [hits].
func eightBallLost(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	b := ctx.Ball()
	if r == nil || b == nil {
		return false
	}
	if b.Flags[flagHits] < p.Float(0, 0) {
		r.Score = 0
		ctx.Game.Money = 0
	}
	return true
}

// changeFlag changes a flag on the struck objects named params[0].
// Params: [name, flag, value, mode].
func changeFlag(ctx *EffectContext, p effects.Params) bool {
	name, flag := p.String(0, ""), p.String(1, "")
	m, v := p.Mode(3), p.Float(2, 0)
	for _, o := range ctx.Arbiters {
		if o.Name != name {
			continue
		}
		cur, ok := o.Flags[flag]
		if !ok && m == effects.ModeMult {
			cur = 1
		}
		o.Flags[flag] = m.Apply(cur, v)
	}
	return true
}

// chaos bounces the struck bumpers randomly and scores a random amount in
// params [min, max].
func chaos(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	g := ctx.Game
	for _, o := range ctx.Others() {
		if o.Kind == objects.KindBumper {
			o.SetForce(0.5 + g.rng.Float64())
		}
	}
	lo, hi := p.Float(0, 0), p.Float(1, 0)
	r.Imm.Score += float64(int(g.rng.Float64()*(hi-lo) + lo))
	g.Sound.Play(SoundChime)
	return true
}

// pinPoints toggles the struck pin. When every pin is lit the round earns
// params [mult] per pin and the pins go dark; a lone pin earns a tenth.
func pinPoints(ctx *EffectContext, p effects.Params) bool {
	r := ctx.Round()
	if r == nil {
		return false
	}
	for _, o := range ctx.Others() {
		if o.Binding("pin_points") != nil {
			o.Flags[flagLit] = 1 - o.Flags[flagLit]
		}
	}

	pins := ctx.Game.Field.Arena.Filter(func(o *objects.GameObject) bool {
		return o.Kind != objects.KindBall && o.Binding("pin_points") != nil
	})
	for _, o := range pins {
		if o.Flags[flagLit] == 0 {
			return false
		}
	}
	mult := p.Float(0, 0)
	if len(pins) > 1 {
		r.Imm.Score += float64(len(pins)) * mult
		for _, o := range pins {
			o.Flags[flagLit] = 0
		}
		return true
	}
	if len(pins) == 1 {
		r.Imm.Score += float64(int(mult) / 10)
		return true
	}
	return false
}
