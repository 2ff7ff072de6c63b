package pinball

import (
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// EffectContext is what an effect function sees when it runs.
// Card is set for card effects, Object for object effects. Arbiters holds
// the objects of the collision being processed, the ball first.
type EffectContext struct {
	Game     *Game
	Card     *inventory.Item
	Object   *objects.GameObject
	Arbiters []*objects.GameObject
}

// Round returns the running round, or nil between rounds.
func (c *EffectContext) Round() *Round {
	if c.Game.Round == nil || c.Game.Round.State != RoundRunning {
		return nil
	}
	return c.Game.Round
}

// Ball returns the ball of the collision, if any.
func (c *EffectContext) Ball() *objects.GameObject {
	for _, o := range c.Arbiters {
		if o.Kind == objects.KindBall {
			return o
		}
	}
	return nil
}

// Others returns the non-ball objects of the collision.
func (c *EffectContext) Others() []*objects.GameObject {
	var out []*objects.GameObject
	for _, o := range c.Arbiters {
		if o.Kind != objects.KindBall {
			out = append(out, o)
		}
	}
	return out
}
