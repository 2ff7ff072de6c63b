package pinball

import (
	"math"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

// Bonus is the reward buffer effects can raise during round_win. It is
// cleared before every payout.
type Bonus struct {
	Interest    float64
	InterestCap float64
	PerOrder    float64
	PerBall     float64
}

// Results is the outcome of a finished round.
type Results struct {
	Won         bool
	Round       int
	Score       float64
	Required    float64
	ExtraOrders int
	BallsLeft   int

	Base     float64
	Orders   float64
	Balls    float64
	Interest float64
	Total    float64
}

// ExtraOrders returns how many times the score doubled the requirement.
func ExtraOrders(score, required float64) int {
	if required <= 0 || score < required {
		return 0
	}
	return int(math.Floor(math.Log2(score / required)))
}

// payout settles a finished round. Only a win earns anything.
func (g *Game) payout() Results {
	r := g.Round
	res := Results{
		Round:     g.RoundIndex + 1,
		Score:     r.Score,
		Required:  r.Required,
		BallsLeft: r.BallsLeft,
		Won:       r.Score >= r.Required,
	}
	g.Bonus = Bonus{}
	if !res.Won {
		return res
	}
	g.fireCards(effects.TriggerRoundWin, nil)

	e, b := g.Economy, g.Bonus
	res.ExtraOrders = ExtraOrders(r.Score, r.Required)
	res.Base = e.BaseAward
	res.Orders = float64(res.ExtraOrders) * (e.ExtraAwardPerOrder + b.PerOrder)
	res.Balls = float64(res.BallsLeft) * (e.ExtraAwardPerBall + b.PerBall)
	if g.Money > 0 {
		res.Interest = math.Min(math.Floor((e.InterestRate+b.Interest)*g.Money), e.InterestCap+b.InterestCap)
		res.Interest = math.Max(res.Interest, 0)
	}
	res.Total = res.Base + res.Orders + res.Balls + res.Interest
	g.Money += res.Total
	return res
}
