package pinball

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

// newPredicates registers the functionals that gate shop offers.
func newPredicates(logger *log.Logger) *effects.Predicates[*Game] {
	p := effects.NewPredicates[*Game](logger)
	p.Register("check_flag", checkFlag)
	return p
}

// checkFlag holds when game flag params[0] equals params[1]. A missing
// flag never matches. Booleans compare as 1 and 0.
func checkFlag(g *Game, p effects.Params) bool {
	v, ok := g.Flags[p.String(0, "")]
	if !ok {
		return false
	}
	if p.Len() > 1 {
		if b, isBool := p[1].(bool); isBool {
			return v == boolFlag(b)
		}
	}
	return v == p.Float(1, 0)
}

func boolFlag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
