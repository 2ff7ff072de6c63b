package pinball

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// HitText is a floating label shown where something scored.
type HitText struct {
	Text  string
	Pos   cp.Vector
	Color core.Color
	Life  float64
}

// Splash is a label requested by an effect during a collision. It becomes
// a HitText when the collision is committed.
type Splash struct {
	Text  string
	Pos   cp.Vector
	Color core.Color
}

// updateHitTexts moves labels up and drops expired ones.
func updateHitTexts(ts []HitText, dt, rise float64) []HitText {
	out := ts[:0]
	for _, t := range ts {
		t.Life -= dt
		if t.Life <= 0 {
			continue
		}
		t.Pos.Y -= rise * dt
		out = append(out, t)
	}
	return out
}
