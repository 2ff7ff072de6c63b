package pinball

import (
	"fmt"
	"maps"

	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/save"
)

// SaveData captures the run for the save slot.
func (g *Game) SaveData(mode Mode) save.Data {
	return save.Data{
		RunID:      g.RunID,
		Seed:       g.seed,
		Round:      g.RoundIndex,
		Mode:       string(mode),
		Money:      g.Money,
		RerollCost: g.RerollCost,
		Flags:      maps.Clone(g.Flags),
		Economy:    g.Economy,
		Scale:      g.Scale,
		Shift:      g.Shift,
		Inventory:  g.Inventory.Names(),
		Balls:      g.Field.BallNames(),
		Board:      g.Field.Board(),
	}
}

func (g *Game) persist(mode Mode) {
	if g.Field == nil {
		return
	}
	if err := g.opts.Store.Save(g.SaveData(mode)); err != nil {
		g.logger.Warn("cannot save run", "error", err)
	}
}

// restore rebuilds a saved run. Held cards are added again so their
// passive effects apply; the saved economy, balls and requirement then
// replace whatever those effects produced.
func (g *Game) restore(d save.Data) error {
	if err := g.resetRun(d.Seed); err != nil {
		return err
	}
	if err := g.Field.SetBoard(d.Board); err != nil {
		return err
	}
	for _, name := range d.Inventory {
		spec, ok := g.cfg.FindItem(name)
		if !ok {
			return fmt.Errorf("pinball: saved item %q is not in the catalog", name)
		}
		it, err := inventory.FromSpec(spec)
		if err != nil {
			return err
		}
		if !g.Inventory.AddItem(g, it) {
			return fmt.Errorf("pinball: cannot restore item %q", name)
		}
	}
	if err := g.Field.SetBalls(d.Balls); err != nil {
		return err
	}

	g.RunID = d.RunID
	g.RoundIndex = d.Round
	g.Money = d.Money
	g.Economy = d.Economy
	g.Scale, g.Shift = d.Scale, d.Shift
	if g.Scale == 0 {
		g.Scale = 1
	}
	if d.Flags != nil {
		g.Flags = maps.Clone(d.Flags)
	}

	switch Mode(d.Mode) {
	case ModeShop:
		g.OpenShop()
		g.RerollCost = max(g.RerollCost, d.RerollCost)
	default:
		g.StartRound()
	}
	return nil
}
