package pinball

import "math"

// Snapshot is a compact view of the game used for determinism checks.
// Positions and velocities are rounded to whole pixels.
type Snapshot struct {
	Tick       uint64
	Mode       string
	RoundIndex int
	Score      int
	Required   int
	Money      int
	Steps      uint64

	ActiveCount int
	QueueCount  int

	// Each active ball is 4 ints: X, Y, VX, VY
	BallData []int

	// Each object is 3 ints: X, Y, Activations
	ObjectData []int

	InventoryCount int
	RNGState       uint64
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		RoundIndex: g.RoundIndex,
		Money:      int(math.Round(g.Money)),
	}
	if g.Inventory != nil {
		snap.InventoryCount = g.Inventory.Len()
	}
	if g.rng != nil {
		snap.RNGState = g.rng.State()
	}
	if r := g.Round; r != nil {
		snap.Score = int(math.Round(r.Score))
		snap.Required = int(math.Round(r.Required))
		snap.Steps = r.Steps
		snap.ActiveCount = len(r.Active)
		snap.QueueCount = len(r.Queue)
		snap.BallData = make([]int, 0, len(r.Active)*4)
		for _, b := range r.Active {
			p, v := b.Position(), b.Velocity()
			snap.BallData = append(snap.BallData,
				int(math.Round(p.X)), int(math.Round(p.Y)),
				int(math.Round(v.X)), int(math.Round(v.Y)))
		}
	}
	if g.Field != nil {
		for _, o := range g.Field.Objects() {
			p := o.Position()
			snap.ObjectData = append(snap.ObjectData, int(math.Round(p.X)), int(math.Round(p.Y)), o.Activations)
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.Mode {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.RoundIndex)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Required)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Money)          //#nosec G115 -- hash computation
	h = h*31 + snap.Steps
	h = h*31 + uint64(snap.ActiveCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.QueueCount)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.InventoryCount) //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ObjectData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}
