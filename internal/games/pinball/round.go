package pinball

import (
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/objects"
)

// RoundState is the lifecycle of a round.
type RoundState int

const (
	RoundLoading RoundState = iota
	RoundRunning
	RoundOver
	RoundMenuExit
)

func (s RoundState) String() string {
	switch s {
	case RoundLoading:
		return "loading"
	case RoundRunning:
		return "running"
	case RoundOver:
		return "round_over"
	case RoundMenuExit:
		return "menu_exit"
	}
	return "unknown"
}

// maxSubSteps bounds the physics catch-up after a long frame.
const maxSubSteps = 30

// Controls are the logical inputs of one frame.
type Controls struct {
	Launch    bool
	FlipLeft  bool
	FlipRight bool
}

// Round is one attempt at reaching the score requirement.
type Round struct {
	g *Game

	State    RoundState
	Paused   bool
	Score    float64
	Required float64

	// Active balls are in the world; Queue holds the ones still to come.
	Active       []*objects.GameObject
	Queue        []*objects.GameObject
	BallLaunched bool
	BallsLeft    int // queued plus charged balls when the round ended

	Charge     float64
	launchHeld bool
	flipLeft   bool
	flipRight  bool

	Applied  inventory.Applied
	Imm      Immediate
	HitTexts []HitText

	Time  float64
	Steps uint64

	acc     float64
	pending []contact
}

func newRound(g *Game) *Round {
	r := &Round{g: g, State: RoundLoading, Required: g.ScoreNeeded()}
	r.Imm.reset()
	return r
}

// Start queues the ball collection, fires round_start and charges the
// first ball.
func (r *Round) Start() {
	if r.State != RoundLoading {
		return
	}
	f := r.g.Field
	f.OnHit = r.queueHit
	r.Queue = slices.Clone(f.Balls)
	r.State = RoundRunning
	r.g.fireCards(effects.TriggerRoundStart, nil)
	r.recharge()
}

func (r *Round) queueHit(ball, obj *objects.GameObject) {
	r.pending = append(r.pending, contact{ball: ball, obj: obj})
}

// Finishable reports whether the requirement is met.
func (r *Round) Finishable() bool {
	return r.Score >= r.Required
}

// Charged returns the active ball still waiting in the launch lane.
func (r *Round) Charged() *objects.GameObject {
	if r.BallLaunched {
		return nil
	}
	for _, b := range r.Active {
		if r.g.Field.Table.InLane(b.Position()) {
			return b
		}
	}
	return nil
}

// recharge puts the next queued ball in the launch lane. With nothing left
// to play the round is over.
func (r *Round) recharge() {
	if r.State != RoundRunning {
		return
	}
	if len(r.Queue) == 0 {
		if len(r.Active) == 0 {
			r.finish()
		}
		return
	}
	ball := r.Queue[0]
	r.Queue = r.Queue[1:]
	r.g.Field.Factory.Activate(ball, vec(r.g.Field.Layout().BallStart))
	r.Active = append(r.Active, ball)
	r.BallLaunched = false
	r.g.fireCards(effects.TriggerRecharge, []*objects.GameObject{ball})
}

// Advance runs as many fixed sub-steps as frameDt covers.
func (r *Round) Advance(frameDt float64, c Controls) {
	if r.State != RoundRunning || r.Paused {
		return
	}
	dt := r.g.cfg.Physics.MaxDt()
	r.acc += frameDt
	for n := 0; r.acc+1e-9 >= dt && r.State == RoundRunning; n++ {
		if n == maxSubSteps {
			r.acc = 0
			break
		}
		r.acc -= dt
		r.step(dt, c)
	}
}

func (r *Round) step(dt float64, c Controls) {
	g := r.g
	f := g.Field

	r.flip(true, c.FlipLeft)
	r.flip(false, c.FlipRight)
	r.plunger(dt, c.Launch)

	f.World.Step(dt)

	pending := r.pending
	r.pending = nil
	for _, p := range pending {
		g.collide(p.ball, p.obj)
	}
	if r.State != RoundRunning {
		return
	}

	positions := make([]cp.Vector, len(r.Active))
	for i, b := range r.Active {
		positions[i] = b.Position()
	}
	if f.Table.UpdateValve(positions) && len(r.Active) > 0 {
		r.BallLaunched = true
	}

	drainY := f.Layout().DrainY
	for _, b := range slices.Clone(r.Active) {
		if b.Position().Y > drainY {
			r.drain(b)
		}
	}
	if len(r.Active) == 0 {
		r.recharge()
		if r.State != RoundRunning {
			return
		}
	}

	f.Arena.Each(func(o *objects.GameObject) { o.Update(dt) })

	for _, it := range r.Applied.Tick(dt) {
		it.EndUse(g)
		g.notify(it.Name + " used up")
	}

	r.HitTexts = updateHitTexts(r.HitTexts, dt, g.cfg.Round.HitTextRise)
	r.Time += dt
	r.Steps++
}

func (r *Round) flip(left, on bool) {
	state := &r.flipRight
	if left {
		state = &r.flipLeft
	}
	if *state == on {
		return
	}
	*state = on
	r.g.Field.SetFlippers(left, on)
	if on {
		r.g.Sound.Play(SoundFlipperOn)
	} else {
		r.g.Sound.Play(SoundFlipperOff)
	}
}

// plunger charges while held and fires on release. Only balls resting at
// the bottom of the lane are launched, and nothing charges once the ball
// has left the lane.
func (r *Round) plunger(dt float64, held bool) {
	cfg := r.g.cfg.Launch
	if held {
		if r.BallLaunched {
			return
		}
		r.launchHeld = true
		r.Charge = min(r.Charge+cfg.ChargeRate*dt, cfg.MaxImpulse)
		return
	}
	if !r.launchHeld {
		return
	}
	l := r.g.Field.Layout()
	launched := false
	for _, b := range r.Active {
		p := b.Position()
		if p.Y > l.LaunchAreaTop && p.X > l.RightWallX {
			b.Body().ApplyImpulseAtLocalPoint(cp.Vector{Y: -r.Charge}, cp.Vector{})
			launched = true
		}
	}
	if launched {
		r.g.Sound.Play(SoundLaunch)
	}
	r.Charge = 0
	r.launchHeld = false
}

// drain takes a ball out of play and fires ball_lost.
func (r *Round) drain(b *objects.GameObject) {
	r.removeActive(b)
	arbiters := []*objects.GameObject{b}
	r.g.fireCards(effects.TriggerBallLost, arbiters)
	r.g.fireObject(b, effects.TriggerBallLost, arbiters)
}

func (r *Round) removeActive(b *objects.GameObject) {
	if i := slices.Index(r.Active, b); i >= 0 {
		r.Active = slices.Delete(r.Active, i, i+1)
	}
	b.Remove()
}

func (r *Round) addText(text string, pos cp.Vector, c core.Color) {
	r.HitTexts = append(r.HitTexts, HitText{Text: text, Pos: pos, Color: c, Life: r.g.cfg.Round.HitTextLife})
}

// Finish ends a finishable round early. The balls still queued count
// towards the reward.
func (r *Round) Finish() bool {
	if r.State != RoundRunning || !r.Finishable() {
		return false
	}
	r.finish()
	return true
}

func (r *Round) finish() {
	r.BallsLeft = len(r.Queue)
	if r.Charged() != nil {
		r.BallsLeft++
	}
	r.State = RoundOver
	r.cleanup()
}

// Abandon leaves the round without results. Every applied card is revoked
// and every ball body is removed before it returns.
func (r *Round) Abandon() {
	if r.State != RoundRunning && r.State != RoundLoading {
		return
	}
	r.State = RoundMenuExit
	r.cleanup()
}

func (r *Round) cleanup() {
	g := r.g
	f := g.Field
	for _, it := range r.Applied.Drain() {
		it.EndUse(g)
	}
	for _, b := range r.Active {
		b.Remove()
	}
	r.Active = nil
	for _, b := range f.Arena.Filter(func(o *objects.GameObject) bool { return o.Kind == objects.KindBall }) {
		if !f.Owned(b) {
			f.Factory.Destroy(b)
		} else {
			b.Remove()
		}
	}
	f.SetFlippers(true, false)
	f.SetFlippers(false, false)
	f.Table.SetShield(false)
	f.OnHit = nil
	r.pending = nil
	r.Charge = 0
	r.launchHeld = false
}

// Run drives the round headlessly. input returns the controls for frame i.
func (r *Round) Run(input func(frame int) Controls, frameDt float64, maxFrames int) (RoundState, float64) {
	for i := 0; i < maxFrames && r.State == RoundRunning; i++ {
		r.Advance(frameDt, input(i))
	}
	return r.State, r.Score
}
