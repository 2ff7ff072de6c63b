// Package pinball implements the pinball roguelike: rounds on a physics
// table, a shop between rounds and cards that change the rules.
package pinball

import (
	"maps"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/inventory"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/save"
)

// Mode is the screen the game is on.
type Mode string

const (
	ModeRound    Mode = "round"
	ModeResults  Mode = "results"
	ModeShop     Mode = "shop"
	ModePlace    Mode = "place"
	ModePack     Mode = "pack"
	ModeGameOver Mode = "gameover"
	ModeExit     Mode = "exit"
)

// GameID is the registry and score storage key.
const GameID = "pinball"

// noticeTicks is how long a notice stays on screen, in platform ticks.
const noticeTicks = 120

// placeStep is how far one key press moves the placement cursor.
const placeStep = 10.0

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Persister stores the run between sessions.
type Persister interface {
	Save(d save.Data) error
	Load() (save.Data, error)
	Clear() error
}

// Options configure new games.
type Options struct {
	ConfigPath string
	Config     *config.PinballConfig // takes precedence over ConfigPath
	Store      Persister
	Logger     *log.Logger
	Balls      int // overrides the starting ball count when > 0
}

var defaults Options

// Configure sets the options used by New. The CLI calls it before the
// platform creates games through the registry.
func Configure(o Options) {
	defaults = o
}

type cursor struct {
	pane  int // 0 offers, 1 inventory
	offer int
	inv   int
	pack  int
}

type notice struct {
	text  string
	until uint64
}

// Game implements the pinball run.
type Game struct {
	opts    Options
	cfg     config.PinballConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
	rng     *SimpleRNG
	seed    int64

	cards      *effects.Registry[*EffectContext]
	objfuncs   *effects.Registry[*EffectContext]
	predicates *effects.Predicates[*Game]

	// Run state
	RunID       string
	RoundIndex  int
	Money       float64
	Flags       map[string]float64
	Economy     config.EconomyConfig
	Rarities    map[string]map[string]float64
	Scale       float64 // score requirement multiplier
	Shift       float64 // score requirement offset
	RerollStart float64
	RerollCost  float64
	Bonus       Bonus

	Field     *Field
	Inventory *inventory.PlayerInventory
	Round     *Round
	Results   Results
	Shop      Shop
	Pack      *PackOpening
	Sound     Sounds

	placing *Placing
	mode    Mode
	cursor  cursor
	notices []notice
	tick    uint64
	err     error
}

// New creates a game with the options set by Configure.
func New() *Game {
	return NewWithOptions(defaults)
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(o Options) *Game {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	if o.Store == nil {
		o.Store = save.NewStore(nil, logger)
	}
	return &Game{opts: o, logger: logger.WithPrefix("pinball")}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pinball"
}

// Reset starts the saved run if there is one, or a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc
	g.tick = 0
	g.notices = nil
	g.err = nil
	g.cfg = g.loadConfig()

	g.cards = newCardEffects(g.logger)
	g.objfuncs = newObjectEffects(g.logger)
	g.predicates = newPredicates(g.logger)

	d, err := g.opts.Store.Load()
	if err == nil && Mode(d.Mode) != ModeGameOver {
		err = g.restore(d)
		if err == nil {
			return
		}
		g.logger.Warn("cannot restore run, starting over", "error", err)
	}
	g.newRun(rc.Seed)
}

func (g *Game) loadConfig() config.PinballConfig {
	var cfg config.PinballConfig
	switch {
	case g.opts.Config != nil:
		cfg = *g.opts.Config
	default:
		loaded, err := config.LoadPinball(g.opts.ConfigPath)
		if err != nil {
			g.logger.Warn("cannot load config, using defaults", "error", err)
			loaded = config.Default()
		}
		cfg = loaded
	}
	if g.opts.Balls > 0 {
		cfg.Round.Balls = g.opts.Balls
	}
	if cfg.Economy.ScoreMultiplier == 0 {
		cfg.Economy.ScoreMultiplier = 1
	}
	return cfg
}

// resetRun clears the run state and rebuilds the table.
func (g *Game) resetRun(seed int64) error {
	g.seed = seed
	g.rng = NewSimpleRNG(seed)
	g.RoundIndex = 0
	g.Money = g.cfg.Economy.StartMoney
	g.Flags = map[string]float64{}
	g.Economy = g.cfg.Economy
	g.Rarities = make(map[string]map[string]float64, len(g.cfg.Shop.Rarities))
	for cat, w := range g.cfg.Shop.Rarities {
		g.Rarities[cat] = maps.Clone(w)
	}
	g.Scale, g.Shift = 1, 0
	g.RerollStart = g.cfg.Shop.RerollStartCost
	g.RerollCost = g.RerollStart
	g.Bonus = Bonus{}
	g.Inventory = inventory.NewPlayerInventory(g.cfg.Shop.InventorySize, g.logger)
	g.Round = nil
	g.Results = Results{}
	g.Shop = Shop{}
	g.Pack = nil
	g.placing = nil
	g.cursor = cursor{}

	field, err := NewField(&g.cfg)
	if err != nil {
		g.Field = nil
		return err
	}
	g.Field = field
	return nil
}

func (g *Game) newRun(seed int64) {
	g.RunID = uuid.NewString()
	if err := g.resetRun(seed); err != nil {
		g.fail(err)
		return
	}
	g.StartRound()
}

// fail stops the run on a setup error.
func (g *Game) fail(err error) {
	g.logger.Error("cannot build table", "error", err)
	g.err = err
	g.mode = ModeGameOver
}

// Err returns the setup error that stopped the run, if any.
func (g *Game) Err() error {
	return g.err
}

// RunInfo identifies the current run for run history.
func (g *Game) RunInfo() (id string, seed int64) {
	return g.RunID, g.seed
}

// Config returns the active configuration.
func (g *Game) Config() *config.PinballConfig {
	return &g.cfg
}

// Mode returns the current screen.
func (g *Game) Mode() Mode {
	return g.mode
}

// BaseScoreNeeded is the table requirement of the current round.
func (g *Game) BaseScoreNeeded() float64 {
	return config.ScoreNeeded(g.cfg.Round.ScoreNeeded, g.RoundIndex)
}

// ScoreNeeded is the requirement after card modifiers.
func (g *Game) ScoreNeeded() float64 {
	return g.BaseScoreNeeded()*g.Scale + g.Shift
}

// Call applies a card binding. Game is the inventory's dispatcher.
func (g *Game) Call(b effects.Binding, it *inventory.Item) bool {
	return g.cards.Call(&EffectContext{Game: g, Card: it}, b)
}

// Recall revokes a card binding.
func (g *Game) Recall(b effects.Binding, it *inventory.Item) bool {
	return g.cards.Recall(&EffectContext{Game: g, Card: it}, b)
}

// ApplyAll applies card bindings atomically.
func (g *Game) ApplyAll(bs []effects.Binding, it *inventory.Item) bool {
	return g.cards.ApplyAll(&EffectContext{Game: g, Card: it}, bs)
}

// RecallAll revokes card bindings atomically.
func (g *Game) RecallAll(bs []effects.Binding, it *inventory.Item) bool {
	return g.cards.RecallAll(&EffectContext{Game: g, Card: it}, bs)
}

// StartRound saves the run and starts the next round.
func (g *Game) StartRound() {
	g.Pack = nil
	g.placing = nil
	g.Round = newRound(g)
	g.mode = ModeRound
	g.persist(ModeRound)
	g.Round.Start()
}

// AbandonRound leaves the running round. The save from the start of the
// round is kept, so the round can be replayed.
func (g *Game) AbandonRound() {
	if g.Round == nil {
		return
	}
	g.Round.Abandon()
	g.mode = ModeExit
}

func (g *Game) endRound() {
	g.Results = g.payout()
	g.mode = ModeResults
	if !g.Results.Won {
		if err := g.opts.Store.Clear(); err != nil {
			g.logger.Warn("cannot clear save", "error", err)
		}
		return
	}
	g.RoundIndex++
	g.persist(ModeShop)
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	switch g.mode {
	case ModeRound:
		g.stepRound(in)
	case ModeResults:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionNext) {
			if g.Results.Won {
				g.OpenShop()
			} else {
				g.mode = ModeGameOver
			}
		}
	case ModeShop:
		g.stepShop(in)
	case ModePlace:
		g.stepPlace(in)
	case ModePack:
		g.stepPack(in)
	case ModeGameOver:
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
	case ModeExit:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.Reset(g.runtime)
		}
	}

	g.expireNotices()
	return core.StepResult{State: g.State(), Sounds: g.Sound.Drain()}
}

// Restart throws the saved run away and starts a new one.
func (g *Game) Restart() {
	if err := g.opts.Store.Clear(); err != nil {
		g.logger.Warn("cannot clear save", "error", err)
	}
	g.newRun(int64(g.rng.Next() >> 1)) //#nosec G115 -- shifted into int64 range
}

func (g *Game) frameDt() float64 {
	return 1.0 / float64(g.runtime.TickRate)
}

func (g *Game) stepRound(in core.InputFrame) {
	r := g.Round
	if in.Has(core.ActionPause) {
		r.Paused = !r.Paused
	}
	if r.Paused {
		if in.Has(core.ActionBack) {
			g.AbandonRound()
		}
		return
	}

	n := g.Inventory.Len()
	switch {
	case in.Has(core.ActionUp) && n > 0:
		g.cursor.inv = (g.cursor.inv - 1 + n) % n
	case in.Has(core.ActionDown) && n > 0:
		g.cursor.inv = (g.cursor.inv + 1) % n
	case in.Has(core.ActionUse):
		g.UseItem(g.cursor.inv)
	case in.Has(core.ActionNext) || in.Has(core.ActionConfirm):
		r.Finish()
	}

	r.Advance(g.frameDt(), Controls{
		Launch:    in.IsHeld(core.ActionLaunch) || in.Has(core.ActionLaunch),
		FlipLeft:  in.IsHeld(core.ActionLeft) || in.Has(core.ActionLeft),
		FlipRight: in.IsHeld(core.ActionRight) || in.Has(core.ActionRight),
	})
	g.clampCursor()
	if r.State == RoundOver {
		g.endRound()
	}
}

func (g *Game) stepShop(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.pane = 0
	case in.Has(core.ActionRight):
		g.cursor.pane = 1
	case in.Has(core.ActionUp):
		g.moveCursor(-1)
	case in.Has(core.ActionDown):
		g.moveCursor(1)
	case in.Has(core.ActionConfirm):
		if g.cursor.pane == 0 {
			g.Buy(g.cursor.offer)
		} else {
			g.UseItem(g.cursor.inv)
		}
	case in.Has(core.ActionUse) && g.cursor.pane == 1:
		g.UseItem(g.cursor.inv)
	case in.Has(core.ActionSell) && g.cursor.pane == 1:
		g.SellItem(g.cursor.inv)
	case in.Has(core.ActionReroll):
		g.Reroll()
	case in.Has(core.ActionNext):
		g.StartRound()
	}
	g.clampCursor()
}

func (g *Game) stepPlace(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.MovePlacement(cp.Vector{X: -placeStep})
	case in.Has(core.ActionRight):
		g.MovePlacement(cp.Vector{X: placeStep})
	case in.Has(core.ActionUp):
		g.MovePlacement(cp.Vector{Y: -placeStep})
	case in.Has(core.ActionDown):
		g.MovePlacement(cp.Vector{Y: placeStep})
	case in.Has(core.ActionConfirm):
		g.ConfirmPlacement()
	case in.Has(core.ActionBack):
		g.CancelPlacement()
	}
}

func (g *Game) stepPack(in core.InputFrame) {
	if g.Pack == nil {
		g.mode = ModeShop
		return
	}
	n := len(g.Pack.Items)
	switch {
	case in.Has(core.ActionUp) && n > 0:
		g.cursor.pack = (g.cursor.pack - 1 + n) % n
	case in.Has(core.ActionDown) && n > 0:
		g.cursor.pack = (g.cursor.pack + 1) % n
	case in.Has(core.ActionConfirm):
		g.TakeFromPack(g.cursor.pack)
	case in.Has(core.ActionBack):
		g.ClosePack()
	}
}

func (g *Game) moveCursor(d int) {
	if g.cursor.pane == 0 {
		if n := len(g.Shop.Offers); n > 0 {
			g.cursor.offer = (g.cursor.offer + d + n) % n
		}
		return
	}
	if n := g.Inventory.Len(); n > 0 {
		g.cursor.inv = (g.cursor.inv + d + n) % n
	}
}

func (g *Game) clampCursor() {
	g.cursor.inv = core.Clamp(g.cursor.inv, 0, max(g.Inventory.Len()-1, 0))
	g.cursor.offer = core.Clamp(g.cursor.offer, 0, max(len(g.Shop.Offers)-1, 0))
}

// notify shows a short message.
func (g *Game) notify(text string) {
	g.notices = append(g.notices, notice{text: text, until: g.tick + noticeTicks})
}

// refuse reports a rejected action.
func (g *Game) refuse(text string) {
	g.notify(text)
	g.Sound.Play(SoundBuzz)
}

func (g *Game) expireNotices() {
	kept := g.notices[:0]
	for _, n := range g.notices {
		if n.until > g.tick {
			kept = append(kept, n)
		}
	}
	g.notices = kept
}

// Notices returns the messages currently shown.
func (g *Game) Notices() []string {
	out := make([]string, len(g.notices))
	for i, n := range g.notices {
		out[i] = n.text
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Money:    int(g.Money),
		Round:    g.RoundIndex + 1,
		Mode:     string(g.mode),
		GameOver: g.mode == ModeGameOver,
	}
	if g.Round != nil {
		st.Score = int(g.Round.Score)
		st.Required = int(g.Round.Required)
		st.Paused = g.Round.Paused
	}
	return st
}
