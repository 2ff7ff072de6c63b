package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

// Run outcomes kept in the run history.
const (
	OutcomeLost  = "lost"
	OutcomeSaved = "saved" // left mid-run, the save slot holds the rest
)

// runReporter is implemented by games that have runs with an identity.
type runReporter interface {
	RunInfo() (id string, seed int64)
}

// Recorder writes scores and run history as a game is played.
// A Recorder without a store only tracks state.
type Recorder struct {
	store  *storage.Store
	logger *log.Logger
	now    func() time.Time

	runID    string
	seed     int64
	started  time.Time
	recorded bool
}

// NewRecorder creates a recorder backed by store, which may be nil.
func NewRecorder(store *storage.Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, logger: logger.WithPrefix("record"), now: time.Now}
}

// Observe is called after every step. It notices new runs and records a
// run once when it ends.
func (r *Recorder) Observe(g registry.Game, st core.GameState) {
	r.track(g)
	if !st.GameOver || r.recorded {
		return
	}
	r.recorded = true
	if r.store == nil {
		return
	}
	if st.Score > 0 {
		if _, err := r.store.SaveScore(g.ID(), r.runID, st.Score, st.Round); err != nil {
			r.logger.Warn("cannot save score", "error", err)
		}
	}
	r.saveRun(g, st, OutcomeLost)
}

// Leave records a run that is still going when the player leaves.
func (r *Recorder) Leave(g registry.Game, st core.GameState) {
	r.track(g)
	if r.recorded || r.runID == "" {
		return
	}
	r.recorded = true
	if r.store == nil {
		return
	}
	r.saveRun(g, st, OutcomeSaved)
}

func (r *Recorder) track(g registry.Game) {
	rep, ok := g.(runReporter)
	if !ok {
		return
	}
	id, seed := rep.RunInfo()
	if id == r.runID {
		return
	}
	r.runID = id
	r.seed = seed
	r.started = r.now()
	r.recorded = false
}

func (r *Recorder) saveRun(g registry.Game, st core.GameState, outcome string) {
	if r.runID == "" {
		return
	}
	err := r.store.SaveRun(storage.RunEntry{
		ID:        r.runID,
		GameID:    g.ID(),
		Seed:      r.seed,
		Rounds:    st.Round,
		Score:     st.Score,
		Money:     st.Money,
		Outcome:   outcome,
		StartedAt: r.started,
		EndedAt:   r.now(),
	})
	if err != nil {
		r.logger.Warn("cannot save run", "run", r.runID, "error", err)
		return
	}
	r.logger.Debug("run recorded", "run", r.runID, "outcome", outcome, "round", st.Round)
}
