package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("pinball", "run", s, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "run", 500, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pinball", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, expected 3", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not in descending order: %v", scores)
	}
	if scores[0].RunID != "run" || scores[0].Round != 1 {
		t.Errorf("run/round = %q/%d, expected run/1", scores[0].RunID, scores[0].Round)
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 || other[0].Round != 3 {
		t.Errorf("other scores = %v, expected one at round 3", other)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("pinball", "", (i+1)*100, 1)
	}

	scores, err := store.TopScores("pinball", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, expected 3", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("pinball")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}

	store.SaveScore("pinball", "", 100, 1)
	store.SaveScore("pinball", "", 300, 2)
	store.SaveScore("pinball", "", 200, 1)

	high, err = store.HighScore("pinball")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	run := RunEntry{
		ID:        "a",
		GameID:    "pinball",
		Seed:      42,
		Rounds:    2,
		Score:     800,
		Money:     30,
		Outcome:   "lost",
		StartedAt: started,
		EndedAt:   started.Add(time.Minute),
	}
	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID("a")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil, expected the run")
	}
	if got.Seed != 42 || got.Rounds != 2 || got.Score != 800 || got.Outcome != "lost" {
		t.Errorf("RunByID() = %+v, expected the saved run", *got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, expected %v", got.StartedAt, started)
	}

	// same ID updates in place
	run.Rounds = 3
	run.Outcome = "quit"
	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, err := store.RecentRuns("pinball", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Rounds != 3 || runs[0].Outcome != "quit" {
		t.Errorf("RecentRuns() = %+v, expected one updated run", runs)
	}
}

func TestStoreSaveRunNeedsID(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveRun(RunEntry{GameID: "pinball"}); err == nil {
		t.Error("SaveRun() without an ID should fail")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", *got)
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{ID: "a", Rounds: 2, Score: 100},
		{ID: "b", Rounds: 4, Score: 50},
		{ID: "c", Rounds: 2, Score: 900},
	}
	for _, r := range runs {
		r.GameID = "pinball"
		r.Outcome = "lost"
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.ID, err)
		}
	}

	best, err := store.BestRuns("pinball", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	expected := []string{"b", "c", "a"}
	if len(best) != len(expected) {
		t.Fatalf("len(best) = %d, expected %d", len(best), len(expected))
	}
	for i, id := range expected {
		if best[i].ID != id {
			t.Errorf("best[%d] = %s, expected %s", i, best[i].ID, id)
		}
	}

	stats, err := store.GetGameStats("pinball")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.BestRound != 4 || stats.HighScore != 900 {
		t.Errorf("stats = %+v, expected 3 runs, best round 4, high 900", *stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pinball", "", 100, 1)
	store.SaveScore("other", "", 300, 1)
	store.SaveRun(RunEntry{ID: "a", GameID: "pinball", Outcome: "lost"})

	if err := store.ClearScores("pinball"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("pinball", 10); len(scores) != 0 {
		t.Errorf("pinball scores = %d, expected 0", len(scores))
	}
	if runs, _ := store.RecentRuns("pinball", 10); len(runs) != 0 {
		t.Errorf("pinball runs = %d, expected 0", len(runs))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other scores should not be affected")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
