package pinball

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCollisionScoresBump(t *testing.T) {
	g := newTestGame(t)
	r := g.Round
	ball := r.Active[0]
	bumper := firstObject(t, g, "bumper_big")

	g.collide(ball, bumper)

	if r.Score != 100 {
		t.Errorf("Score = %v, expected 100", r.Score)
	}
	if g.Money != 10 {
		t.Errorf("Money = %v, expected 10", g.Money)
	}
	if len(r.HitTexts) != 2 {
		t.Fatalf("hit texts = %d, expected 2", len(r.HitTexts))
	}
	if r.HitTexts[0].Text != "+100" {
		t.Errorf("score text = %q, expected %q", r.HitTexts[0].Text, "+100")
	}
	if r.HitTexts[1].Text != "$10" {
		t.Errorf("money text = %q, expected %q", r.HitTexts[1].Text, "$10")
	}
	if bumper.Activations != 1 {
		t.Errorf("Activations = %d, expected 1", bumper.Activations)
	}
}

func TestCollisionUsesScoreMultiplier(t *testing.T) {
	g := newTestGame(t)
	g.Economy.ScoreMultiplier = 1.5

	g.collide(g.Round.Active[0], firstObject(t, g, "bumper_small"))

	if g.Round.Score != 75 {
		t.Errorf("Score = %v, expected 75", g.Round.Score)
	}
}

func TestCollisionWithActiveMultiplierCard(t *testing.T) {
	g := newTestGame(t)
	r := g.Round
	if !g.Inventory.AddItem(g, item(t, g, "Bonus")) {
		t.Fatal("AddItem(Bonus) failed")
	}
	if !g.UseItem(0) {
		t.Fatal("UseItem(Bonus) failed")
	}
	if r.Applied.Len() != 1 {
		t.Fatalf("applied = %d, expected 1", r.Applied.Len())
	}

	g.collide(r.Active[0], firstObject(t, g, "bumper_big"))

	if r.Score != 500 {
		t.Errorf("Score = %v, expected 500", r.Score)
	}
	if r.HitTexts[0].Text != "+100 x5" {
		t.Errorf("score text = %q, expected %q", r.HitTexts[0].Text, "+100 x5")
	}
}

func TestLockedObjectDoesNotScore(t *testing.T) {
	g := newTestGame(t)
	bumper := firstObject(t, g, "bumper_big")
	bumper.CooldownTimer = 1

	g.collide(g.Round.Active[0], bumper)

	if g.Round.Score != 0 {
		t.Errorf("Score = %v, expected 0", g.Round.Score)
	}
}

func TestFlipperContactDoesNotScore(t *testing.T) {
	g := newTestGame(t)
	flipper := g.Field.Flippers(true)[0]

	g.collide(g.Round.Active[0], flipper)

	if g.Round.Score != 0 || len(g.Round.HitTexts) != 0 {
		t.Errorf("Score = %v texts = %d, expected nothing", g.Round.Score, len(g.Round.HitTexts))
	}
}

func TestScoringCollisionFiresAfterScore(t *testing.T) {
	g := newTestGame(t)
	r := g.Round
	if !g.Inventory.AddItem(g, item(t, g, "Showman")) {
		t.Fatal("AddItem(Showman) failed")
	}

	// a locked object earns nothing, so no applause
	locked := firstObject(t, g, "bumper_small")
	locked.CooldownTimer = 1
	g.collide(r.Active[0], locked)
	if len(r.HitTexts) != 0 {
		t.Fatalf("hit texts = %d, expected 0", len(r.HitTexts))
	}

	g.collide(r.Active[0], firstObject(t, g, "bumper_big"))
	found := false
	for _, ht := range r.HitTexts {
		if ht.Text == "Nice!" {
			found = true
		}
	}
	if !found {
		t.Errorf("hit texts = %v, expected the splash", r.HitTexts)
	}
}

func TestCooldownBindingsFireOnce(t *testing.T) {
	g := newTestGame(t)
	r := g.Round
	beacon, err := g.Field.Place("beacon", cp.Vector{X: 120, Y: 550})
	if err != nil {
		t.Fatalf("Place(beacon): %v", err)
	}

	g.collide(r.Active[0], beacon)
	if r.Score != 25 || g.Money != 1 {
		t.Errorf("score/money = %v/%v, expected 25/1", r.Score, g.Money)
	}
	if beacon.Flags[flagHits] != 1 {
		t.Errorf("hits flag = %v, expected 1", beacon.Flags[flagHits])
	}

	// still cooling down: neither binding runs
	g.collide(r.Active[0], beacon)
	if r.Score != 25 {
		t.Errorf("Score = %v, expected 25", r.Score)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{100, "100"},
		{0, "0"},
		{-5, "-5"},
		{1.5, "1.5"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.expected {
			t.Errorf("formatAmount(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		base, multi float64
		expected    string
	}{
		{50, 1, "+50"},
		{0, 1, "+0"},
		{-50, 1, "-50"},
		{12.5, 2, "+12.5 x2"},
		{-10, 1.5, "-10 x1.5"},
	}
	for _, tt := range tests {
		if got := scoreLabel(tt.base, tt.multi); got != tt.expected {
			t.Errorf("scoreLabel(%v, %v) = %q, expected %q", tt.base, tt.multi, got, tt.expected)
		}
	}
}
