package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg := Default()

	if cfg.Physics.FPS != 180 {
		t.Errorf("Physics.FPS = %d, expected 180", cfg.Physics.FPS)
	}
	if cfg.Physics.Gravity != (Point{X: 0, Y: 900}) {
		t.Errorf("Physics.Gravity = %+v, expected {0 900}", cfg.Physics.Gravity)
	}
	if len(cfg.Board) != 8 {
		t.Errorf("len(Board) = %d, expected 8", len(cfg.Board))
	}
	for _, p := range cfg.Board {
		if _, ok := cfg.Objects[p.Class]; !ok {
			t.Errorf("board placement uses unknown class %q", p.Class)
		}
	}
	for _, it := range cfg.Catalog {
		if it.Type == ItemBuildable {
			if _, ok := cfg.Objects[it.Class]; !ok {
				t.Errorf("buildable %q uses unknown class %q", it.Name, it.Class)
			}
		}
		if it.Type == ItemPack && it.Pack.Count == 0 {
			t.Errorf("pack %q has no contents", it.Name)
		}
	}

	bonus, ok := cfg.FindItem("Bonus")
	if !ok {
		t.Fatal("catalog should contain Bonus")
	}
	b := bonus.Effects[0]
	if b.Trigger != effects.TriggerCollision || b.Usage != effects.UsageActive || b.Duration != 5 {
		t.Errorf("Bonus binding = %+v", b)
	}
	if b.Params.Mode(1) != effects.ModeMult {
		t.Errorf("Bonus mode = %v, expected m", b.Params.Mode(1))
	}
}

func TestHardcodedDefaultsMatchTable(t *testing.T) {
	embedded := Default()
	hard := DefaultPinballConfig()

	if embedded.Table != hard.Table {
		t.Errorf("Table differs:\n embedded %+v\n hardcoded %+v", embedded.Table, hard.Table)
	}
	if embedded.Flippers != hard.Flippers {
		t.Errorf("Flippers differ:\n embedded %+v\n hardcoded %+v", embedded.Flippers, hard.Flippers)
	}
}

func TestLayout(t *testing.T) {
	cfg := DefaultPinballConfig()
	l, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	tests := []struct {
		name     string
		got      Point
		expected Point
	}{
		{"gate start", l.GateStart, Point{550, 50}},
		{"gate end", l.GateEnd, Point{550, 550}},
		{"ramp start", l.RampStart, Point{550, 550}},
		{"ramp end", l.RampEnd, Point{600, 520}},
		{"ball start", l.BallStart, Point{575, 720}},
		{"left recline end", l.ReclineLeftEnd, Point{170, 740}},
		{"right recline end", l.ReclineRightEnd, Point{430, 740}},
		{"shield start", l.ShieldStart, Point{220, 800}},
		{"right curve center", l.CurveCenterRight, Point{500, 150}},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %+v, expected %+v", tc.name, tc.got, tc.expected)
		}
	}

	if l.DrainY != 900 {
		t.Errorf("DrainY = %v, expected 900", l.DrainY)
	}
	if l.LaunchAreaTop != 700 {
		t.Errorf("LaunchAreaTop = %v, expected 700", l.LaunchAreaTop)
	}
	if l.BottomOpeningTop != 490 {
		t.Errorf("BottomOpeningTop = %v, expected 490", l.BottomOpeningTop)
	}
}

func TestLayoutInvalid(t *testing.T) {
	cfg := DefaultPinballConfig()
	cfg.Table.FieldWidth = 0
	if _, err := cfg.Layout(); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("Layout() error = %v, expected ErrInvalidLayout", err)
	}

	cfg = DefaultPinballConfig()
	cfg.Table.BottomOpeningDistance = 650
	if _, err := cfg.Layout(); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("overlapping openings: error = %v, expected ErrInvalidLayout", err)
	}
}

func TestScoreNeeded(t *testing.T) {
	table := []float64{1000, 2000, 5000}

	tests := []struct {
		round    int
		expected float64
	}{
		{-1, 1000},
		{0, 1000},
		{2, 5000},
		{3, 12500},
		{4, 31250},
	}
	for _, tc := range tests {
		if got := ScoreNeeded(table, tc.round); got != tc.expected {
			t.Errorf("ScoreNeeded(%d) = %v, expected %v", tc.round, got, tc.expected)
		}
	}

	if got := ScoreNeeded(nil, 2); got != 4000 {
		t.Errorf("ScoreNeeded(nil, 2) = %v, expected 4000", got)
	}
}

func TestLoadPinballCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("round:\n  balls: 7\n  score_needed: [10]\nflippers:\n  left_pos: {x: 1, y: 2}\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPinball(path)
	if err != nil {
		t.Fatalf("LoadPinball: %v", err)
	}
	if cfg.Round.Balls != 7 {
		t.Errorf("Round.Balls = %d, expected 7", cfg.Round.Balls)
	}
	if cfg.Flippers.LeftPos != (Point{1, 2}) {
		t.Errorf("LeftPos = %+v, expected {1 2}", cfg.Flippers.LeftPos)
	}

	if _, err := LoadPinball(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadPinball with a missing custom path should fail")
	}
}
