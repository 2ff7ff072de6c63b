package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultPinballConfig returns the built-in configuration used when the
// embedded YAML cannot be parsed. It carries the table and a minimal catalog.
func DefaultPinballConfig() PinballConfig {
	bump := func(score, money float64) []effects.Binding {
		return []effects.Binding{{
			Effect:  "bump",
			Trigger: effects.TriggerCollision,
			Params:  effects.Params{score, money},
		}}
	}

	return PinballConfig{
		Physics: PhysicsConfig{
			Gravity:       Point{X: 0, Y: 900},
			FPS:           180,
			MaxSpeed:      2000,
			Iterations:    10,
			Damping:       1.0,
			SnapTolerance: 0.1,
		},
		Table: TableConfig{
			ScreenHeight:          850,
			LeftWallX:             50,
			TopWallY:              50,
			FieldWidth:            500,
			FieldHeight:           700,
			LaunchOpeningHeight:   100,
			BottomOpeningDistance: 200,
			BottomOpeningHeight:   60,
			LaunchRampWidth:       50,
			CurveRadius:           100,
			CurveSegments:         10,
			DividerX:              300,
			DividerY1:             150,
			DividerY2:             300,
			WallRadius:            5,
			WallElasticity:        0.5,
			ShieldElasticity:      1.5,
			ShieldOffset:          50,
			RampDrop:              30,
			RampMargin:            2,
		},
		Flippers: FlipperConfig{
			Length:       80,
			Width:        20,
			Mass:         100,
			Stiffness:    70000000,
			Damping:      3000000,
			Elasticity:   0.99,
			Friction:     0.8,
			LeftDefault:  30,
			LeftActive:   -30,
			RightDefault: -30,
			RightActive:  30,
			LeftPos:      Point{X: 220, Y: 750},
			RightPos:     Point{X: 380, Y: 750},
			SnapRadius:   80,
		},
		Launch: LaunchConfig{
			ChargeRate: 2000,
			MaxImpulse: 5000,
			AreaHeight: 50,
		},
		Round: RoundConfig{
			Balls:       3,
			DrainMargin: 50,
			ScoreNeeded: []float64{1000, 2000, 5000, 10000, 30000, 75000, 150000, 500000, 2000000, 10000000},
			HitTextLife: 1.0,
			HitTextRise: 30,
			BallClass:   "ball_standard",
			GoldenClass: "ball_golden",
		},
		Economy: EconomyConfig{
			BaseAward:          10,
			ExtraAwardPerOrder: 5,
			ExtraAwardPerBall:  2,
			InterestRate:       0.1,
			InterestCap:        5,
			ScoreMultiplier:    1,
		},
		Shop: ShopConfig{
			InventorySize:   5,
			RerollStartCost: 5,
			RerollStep:      1,
			Slots:           map[string]int{"cards": 2, "objects": 2, "effects": 1},
			Rarities: map[string]map[string]float64{
				"cards":   {"common": 10, "uncommon": 5},
				"objects": {"common": 10},
				"effects": {"common": 10},
			},
		},
		Objects: map[string]ObjectClass{
			"ball_standard": {Kind: "ball", Name: "Ball", Texture: "ball", Size: 15, Mass: 1, Force: 0.95, Friction: 0.9},
			"ball_golden":   {Kind: "ball", Name: "Golden Ball", Texture: "ball_golden", Size: 15, Mass: 1, Force: 0.95, Friction: 0.9},
			"bumper_big": {
				Kind: "bumper", Name: "Big Bumper", Texture: "bumper", Size: 30, Force: 1.3, Friction: 0.5,
				Effects: bump(100, 10),
			},
			"bumper_small": {
				Kind: "bumper", Name: "Small Bumper", Texture: "bumper_small", Size: 15, Force: 1.1, Friction: 0.5,
				Effects: bump(50, 0),
			},
			"flipper_standard": {Kind: "flipper", Name: "Flipper", Texture: "flipper", Force: 0.99, Friction: 0.8},
		},
		Board: []Placement{
			{Class: "bumper_big", Pos: Point{X: 200, Y: 300}},
			{Class: "bumper_big", Pos: Point{X: 400, Y: 300}},
			{Class: "bumper_big", Pos: Point{X: 300, Y: 500}},
			{Class: "bumper_small", Pos: Point{X: 300, Y: 100}},
			{Class: "bumper_small", Pos: Point{X: 150, Y: 400}},
			{Class: "bumper_small", Pos: Point{X: 450, Y: 400}},
			{Class: "flipper_standard", Pos: Point{X: 220, Y: 750}, IsLeft: true},
			{Class: "flipper_standard", Pos: Point{X: 380, Y: 750}},
		},
		Catalog: []ItemSpec{
			{
				Name: "SlowMo", Type: ItemCard, Category: "cards", Price: 90, Rarity: "common",
				Description: "Slow down time for 5 s",
				Effects: []effects.Binding{{
					Effect: "time_warp", Usage: effects.UsageActive, Duration: 5, Params: effects.Params{0.5},
				}},
			},
			{
				Name: "Spare Ball", Type: ItemCard, Category: "cards", Price: 150, Rarity: "uncommon",
				Description: "One more ball every round while held",
				Effects:     []effects.Binding{{Effect: "change_ball_amount", Params: effects.Params{1}}},
			},
			{
				Name: "+Ball", Type: ItemImmediate, Category: "effects", Price: 50, Rarity: "common",
				Description: "Additional ball",
				Effects:     []effects.Binding{{Effect: "change_ball_amount", Params: effects.Params{1}}},
			},
			{
				Name: "Small Bumper", Type: ItemBuildable, Category: "objects", Price: 50, Rarity: "common",
				Description: "Additional small bumper", Class: "bumper_small",
			},
		},
		Textures: map[string]string{
			"ball":         "●",
			"ball_golden":  "$",
			"bumper":       "O",
			"bumper_small": "o",
		},
	}
}
