// Package config provides YAML-based configuration for the pinball table,
// its objects, the shop catalog and the economy.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pinball/internal/effects"
)

// Point is a 2D position in table pixels. In YAML it is written as [x, y].
type Point struct {
	X, Y float64
}

// UnmarshalYAML accepts either a [x, y] sequence or an {x, y} mapping.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("config: point needs 2 coordinates, got %d", len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	}
	var m struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	p.X, p.Y = m.X, m.Y
	return nil
}

// MarshalYAML writes the point as a [x, y] sequence.
func (p Point) MarshalYAML() (any, error) {
	return []float64{p.X, p.Y}, nil
}

// PinballConfig holds all pinball parameters.
type PinballConfig struct {
	Physics  PhysicsConfig          `yaml:"physics"`
	Table    TableConfig            `yaml:"table"`
	Flippers FlipperConfig          `yaml:"flippers"`
	Launch   LaunchConfig           `yaml:"launch"`
	Round    RoundConfig            `yaml:"round"`
	Economy  EconomyConfig          `yaml:"economy"`
	Shop     ShopConfig             `yaml:"shop"`
	Objects  map[string]ObjectClass `yaml:"objects"`
	Board    []Placement            `yaml:"board"`
	Catalog  []ItemSpec             `yaml:"catalog"`
	Textures map[string]string      `yaml:"textures"` // texture name -> glyph
}

// PhysicsConfig contains simulation constants.
type PhysicsConfig struct {
	Gravity       Point   `yaml:"gravity"`
	FPS           int     `yaml:"fps"`            // simulation sub-steps per second
	MaxSpeed      float64 `yaml:"max_speed"`      // ball speed clamp, px/s
	Iterations    int     `yaml:"iterations"`     // solver iterations
	Damping       float64 `yaml:"damping"`        // fraction of velocity kept per second
	SnapTolerance float64 `yaml:"snap_tolerance"` // flipper snap, radians
}

// MaxDt returns the fixed sub-step duration.
func (p PhysicsConfig) MaxDt() float64 {
	if p.FPS <= 0 {
		return 1.0 / 180
	}
	return 1.0 / float64(p.FPS)
}

// TableConfig describes the table boundaries in pixels.
type TableConfig struct {
	ScreenHeight          float64 `yaml:"screen_height"`
	LeftWallX             float64 `yaml:"left_wall_x"`
	TopWallY              float64 `yaml:"top_wall_y"`
	FieldWidth            float64 `yaml:"field_width"`
	FieldHeight           float64 `yaml:"field_height"`
	LaunchOpeningHeight   float64 `yaml:"launch_opening_height"`
	BottomOpeningDistance float64 `yaml:"bottom_opening_distance"`
	BottomOpeningHeight   float64 `yaml:"bottom_opening_height"`
	LaunchRampWidth       float64 `yaml:"launch_ramp_width"`
	CurveRadius           float64 `yaml:"curve_radius"`
	CurveSegments         int     `yaml:"curve_segments"`
	DividerX              float64 `yaml:"divider_x"`
	DividerY1             float64 `yaml:"divider_y1"`
	DividerY2             float64 `yaml:"divider_y2"`
	WallRadius            float64 `yaml:"wall_radius"`
	WallElasticity        float64 `yaml:"wall_elasticity"`
	ShieldElasticity      float64 `yaml:"shield_elasticity"`
	ShieldOffset          float64 `yaml:"shield_offset"` // below the flipper line
	RampDrop              float64 `yaml:"ramp_drop"`     // height the ramp recline rises over the lane
	RampMargin            float64 `yaml:"ramp_margin"`   // tolerance for "on the recline line"
}

// FlipperConfig contains flipper geometry and spring settings.
// Angles are in degrees.
type FlipperConfig struct {
	Length       float64 `yaml:"length"`
	Width        float64 `yaml:"width"`
	Mass         float64 `yaml:"mass"`
	Stiffness    float64 `yaml:"stiffness"`
	Damping      float64 `yaml:"damping"`
	Elasticity   float64 `yaml:"elasticity"`
	Friction     float64 `yaml:"friction"`
	LeftDefault  float64 `yaml:"left_default_angle"`
	LeftActive   float64 `yaml:"left_active_angle"`
	RightDefault float64 `yaml:"right_default_angle"`
	RightActive  float64 `yaml:"right_active_angle"`
	LeftPos      Point   `yaml:"left_pos"`
	RightPos     Point   `yaml:"right_pos"`
	SnapRadius   float64 `yaml:"snap_radius"` // placement distance that replaces a flipper
}

// LaunchConfig contains plunger settings.
type LaunchConfig struct {
	ChargeRate float64 `yaml:"charge_rate"` // impulse per second while held
	MaxImpulse float64 `yaml:"max_impulse"`
	AreaHeight float64 `yaml:"area_height"` // balls this close to the lane bottom can be launched
}

// RoundConfig contains round rules.
type RoundConfig struct {
	Balls       int       `yaml:"balls"`
	DrainMargin float64   `yaml:"drain_margin"` // below screen height
	ScoreNeeded []float64 `yaml:"score_needed"`
	HitTextLife float64   `yaml:"hit_text_life"`
	HitTextRise float64   `yaml:"hit_text_rise"` // px/s
	BallClass   string    `yaml:"ball_class"`
	GoldenClass string    `yaml:"golden_class"`
}

// EconomyConfig contains reward and interest constants.
type EconomyConfig struct {
	StartMoney         float64 `yaml:"start_money"`
	BaseAward          float64 `yaml:"base_award"`
	ExtraAwardPerOrder float64 `yaml:"extra_award_per_order"`
	ExtraAwardPerBall  float64 `yaml:"extra_award_per_ball"`
	InterestRate       float64 `yaml:"interest_rate"`
	InterestCap        float64 `yaml:"interest_cap"`
	ScoreMultiplier    float64 `yaml:"score_multiplier"`
}

// ShopConfig controls shop generation.
type ShopConfig struct {
	InventorySize   int                           `yaml:"inventory_size"`
	RerollStartCost float64                       `yaml:"reroll_start_cost"`
	RerollStep      float64                       `yaml:"reroll_step"`
	Slots           map[string]int                `yaml:"slots"`    // category -> offers per visit
	Rarities        map[string]map[string]float64 `yaml:"rarities"` // category -> rarity -> weight
}

// ObjectClass defines a kind of table object (ball, bumper, pin, flipper).
type ObjectClass struct {
	Kind     string            `yaml:"kind"`
	Name     string            `yaml:"name"`
	Texture  string            `yaml:"texture"`
	Size     float64           `yaml:"size"`
	Mass     float64           `yaml:"mass"`
	Force    float64           `yaml:"force"` // elasticity
	Friction float64           `yaml:"friction"`
	Cooldown float64           `yaml:"cooldown"`
	Effects  []effects.Binding `yaml:"effects"`
}

// Placement puts an object class on the board.
type Placement struct {
	Class  string `yaml:"class"`
	Pos    Point  `yaml:"pos"`
	IsLeft bool   `yaml:"is_left,omitempty"`
}

// Item types.
const (
	ItemCard      = "card"
	ItemBuildable = "buildable"
	ItemImmediate = "immediate"
	ItemPack      = "pack"
)

// ItemSpec is a catalog entry the shop can offer.
type ItemSpec struct {
	Name        string               `yaml:"name"`
	Type        string               `yaml:"type"`
	Category    string               `yaml:"category"`
	Price       int                  `yaml:"price"`
	Rarity      string               `yaml:"rarity"`
	Description string               `yaml:"description"`
	Effects     []effects.Binding    `yaml:"effects"`
	Functional  []effects.Functional `yaml:"functional"`
	Class       string               `yaml:"class,omitempty"` // buildable object class
	Pack        PackSpec             `yaml:"pack,omitempty"`
}

// PackSpec describes the contents of a pack item.
type PackSpec struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"` // items shown
	Take     int    `yaml:"take"`  // items the player may keep
	Mode     string `yaml:"mode"`  // "oneof" or "all"
}

// FindItem returns the catalog entry with the given name.
func (c *PinballConfig) FindItem(name string) (ItemSpec, bool) {
	for _, it := range c.Catalog {
		if it.Name == name {
			return it, true
		}
	}
	return ItemSpec{}, false
}

// ItemsIn returns the catalog entries of a category.
func (c *PinballConfig) ItemsIn(category string) []ItemSpec {
	var out []ItemSpec
	for _, it := range c.Catalog {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}
