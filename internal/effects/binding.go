// Package effects binds named behaviors to cards and table objects.
//
// A Binding names an effect function, the event that fires it and how long
// it lasts. Functions are looked up by name in a Registry at dispatch time,
// so configuration can refer to behaviors that the game registers later.
package effects

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Trigger is the game event that fires a binding.
type Trigger int

const (
	TriggerUse Trigger = iota // default: applied when the holder is used or acquired
	TriggerCollision
	TriggerScoringCollision
	TriggerRoundStart
	TriggerRoundWin
	TriggerShopCreate
	TriggerReroll
	TriggerCooldown
	TriggerBallLost
	TriggerRecharge
)

var triggerNames = map[Trigger]string{
	TriggerUse:              "use",
	TriggerCollision:        "collision",
	TriggerScoringCollision: "scoring_collision",
	TriggerRoundStart:       "round_start",
	TriggerRoundWin:         "round_win",
	TriggerShopCreate:       "shop_create",
	TriggerReroll:           "reroll",
	TriggerCooldown:         "cooldown",
	TriggerBallLost:         "ball_lost",
	TriggerRecharge:         "recharge",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Trigger(%d)", int(t))
}

// ParseTrigger converts a trigger name into a Trigger.
func ParseTrigger(s string) (Trigger, error) {
	if s == "" {
		return TriggerUse, nil
	}
	for t, name := range triggerNames {
		if name == s {
			return t, nil
		}
	}
	return TriggerUse, fmt.Errorf("effects: unknown trigger %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Trigger) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTrigger(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Trigger) MarshalYAML() (any, error) {
	return t.String(), nil
}

// Usage tells whether a binding is always on while held or must be used.
type Usage int

const (
	UsagePassive Usage = iota
	UsageActive
)

func (u Usage) String() string {
	if u == UsageActive {
		return "active"
	}
	return "passive"
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *Usage) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "", "passive":
		*u = UsagePassive
	case "active":
		*u = UsageActive
	default:
		return fmt.Errorf("effects: unknown usage %q", s)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (u Usage) MarshalYAML() (any, error) {
	return u.String(), nil
}

// Infinite is the duration of an effect that lasts while its card is held.
const Infinite = -1.0

// Binding attaches a named effect to a card or table object.
type Binding struct {
	Effect   string  `yaml:"effect"`
	Negative bool    `yaml:"negative,omitempty"` // belongs to the group applied before the inventory capacity check
	Trigger  Trigger `yaml:"trigger,omitempty"`
	Usage    Usage   `yaml:"usage,omitempty"`
	Duration float64 `yaml:"duration,omitempty"` // seconds; Infinite while held; 0 instantaneous
	Cooldown float64 `yaml:"cooldown,omitempty"`
	Params   Params  `yaml:"params,omitempty"`
}

// Lasting reports whether applying the binding leaves state that must be
// revoked later.
func (b Binding) Lasting() bool {
	if b.Duration != 0 {
		return true
	}
	return b.Usage == UsagePassive && b.Trigger == TriggerUse
}

// Is reports whether the binding fires on trigger with the given usage.
func (b Binding) Is(trigger Trigger, usage Usage) bool {
	return b.Trigger == trigger && b.Usage == usage
}

// Clone returns a deep copy of the binding.
func (b Binding) Clone() Binding {
	b.Params = b.Params.Clone()
	return b
}

// CloneAll deep-copies a binding list.
func CloneAll(bs []Binding) []Binding {
	if bs == nil {
		return nil
	}
	out := make([]Binding, len(bs))
	for i, b := range bs {
		out[i] = b.Clone()
	}
	return out
}
