package effects

import (
	"fmt"
	"strconv"
)

// Params is the positional parameter list of a binding, as decoded from YAML.
// Elements are scalars (int, float64, string, bool) or nested lists.
type Params []any

// Mode selects how a numeric change is applied.
type Mode string

const (
	ModeSum  Mode = "s"
	ModeMult Mode = "m"
	ModeSet  Mode = "e"
)

// Apply applies diff to v using the mode.
func (m Mode) Apply(v, diff float64) float64 {
	switch m {
	case ModeMult:
		return v * diff
	case ModeSet:
		return diff
	}
	return v + diff
}

// Revertible reports whether Revert undoes Apply for diff. Effects that
// can be revoked must refuse to apply anything that is not revertible.
func (m Mode) Revertible(diff float64) bool {
	switch m {
	case ModeSet:
		return false
	case ModeMult:
		return diff != 0
	}
	return true
}

// Revert undoes Apply. Reverting a change that is not revertible panics.
func (m Mode) Revert(v, diff float64) float64 {
	if !m.Revertible(diff) {
		panic(fmt.Sprintf("effects: cannot revert mode %q with %v", string(m), diff))
	}
	if m == ModeMult {
		return v / diff
	}
	return v - diff
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p) }

// Float returns parameter i as a float64, or def when missing or not numeric.
func (p Params) Float(i int, def float64) float64 {
	if i < 0 || i >= len(p) {
		return def
	}
	if f, ok := toFloat(p[i]); ok {
		return f
	}
	return def
}

// Int returns parameter i as an int, truncating floats.
func (p Params) Int(i int, def int) int {
	if i < 0 || i >= len(p) {
		return def
	}
	if f, ok := toFloat(p[i]); ok {
		return int(f)
	}
	return def
}

// String returns parameter i as a string.
func (p Params) String(i int, def string) string {
	if i < 0 || i >= len(p) || p[i] == nil {
		return def
	}
	switch v := p[i].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns parameter i as a bool.
func (p Params) Bool(i int, def bool) bool {
	if i < 0 || i >= len(p) {
		return def
	}
	switch v := p[i].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if f, ok := toFloat(p[i]); ok {
		return f != 0
	}
	return def
}

// Mode returns parameter i as a Mode, defaulting to ModeSum.
func (p Params) Mode(i int) Mode {
	switch m := Mode(p.String(i, "s")); m {
	case ModeMult, ModeSet:
		return m
	}
	return ModeSum
}

// Strings returns parameter i as a list of strings. A scalar string is
// returned as a one-element list.
func (p Params) Strings(i int) []string {
	if i < 0 || i >= len(p) {
		return nil
	}
	switch v := p[i].(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return nil
	}
}

// Floats returns parameter i as a list of numbers. ok is false when the
// parameter is not a numeric list.
func (p Params) Floats(i int) (out []float64, ok bool) {
	if i < 0 || i >= len(p) {
		return nil, false
	}
	list, isList := p[i].([]any)
	if !isList {
		return nil, false
	}
	out = make([]float64, 0, len(list))
	for _, e := range list {
		f, isNum := toFloat(e)
		if !isNum {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// Set replaces parameter i, growing the list if needed.
func (p *Params) Set(i int, v any) {
	for len(*p) <= i {
		*p = append(*p, nil)
	}
	(*p)[i] = v
}

// Clone returns a deep copy of the parameter list.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for i, v := range p {
		out[i] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
