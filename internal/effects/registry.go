package effects

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/registry"
)

// Func is an effect implementation. It returns false when the effect could
// not be applied in the current context; the caller then treats the whole
// operation as failed.
type Func[C any] func(ctx C, p Params) bool

// Entry pairs an effect with the function that revokes it.
// Negate is nil for instantaneous effects.
type Entry[C any] struct {
	Apply  Func[C]
	Negate Func[C]
}

// NoOp is the effect used for unknown names.
func NoOp[C any](C, Params) bool { return true }

// Registry maps effect names to implementations for one context type.
type Registry[C any] struct {
	table  *registry.Table[Entry[C]]
	logger *log.Logger
}

// NewRegistry creates an empty registry. A nil logger uses the default logger.
func NewRegistry[C any](logger *log.Logger) *Registry[C] {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry[C]{
		table:  registry.NewTable[Entry[C]]("effect"),
		logger: logger,
	}
}

// Register adds an effect. Panics on duplicate names.
func (r *Registry[C]) Register(name string, e Entry[C]) {
	r.table.Register(name, e)
}

// Has reports whether name is registered.
func (r *Registry[C]) Has(name string) bool {
	return r.table.Exists(name)
}

// Names lists the registered effect names, sorted.
func (r *Registry[C]) Names() []string {
	return r.table.List()
}

// Resolve returns the applying function for name. Unknown names resolve to
// NoOp and are logged.
func (r *Registry[C]) Resolve(name string) Func[C] {
	e, ok := r.table.Lookup(name)
	if !ok {
		r.logger.Warn("unknown effect, using no-op", "effect", name)
		return NoOp[C]
	}
	if e.Apply == nil {
		return NoOp[C]
	}
	return e.Apply
}

// ResolveNegative returns the revoking function for name, or nil when the
// effect has none. Unknown names resolve to NoOp, since their application
// was a no-op too.
func (r *Registry[C]) ResolveNegative(name string) Func[C] {
	e, ok := r.table.Lookup(name)
	if !ok {
		r.logger.Warn("unknown effect, using no-op", "effect", name)
		return NoOp[C]
	}
	return e.Negate
}

// Call applies the binding.
func (r *Registry[C]) Call(ctx C, b Binding) bool {
	return r.Resolve(b.Effect)(ctx, b.Params)
}

// Recall revokes the binding. A lasting binding whose effect has no
// revoking function is a configuration error and panics.
func (r *Registry[C]) Recall(ctx C, b Binding) bool {
	name := b.Effect
	neg := r.ResolveNegative(name)
	if neg == nil {
		if b.Lasting() {
			panic(fmt.Sprintf("effects: %q has duration %v but no negative effect", name, b.Duration))
		}
		r.logger.Debug("nothing to revoke", "effect", name)
		return true
	}
	return neg(ctx, b.Params)
}

// ApplyAll applies bindings in order. If any fails, the ones already applied
// are revoked in reverse order and false is returned.
func (r *Registry[C]) ApplyAll(ctx C, bs []Binding) bool {
	return Apply(bs,
		func(b Binding) bool { return r.Call(ctx, b) },
		func(b Binding) bool { return r.Recall(ctx, b) })
}

// RecallAll revokes bindings in reverse order, re-applying the ones already
// revoked if any fails.
func (r *Registry[C]) RecallAll(ctx C, bs []Binding) bool {
	return Revoke(bs,
		func(b Binding) bool { return r.Call(ctx, b) },
		func(b Binding) bool { return r.Recall(ctx, b) })
}

// Apply runs call over bs in order. If one fails, recall undoes the ones
// already applied in reverse order and false is returned. A failing undo
// panics: the state can no longer be trusted.
func Apply(bs []Binding, call, recall func(Binding) bool) bool {
	for i, b := range bs {
		if call(b) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if !recall(bs[j]) {
				panic(fmt.Sprintf("effects: failed to revoke just applied effect %q", bs[j].Effect))
			}
		}
		return false
	}
	return true
}

// Revoke runs recall over bs in reverse order. If one fails, call re-applies
// the ones already revoked and false is returned. A failing re-apply panics.
func Revoke(bs []Binding, call, recall func(Binding) bool) bool {
	for i := len(bs) - 1; i >= 0; i-- {
		if recall(bs[i]) {
			continue
		}
		for j := i + 1; j < len(bs); j++ {
			if !call(bs[j]) {
				panic(fmt.Sprintf("effects: failed to reapply just revoked effect %q", bs[j].Effect))
			}
		}
		return false
	}
	return true
}
