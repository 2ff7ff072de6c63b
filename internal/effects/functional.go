package effects

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/registry"
)

// Functional is a named predicate that decides whether an item may be
// offered or used, e.g. check_flag.
type Functional struct {
	Name   string `yaml:"name"`
	Params Params `yaml:"params,omitempty"`
}

// Predicate evaluates a functional in a context.
type Predicate[C any] func(ctx C, p Params) bool

// Predicates maps functional names to implementations.
type Predicates[C any] struct {
	table  *registry.Table[Predicate[C]]
	logger *log.Logger
}

// NewPredicates creates an empty predicate table.
func NewPredicates[C any](logger *log.Logger) *Predicates[C] {
	if logger == nil {
		logger = log.Default()
	}
	return &Predicates[C]{
		table:  registry.NewTable[Predicate[C]]("predicate"),
		logger: logger,
	}
}

// Register adds a predicate. Panics on duplicate names.
func (p *Predicates[C]) Register(name string, fn Predicate[C]) {
	p.table.Register(name, fn)
}

// Allowed reports whether every functional holds. Unknown predicates are
// logged and deny.
func (p *Predicates[C]) Allowed(ctx C, fs []Functional) bool {
	for _, f := range fs {
		fn, ok := p.table.Lookup(f.Name)
		if !ok {
			p.logger.Warn("unknown functional", "functional", f.Name)
			return false
		}
		if !fn(ctx, f.Params) {
			return false
		}
	}
	return true
}
