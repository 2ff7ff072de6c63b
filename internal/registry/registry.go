// Package registry provides name-keyed tables for pluggable behavior and the
// Game contract consumed by the platform layer.
// Effect and predicate implementations register themselves by name, allowing
// configuration files to refer to them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game, used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Table is a concurrency-safe mapping from names to values.
// Registration happens at startup; lookups happen on the hot path.
type Table[V any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]V
}

// NewTable creates an empty table. kind is used in panic and error messages
// (e.g. "effect", "predicate").
func NewTable[V any](kind string) *Table[V] {
	return &Table[V]{
		kind:    kind,
		entries: make(map[string]V),
	}
}

// Register adds a named value to the table.
// Panics if the name is already registered.
func (t *Table[V]) Register(name string, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[name]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", t.kind, name))
	}
	t.entries[name] = v
}

// Lookup returns the value registered under name.
func (t *Table[V]) Lookup(name string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.entries[name]
	return v, ok
}

// Get returns the value registered under name or an error if it is unknown.
func (t *Table[V]) Get(name string) (V, error) {
	v, ok := t.Lookup(name)
	if !ok {
		return v, fmt.Errorf("registry: unknown %s %q", t.kind, name)
	}
	return v, nil
}

// Exists checks if a value with the given name is registered.
func (t *Table[V]) Exists(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// List returns all registered names, sorted.
func (t *Table[V]) List() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var games = NewTable[Factory]("game")

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	games.Register(id, f)
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	ids := games.List()
	result := make([]GameInfo, 0, len(ids))
	for _, id := range ids {
		f, _ := games.Lookup(id)
		result = append(result, GameInfo{ID: id, Title: f().Title()})
	}
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	f, err := games.Get(id)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	return games.Exists(id)
}
