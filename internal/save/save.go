// Package save keeps the current run in a single save slot.
//
// The slot is a YAML document stored through gdata. A Store without a
// gdata manager keeps the document in memory, which is what headless runs
// and tests use.
package save

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// ErrNoSave is returned by Load when the slot is empty.
var ErrNoSave = errors.New("save: no saved run")

const (
	slotObject   = "run"
	slotProperty = "current"
)

// Data is the persisted state of a run, written at round start and round
// end.
type Data struct {
	RunID string `yaml:"run_id"`
	Seed  int64  `yaml:"seed"`
	Round int    `yaml:"round"`
	Mode  string `yaml:"mode"`

	Money      float64              `yaml:"money"`
	RerollCost float64              `yaml:"reroll_cost"`
	Flags      map[string]float64   `yaml:"flags,omitempty"`
	Economy    config.EconomyConfig `yaml:"economy"`
	Scale      float64              `yaml:"requirement_scale"`
	Shift      float64              `yaml:"requirement_shift"`

	Inventory []string           `yaml:"inventory,omitempty"`
	Balls     []string           `yaml:"balls"`
	Board     []config.Placement `yaml:"board"`
}

// Store reads and writes the save slot.
type Store struct {
	manager *gdata.Manager
	mem     []byte
	logger  *log.Logger
}

// NewStore wraps a gdata manager. A nil manager keeps saves in memory.
func NewStore(m *gdata.Manager, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{manager: m, logger: logger.WithPrefix("save")}
}

// Open opens the on-disk save slot for appName.
func Open(appName string, logger *log.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: cannot open data dir: %w", err)
	}
	return NewStore(m, logger), nil
}

// Persistent reports whether saves survive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Save writes d to the slot.
func (s *Store) Save(d Data) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("save: cannot encode run: %w", err)
	}
	if s.manager == nil {
		s.mem = raw
		return nil
	}
	if err := s.manager.SaveObjectProp(slotObject, slotProperty, raw); err != nil {
		return fmt.Errorf("save: cannot write run: %w", err)
	}
	s.logger.Debug("run saved", "run", d.RunID, "round", d.Round, "mode", d.Mode)
	return nil
}

// Load reads the slot. It returns ErrNoSave when nothing was saved.
func (s *Store) Load() (Data, error) {
	raw, err := s.read()
	if err != nil {
		return Data{}, err
	}
	if len(raw) == 0 {
		return Data{}, ErrNoSave
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("save: cannot decode run: %w", err)
	}
	return d, nil
}

// Clear empties the slot, e.g. after game over.
func (s *Store) Clear() error {
	if s.manager == nil {
		s.mem = nil
		return nil
	}
	if err := s.manager.SaveObjectProp(slotObject, slotProperty, nil); err != nil {
		return fmt.Errorf("save: cannot clear run: %w", err)
	}
	return nil
}

func (s *Store) read() ([]byte, error) {
	if s.manager == nil {
		return s.mem, nil
	}
	if !s.manager.ObjectPropExists(slotObject, slotProperty) {
		return nil, nil
	}
	raw, err := s.manager.LoadObjectProp(slotObject, slotProperty)
	if err != nil {
		return nil, fmt.Errorf("save: cannot read run: %w", err)
	}
	return raw, nil
}
