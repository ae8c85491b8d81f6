// Package prefs persists user preferences as a single JSON blob with a
// versioned migration step on load. Storage faults degrade to in-memory
// defaults; they are logged, never fatal.
package prefs

import (
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
)

const (
	// CurrentVersion is the preference schema version. Version 2 added the
	// deadZone range check on load.
	CurrentVersion = 2

	DefaultDeadZone = 0.08
	maxDeadZone     = 0.5
)

// Prefs is the persisted preference record.
type Prefs struct {
	Version        int     `json:"version"`
	DeadZone       float64 `json:"deadZone"`
	SimulationMode bool    `json:"simulationMode"`
	ReducedMotion  bool    `json:"reducedMotion"`
}

func Default() Prefs {
	return Prefs{Version: CurrentVersion, DeadZone: DefaultDeadZone}
}

// Store owns the process-wide preferences: loaded once at startup, persisted
// on every mutation, subscribers notified on change.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  Prefs
	log  *slog.Logger
	subs map[chan struct{}]struct{}
}

// NewStore loads preferences from path, applying migration. A missing or
// unreadable file yields defaults.
func NewStore(path string, logger *slog.Logger) *Store {
	s := &Store{
		path: path,
		cur:  Default(),
		log:  logger,
		subs: make(map[chan struct{}]struct{}),
	}
	s.load()
	return s
}

// Current returns the current preference record.
func (s *Store) Current() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// SetDeadZone clamps to [0, 0.5], rounds to 2 decimals, persists.
func (s *Store) SetDeadZone(v float64) {
	s.update(func(p *Prefs) { p.DeadZone = clampDeadZone(v) })
}

func (s *Store) SetSimulationMode(on bool) {
	s.update(func(p *Prefs) { p.SimulationMode = on })
}

func (s *Store) SetReducedMotion(on bool) {
	s.update(func(p *Prefs) { p.ReducedMotion = on })
}

// Subscribe returns a coalescing change-signal channel and a cancel func.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) update(mut func(*Prefs)) {
	s.mu.Lock()
	mut(&s.cur)
	s.cur.Version = CurrentVersion
	data, err := json.MarshalIndent(s.cur, "", "  ")
	s.mu.Unlock()
	if err == nil {
		if werr := os.WriteFile(s.path, data, 0o644); werr != nil {
			s.log.Warn("failed to persist preferences", "path", s.path, "error", werr)
		}
	}
	s.notify()
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read preferences, using defaults", "path", s.path, "error", err)
		}
		return
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("corrupt preferences, using defaults", "path", s.path, "error", err)
		return
	}
	s.mu.Lock()
	s.cur = migrate(p)
	s.mu.Unlock()
}

// migrate upgrades a loaded record to the current schema. Records from
// older versions with an out-of-range dead zone get the default back.
func migrate(p Prefs) Prefs {
	if p.Version < CurrentVersion && (p.DeadZone < 0 || p.DeadZone > maxDeadZone) {
		p.DeadZone = DefaultDeadZone
	}
	p.DeadZone = clampDeadZone(p.DeadZone)
	p.Version = CurrentVersion
	return p
}

func clampDeadZone(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > maxDeadZone {
		v = maxDeadZone
	}
	return math.Round(v*100) / 100
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
