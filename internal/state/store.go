// Package state persists chart configurations and the table shapes they
// were last suggested against, so follow-up requests can be classified as
// unchanged, extended or reduced.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chartwise/internal/logger"
	"chartwise/internal/suggest"
)

// ChartEntry is everything the server remembers about a single chart.
type ChartEntry struct {
	State     *suggest.State                `json:"state"`
	Shapes    map[string]suggest.TableShape `json:"shapes,omitempty"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

type storeData struct {
	Charts map[string]*ChartEntry `json:"charts"`
}

// Store keeps chart entries in memory and mirrors them to a JSON file.
// Entries are replaced wholesale on every write, so pointers handed out
// by the getters stay valid as immutable snapshots.
type Store struct {
	mu   sync.RWMutex
	path string
	log  *logger.Logger

	charts map[string]*ChartEntry
}

// NewStore creates a store backed by the given file. An empty path keeps
// the store purely in memory. Load errors are logged, not fatal: a fresh
// deployment simply has no file yet.
func NewStore(path string, log *logger.Logger) *Store {
	s := &Store{
		path:   path,
		log:    log,
		charts: make(map[string]*ChartEntry),
	}
	s.load()
	return s
}

func (s *Store) load() {
	if s.path == "" {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to load chart state", "path", s.path, "error", err)
		}
		return
	}

	var loaded storeData
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Warn("failed to parse chart state", "path", s.path, "error", err)
		return
	}

	s.mu.Lock()
	if loaded.Charts != nil {
		s.charts = loaded.Charts
	}
	s.mu.Unlock()

	s.log.Info("loaded chart state", "path", s.path, "charts", len(loaded.Charts))
}

func (s *Store) save() {
	if s.path == "" {
		return
	}

	s.mu.RLock()
	data, err := json.MarshalIndent(storeData{Charts: s.charts}, "", "  ")
	s.mu.RUnlock()

	if err != nil {
		s.log.Error("failed to encode chart state", "error", err)
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			s.log.Error("failed to create state directory", "dir", dir, "error", err)
			return
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Error("failed to write chart state", "path", s.path, "error", err)
	}
}

// GetState returns the stored configuration for a chart, or nil if the
// chart is unknown.
func (s *Store) GetState(chartID string) *suggest.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.charts[chartID]
	if !ok {
		return nil
	}
	return entry.State
}

// PutState replaces the stored configuration for a chart.
func (s *Store) PutState(chartID string, st *suggest.State) {
	s.mu.Lock()
	entry := s.entryLocked(chartID)
	entry.State = st
	entry.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	s.save()
}

// Apply accepts a suggestion for a chart: its embedded configuration
// becomes the chart's current state.
func (s *Store) Apply(chartID string, sug suggest.Suggestion) *suggest.State {
	st := sug.State
	s.PutState(chartID, &st)
	return &st
}

// LastShape returns the table shape a chart's layer was last suggested
// against, or nil if none was recorded.
func (s *Store) LastShape(chartID, layerID string) *suggest.TableShape {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.charts[chartID]
	if !ok || entry.Shapes == nil {
		return nil
	}
	shape, ok := entry.Shapes[layerID]
	if !ok {
		return nil
	}
	return &shape
}

// PutShape records the table shape used for a chart's layer.
func (s *Store) PutShape(chartID, layerID string, shape suggest.TableShape) {
	s.mu.Lock()
	entry := s.entryLocked(chartID)
	if entry.Shapes == nil {
		entry.Shapes = make(map[string]suggest.TableShape)
	}
	entry.Shapes[layerID] = shape
	entry.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	s.save()
}

// Clear forgets a chart entirely. It reports whether the chart existed.
func (s *Store) Clear(chartID string) bool {
	s.mu.Lock()
	_, ok := s.charts[chartID]
	delete(s.charts, chartID)
	s.mu.Unlock()

	if ok {
		s.save()
	}
	return ok
}

func (s *Store) entryLocked(chartID string) *ChartEntry {
	entry, ok := s.charts[chartID]
	if !ok {
		entry = &ChartEntry{}
		s.charts[chartID] = entry
	}
	return entry
}
