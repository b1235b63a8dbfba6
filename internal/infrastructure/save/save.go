// Package save persists run progress between sessions.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
	"github.com/younwookim/tilerun/internal/infrastructure/config"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

const progressKey = "progress"

// Backend stores opaque items by key. *gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Progress is what survives a restart of the game
type Progress struct {
	FurthestMap string `json:"furthestMap"`
	Deaths      int    `json:"deaths"`
}

// Store reads and writes Progress
type Store struct {
	backend Backend
}

// Open creates a store in the per-user data directory for appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return NewStore(m), nil
}

// NewStore wraps an existing backend
func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Load returns the saved progress, or the zero value when nothing was saved yet
func (s *Store) Load() (Progress, error) {
	var p Progress
	data, err := s.backend.LoadItem(progressKey)
	if err != nil {
		return p, fmt.Errorf("failed to load progress: %w", err)
	}
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("failed to parse progress: %w", err)
	}
	return p, nil
}

// Save overwrites the saved progress
func (s *Store) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := s.backend.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Reached records that the player got to map id.
// FurthestMap only moves forward along the configured progression.
func (s *Store) Reached(id string, maps config.MapsConfig) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	if maps.Index(id) <= maps.Index(p.FurthestMap) {
		return nil
	}
	p.FurthestMap = id
	logger.Log.WithField("map", id).Debug("progress saved")
	return s.Save(p)
}

// RecordDeaths stores the session's defeat count on top of the saved total
func (s *Store) RecordDeaths(n int) error {
	if n <= 0 {
		return nil
	}
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.Deaths += n
	return s.Save(p)
}

// ContinueFrom returns the map to resume at: the furthest saved map if it still
// exists in maps, otherwise the start map
func (s *Store) ContinueFrom(maps config.MapsConfig) string {
	p, err := s.Load()
	if err != nil {
		logger.Log.WithError(err).Warn("ignoring unreadable progress")
		return maps.Start
	}
	if _, err := maps.Find(p.FurthestMap); err != nil {
		return maps.Start
	}
	return p.FurthestMap
}
