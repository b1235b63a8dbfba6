package config

import (
	"errors"
	"fmt"
)

// ErrUnknownMap is returned for a map id missing from game.json
var ErrUnknownMap = errors.New("unknown map")

type MapsConfig struct {
	Start string      `json:"start"`
	List  []MapConfig `json:"list"`
}

// MapConfig describes one playable map
type MapConfig struct {
	ID             string `json:"id"`
	File           string `json:"file"`
	Next           string `json:"next"` // empty on the last map
	CutsceneFrames int    `json:"cutsceneFrames"`
	Background     string `json:"background"` // hex colour
	Music          string `json:"music"`
}

// Find returns the map with the given id
func (m MapsConfig) Find(id string) (MapConfig, error) {
	for _, mc := range m.List {
		if mc.ID == id {
			return mc, nil
		}
	}
	return MapConfig{}, fmt.Errorf("%w: %q", ErrUnknownMap, id)
}

// Index returns the position of id in the progression, or -1
func (m MapsConfig) Index(id string) int {
	for i, mc := range m.List {
		if mc.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that the start map and every next link resolve
func (m MapsConfig) Validate() error {
	if _, err := m.Find(m.Start); err != nil {
		return fmt.Errorf("start map: %w", err)
	}
	for _, mc := range m.List {
		if mc.File == "" {
			return fmt.Errorf("map %q has no file", mc.ID)
		}
		if mc.Next == "" {
			continue
		}
		if _, err := m.Find(mc.Next); err != nil {
			return fmt.Errorf("map %q next: %w", mc.ID, err)
		}
	}
	return nil
}
