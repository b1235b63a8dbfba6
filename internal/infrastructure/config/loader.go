package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Loader loads game configuration and map files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameSettings, error) {
	var cfg GameSettings
	if err := l.readJSON("game.json", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Maps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game.json: %w", err)
	}
	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.readJSON("entities.json", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entities.json: %w", err)
	}
	return &cfg, nil
}

// ReadMap reads a raw map grid file
func (l *Loader) ReadMap(file string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, path.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", file, err)
	}
	return data, nil
}

// LoadAll loads all base configurations (game, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	game, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Game:     game,
		Entities: entities,
	}, nil
}
