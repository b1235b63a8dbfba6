package config

// GameSettings is the root config for game.json
type GameSettings struct {
	Display   DisplayConfig   `json:"display"`
	Combat    CombatConfig    `json:"combat"`
	Camera    CameraConfig    `json:"camera"`
	Collision CollisionConfig `json:"collision"`
	Maps      MapsConfig      `json:"maps"`
}

type DisplayConfig struct {
	TileSize       int    `json:"tileSize"`
	ViewportTilesX int    `json:"viewportTilesX"`
	ViewportTilesY int    `json:"viewportTilesY"`
	Scale          int    `json:"scale"`
	Framerate      int    `json:"framerate"`
	Title          string `json:"title"`
}

// ScreenWidth returns the logical screen width in pixels
func (d DisplayConfig) ScreenWidth() int {
	return d.TileSize * d.ViewportTilesX
}

// ScreenHeight returns the logical screen height in pixels
func (d DisplayConfig) ScreenHeight() int {
	return d.TileSize * d.ViewportTilesY
}

type CombatConfig struct {
	// DamageCooldownFrames is the re-trigger interval for contact damage.
	// 0 means damage applies on every overlapping resolution.
	DamageCooldownFrames int `json:"damageCooldownFrames"`
	AttackCooldownFrames int `json:"attackCooldownFrames"`
	StrikeFrames         int `json:"strikeFrames"`
}

type CameraConfig struct {
	Parallax float64 `json:"parallax"` // background pixels per player pixel
}

type CollisionConfig struct {
	CellSize int               `json:"cellSize"`
	Tags     map[string]string `json:"tags"` // tag -> policy name
}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Game     *GameSettings
	Entities *EntitiesConfig
}
