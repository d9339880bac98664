// Package config provides YAML-based game configuration loading,
// difficulty presets and environment overrides.
package config

// MinesweeperConfig contains all configuration for the game.
type MinesweeperConfig struct {
	Presets      []BoardPreset      `yaml:"presets"`
	Daily        DailyConfig        `yaml:"daily"`
	Placement    PlacementConfig    `yaml:"placement"`
	Achievements AchievementsConfig `yaml:"achievements"`
}

// BoardPreset is a named board size.
type BoardPreset struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
	Mines int    `yaml:"mines"`
}

// DailyConfig selects the board used by the daily challenge.
type DailyConfig struct {
	Preset string `yaml:"preset"`
}

// PlacementConfig bounds mine placement.
type PlacementConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // 0 keeps the engine default
}

// AchievementsConfig holds tunable achievement thresholds.
type AchievementsConfig struct {
	SpeedDemonSeconds int `yaml:"speed_demon_seconds"`
}
