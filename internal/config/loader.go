package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const minesweeperFile = "minesweeper.yaml"

// LoadMinesweeper loads the game configuration.
// Search order: customPath -> ~/.mines/configs/minesweeper.yaml -> ./configs/minesweeper.yaml -> embedded default
//
// A custom path that cannot be read or fails validation is an error.
// Broken files at the other locations are skipped.
func LoadMinesweeper(customPath string) (MinesweeperConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MinesweeperConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseMinesweeper(data)
		if err != nil {
			return MinesweeperConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(minesweeperFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMinesweeper(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", minesweeperFile)); err == nil {
		if cfg, err := parseMinesweeper(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseMinesweeper(defaultMinesweeperYAML)
	if err != nil {
		return DefaultMinesweeperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMinesweeper decodes YAML over the defaults and validates the result,
// so a file only needs the keys it changes.
func parseMinesweeper(data []byte) (MinesweeperConfig, error) {
	cfg := DefaultMinesweeperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MinesweeperConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MinesweeperConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mines", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
