package config

import (
	"fmt"

	"github.com/vovakirdan/tui-mines/internal/games/minesweeper/engine"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyBeginner     DifficultyPreset = "beginner"
	DifficultyIntermediate DifficultyPreset = "intermediate"
	DifficultyExpert       DifficultyPreset = "expert"
	DifficultyCustom       DifficultyPreset = "custom"
)

// Difficulties lists the ranked presets in display order.
func Difficulties() []DifficultyPreset {
	return []DifficultyPreset{DifficultyBeginner, DifficultyIntermediate, DifficultyExpert}
}

// Preset returns the board preset with the given name.
func (c MinesweeperConfig) Preset(name DifficultyPreset) (BoardPreset, error) {
	for _, p := range c.Presets {
		if p.Name == string(name) {
			return p, nil
		}
	}
	return BoardPreset{}, fmt.Errorf("config: unknown difficulty %q", name)
}

// DailyPreset returns the board preset used by the daily challenge.
func (c MinesweeperConfig) DailyPreset() (BoardPreset, error) {
	return c.Preset(DifficultyPreset(c.Daily.Preset))
}

// CustomPreset builds a validated preset for a user-chosen board.
func CustomPreset(rows, cols, mines int) (BoardPreset, error) {
	p := BoardPreset{
		Name:  string(DifficultyCustom),
		Title: fmt.Sprintf("Custom %dx%d", cols, rows),
		Rows:  rows,
		Cols:  cols,
		Mines: mines,
	}
	if err := p.Validate(); err != nil {
		return BoardPreset{}, err
	}
	return p, nil
}

// Validate checks that the preset describes a playable board.
func (p BoardPreset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("config: preset has no name")
	}
	if err := engine.ValidateConfig(p.Rows, p.Cols, p.Mines); err != nil {
		return fmt.Errorf("config: preset %q: %w", p.Name, err)
	}
	if maxMines := engine.MaxMines(p.Rows, p.Cols); p.Mines > maxMines {
		return fmt.Errorf("config: preset %q: %w: %d mines on %dx%d leaves no room for a safe first click (max %d)",
			p.Name, engine.ErrInvalidMineCount, p.Mines, p.Rows, p.Cols, maxMines)
	}
	return nil
}

// Validate checks every preset and cross-reference in the config.
func (c MinesweeperConfig) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("config: no presets defined")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("config: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
	}
	if _, err := c.DailyPreset(); err != nil {
		return fmt.Errorf("config: daily challenge: %w", err)
	}
	if c.Placement.MaxAttempts < 0 {
		return fmt.Errorf("config: placement.max_attempts must not be negative")
	}
	if c.Achievements.SpeedDemonSeconds <= 0 {
		return fmt.Errorf("config: achievements.speed_demon_seconds must be positive")
	}
	return nil
}
