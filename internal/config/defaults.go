package config

import (
	_ "embed"
)

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

// DefaultMinesweeperConfig returns the built-in configuration.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		Presets: []BoardPreset{
			{Name: string(DifficultyBeginner), Title: "Beginner", Rows: 9, Cols: 9, Mines: 10},
			{Name: string(DifficultyIntermediate), Title: "Intermediate", Rows: 16, Cols: 16, Mines: 40},
			{Name: string(DifficultyExpert), Title: "Expert", Rows: 16, Cols: 30, Mines: 99},
		},
		Daily: DailyConfig{
			Preset: string(DifficultyIntermediate),
		},
		Placement: PlacementConfig{
			MaxAttempts: 0,
		},
		Achievements: AchievementsConfig{
			SpeedDemonSeconds: 60,
		},
	}
}
