package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/games/minesweeper"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

var (
	flagRows  int
	flagCols  int
	flagMines int
	flagBoard string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the given mode.

Controls:
  Arrows/HJKL/WASD - Move the cursor
  Space/Enter      - Reveal (on a number: chord)
  F                - Flag or unflag
  C                - Chord around a satisfied number
  Mouse            - Left reveal, right flag, middle chord
  M                - Show all mines after a loss
  P                - Pause
  R                - New board
  Ctrl+S           - Save a board snapshot to ~/.mines/snapshots
  B/Esc, Q         - Quit

The custom mode takes its board from --rows, --cols and --mines, or
resumes a snapshot saved with Ctrl+S when given --board.

Examples:
  mines play beginner
  mines play expert --seed 42
  mines play custom --rows 20 --cols 40 --mines 150
  mines play custom --board ~/.mines/snapshots/expert_20261016_093000.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play today's daily challenge",
	Long: `Play the daily challenge. Every player gets the same board for the
UTC day; winning it completes the challenge and extends your daily streak.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return playMode(string(minesweeper.ModeDaily))
	},
}

func init() {
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Rows for the custom board")
	playCmd.Flags().IntVar(&flagCols, "cols", 0, "Columns for the custom board")
	playCmd.Flags().IntVar(&flagMines, "mines", 0, "Mines for the custom board")
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Board snapshot (YAML) to resume in the custom mode")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := args[0]
	sized := flagRows != 0 || flagCols != 0 || flagMines != 0
	if (sized || flagBoard != "") && mode != string(minesweeper.ModeCustom) {
		return errors.New("--rows, --cols, --mines and --board only apply to the custom mode")
	}

	// Without board flags the custom mode falls back to the intermediate size.
	switch {
	case sized && flagBoard != "":
		return errors.New("--board cannot be combined with --rows, --cols or --mines")
	case sized:
		if err := minesweeper.SetCustomBoard(flagRows, flagCols, flagMines); err != nil {
			return fmt.Errorf("invalid custom board: %w", err)
		}
	case flagBoard != "":
		if err := loadBoardFile(flagBoard); err != nil {
			return err
		}
	}
	return playMode(mode)
}

// loadBoardFile reads a saved snapshot for the custom mode.
func loadBoardFile(path string) error {
	path, err := config.ExpandHome(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read board: %w", err)
	}
	if err := minesweeper.LoadBoard(data); err != nil {
		return fmt.Errorf("cannot load board %s: %w", path, err)
	}
	return nil
}

// playMode runs one game session for the registered mode.
func playMode(mode string) error {
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'mines list' to see available modes)", mode)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}

	_, tracker := a.openProgress()
	a.logger.Info("session started", "mode", mode, "player", a.settings.Player)
	if err := tui.Run(game, a.runtimeConfig(), a.sessionOptions(tracker)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
