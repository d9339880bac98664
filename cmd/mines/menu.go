package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes, fastest times and stats interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Fastest times
  T            - Statistics
  Q            - Quit

Examples:
  mines menu
  mines menu --name ada
  mines menu --db ./mines.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, tracker := a.openProgress()

	cfg := a.runtimeConfig()
	for {
		res, err := tui.RunMenu(tracker, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, a.boards, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.WantsStats:
			goBack, err := tui.RunStats(tracker, a.boards, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				a.warn.Error("cannot create game", "mode", res.GameID, "err", err)
				continue
			}

			// A fresh board each time unless --seed pinned one.
			if a.settings.Seed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			a.logger.Info("session started", "mode", res.GameID, "player", a.settings.Player)
			if err := tui.Run(game, cfg, a.sessionOptions(tracker)); err != nil {
				a.logger.Error("game session failed", "mode", res.GameID, "err", err)
			}
		}
	}
}
