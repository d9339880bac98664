package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board modes",
	Long:  `Shows every mode with its board size and mine count.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Board")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, m.ID, m.Title, boardSummary(a.boards, m.ID))
	}

	fmt.Println()
	fmt.Println("Run 'mines play <id>' to play a mode.")
	return nil
}

// boardSummary describes the board a mode plays on.
func boardSummary(cfg config.MinesweeperConfig, id string) string {
	var (
		p   config.BoardPreset
		err error
	)
	switch id {
	case "custom":
		return "--rows, --cols, --mines"
	case "daily":
		p, err = cfg.DailyPreset()
	default:
		p, err = cfg.Preset(config.DifficultyPreset(id))
	}
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%dx%d, %d mines", p.Cols, p.Rows, p.Mines)
}
