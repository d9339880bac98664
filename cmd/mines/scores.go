package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/daily"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show the fastest times for a board",
	Long: `Display the ten fastest wins on a ranked board: beginner,
intermediate or expert. Custom boards and daily challenges do not rank.

Examples:
  mines scores beginner
  mines scores expert`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	preset, err := a.boards.Preset(config.DifficultyPreset(args[0]))
	if err != nil || !ranked(preset.Name) {
		return fmt.Errorf("unknown board %q (choose beginner, intermediate or expert)", args[0])
	}

	store, err := a.openStore()
	if err != nil {
		return fmt.Errorf("opening stats database: %w", err)
	}

	times, err := store.TopTimes(preset.Name, 10)
	if err != nil {
		return fmt.Errorf("retrieving times: %w", err)
	}

	fmt.Printf("Fastest Times - %s (%dx%d, %d mines)\n", preset.Title, preset.Cols, preset.Rows, preset.Mines)
	fmt.Println()

	if len(times) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mines play %s' to set the first time!\n", preset.Name)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-16s  %-5s  %s\n", "Rank", "Time", "Player", "Flags", "Date")
	fmt.Printf("  %-4s  %-6s  %-16s  %-5s  %s\n", "----", "----", "------", "-----", "----")
	for i, g := range times {
		fmt.Printf("  %-4d  %-6s  %-16s  %-5s  %s\n",
			i+1,
			daily.FormatClock(g.Duration),
			g.Player,
			fmt.Sprintf("%d/%d", g.FlagsUsed, g.Mines),
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", daily.FormatClock(times[0].Duration))
	return nil
}

func ranked(name string) bool {
	for _, d := range config.Difficulties() {
		if string(d) == name {
			return true
		}
	}
	return false
}
