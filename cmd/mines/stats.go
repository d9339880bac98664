package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/achievements"
	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/progress"
)

var flagInteractive bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics, the daily challenge and achievements",
	Long: `Print classic game statistics, today's daily challenge and
achievement progress. With --tui the same view opens full screen.

Examples:
  mines stats
  mines stats --tui`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagInteractive, "tui", false, "Open the full-screen stats view")
}

func runStats(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, tracker := a.openProgress()
	if store == nil {
		return fmt.Errorf("cannot open stats database %s", a.settings.DBPath)
	}

	if flagInteractive {
		cfg := a.runtimeConfig()
		_, err := tui.RunStats(tracker, a.boards, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	sum, err := tracker.Summary()
	if err != nil {
		return err
	}
	printSummary(sum, a.boards)
	return nil
}

func printSummary(sum progress.Summary, boards config.MinesweeperConfig) {
	c := sum.Classic
	fmt.Println("Classic games")
	fmt.Printf("  Played:  %d\n", c.Total)
	fmt.Printf("  Won:     %d (%d%%)\n", c.Won, c.WinRate())
	fmt.Printf("  Lost:    %d\n", c.Lost)
	fmt.Printf("  Streak:  %d (longest %d)\n", c.CurrentStreak, c.LongestStreak)
	for _, d := range config.Difficulties() {
		p, err := boards.Preset(d)
		if err != nil {
			continue
		}
		best := "--:--"
		if t, ok := c.BestTimes[p.Name]; ok {
			best = daily.FormatClock(t)
		}
		fmt.Printf("  Best %-13s %s\n", p.Title+":", best)
	}
	fmt.Println()

	printDaily(sum)
	fmt.Println()

	catalogue := achievements.Catalogue()
	fmt.Printf("Achievements (%d/%d)\n", achievements.Unlocked(sum.Achievements), len(catalogue))
	for _, def := range catalogue {
		st := sum.Achievements[def.ID]
		mark := "[ ]"
		detail := ""
		switch {
		case st.Unlocked:
			mark = "[x]"
			detail = st.UnlockedAt.Local().Format("2006-01-02")
		case def.MaxProgress > 0:
			detail = fmt.Sprintf("%d/%d", st.Progress, def.MaxProgress)
		}
		fmt.Printf("  %s %-20s %-9s %-10s %s\n", mark, def.Name, def.Rarity, detail, def.Description)
	}
}

func printDaily(sum progress.Summary) {
	fmt.Println("Daily challenge")
	if sum.Daily.Completed {
		fmt.Printf("  Today:   completed in %s\n", daily.FormatClock(sum.Daily.Duration))
	} else {
		fmt.Println("  Today:   not completed (run 'mines daily')")
	}
	fmt.Printf("  Streak:  %d day(s), %d completed\n", sum.DailyStreak, sum.DailyTotal)
	fmt.Printf("  Next:    in %s\n", daily.FormatCountdown(sum.UntilReset.Truncate(time.Second)))
}
