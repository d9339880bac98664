// mines is Minesweeper for the terminal.
//
// Usage:
//
//	mines list               - List board modes
//	mines play <mode>        - Play a mode (beginner, intermediate, expert, custom, daily)
//	mines daily              - Play today's daily challenge
//	mines menu               - Pick modes, times and stats interactively
//	mines scores <board>     - Show the fastest times for a board
//	mines stats              - Show statistics and achievements
//	mines reset --yes        - Delete all recorded progress
//
// Global flags:
//
//	--fps <rate>     - Tick rate (default 30, or MINES_FPS)
//	--seed <value>   - RNG seed for reproducible boards
//	--db <path>      - Database path (default ~/.mines/mines.db, or MINES_DB)
//	--config <path>  - Board config YAML (or MINES_CONFIG)
//	--name <player>  - Player name for recorded games (or MINES_PLAYER)
//	--log <path>     - Log file (default ~/.mines/mines.log, or MINES_LOG)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-mines/internal/games/minesweeper"
)

var (
	// Global flags. Empty or zero means use the environment.
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagPlayer     string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mines",
	Short: "Minesweeper in your terminal",
	Long: `mines is a terminal Minesweeper with classic boards, a daily
challenge shared by every player, fastest times, statistics and achievements.

Available commands:
  list     - Show all board modes
  play     - Play a mode directly
  daily    - Play today's daily challenge
  menu     - Interactive mode picker
  scores   - View fastest times
  stats    - View statistics and achievements
  reset    - Delete all recorded progress

Examples:
  mines play beginner
  mines play custom --rows 20 --cols 40 --mines 150
  mines daily
  mines scores expert`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, default 30)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to the stats database (default ~/.mines/mines.db)")
	pf.StringVar(&flagConfigPath, "config", "", "Path to a board config YAML")
	pf.StringVar(&flagPlayer, "name", "", "Player name for recorded games")
	pf.StringVar(&flagLogPath, "log", "", "Path to the log file (default ~/.mines/mines.log)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}
