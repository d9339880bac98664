package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded progress",
	Long: `Delete every recorded game, daily challenge and achievement from the
stats database. This cannot be undone, so --yes is required.

Examples:
  mines reset --yes
  mines reset --yes --db ./mines.db`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deleting all progress")
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagYes {
		return errors.New("refusing to delete progress without --yes")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.openStore()
	if err != nil {
		return fmt.Errorf("opening stats database: %w", err)
	}
	if err := store.Reset(); err != nil {
		return err
	}

	a.logger.Warn("progress reset", "db", a.settings.DBPath)
	fmt.Println("All progress deleted.")
	return nil
}
