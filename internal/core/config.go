package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic mine placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Elapsed seconds on the game clock
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended in a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// GameResult describes a finished game for statistics and achievements.
type GameResult struct {
	Mode       string // Registry mode ID (e.g. "expert", "daily")
	Difficulty string // Preset name the board was built from
	Rows       int
	Cols       int
	Mines      int
	Won        bool
	Duration   time.Duration
	FlagsUsed  int
	Perfect    bool   // Won with exactly as many flags as mines
	FlagsExact bool   // Every mine flagged and nothing else
	DailyDate  string // YYYY-MM-DD for daily challenge games, empty otherwise
	Seed       int64
}

// Seconds returns the duration in whole seconds.
func (r GameResult) Seconds() int {
	return int(r.Duration / time.Second)
}
