package minesweeper

import (
	"github.com/vovakirdan/tui-mines/internal/games/minesweeper/engine"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Status    engine.Status
	Paused    bool
	CursorRow int
	CursorCol int
	Elapsed   uint64 // Ticks on the game clock
	Flags     int
	Board     []string // engine layout, one string per row
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Status:    g.board.Status(),
		Paused:    g.paused,
		CursorRow: g.cursorRow,
		CursorCol: g.cursorCol,
		Elapsed:   g.elapsed,
		Flags:     g.board.FlagsUsed(),
		Board:     g.board.Layout(),
	}
}

// MarshalBoard encodes the board as a YAML snapshot that
// engine.ParseSnapshot can load back.
func (g *Game) MarshalBoard() ([]byte, error) {
	return g.board.Snapshot(g.seed).Marshal()
}
