// Package engine implements the Minesweeper board rules: deferred mine
// placement with a safe first click, flood-fill reveal, flagging and chording.
// It has no UI dependencies. Every transition returns a new state and leaves
// its input untouched, so a caller may keep the previous state for comparison.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Status is the lifecycle stage of a game.
// Transitions only move forward: idle -> playing -> won|lost.
type Status string

const (
	StatusIdle    Status = "idle"    // Board created, no mines placed yet
	StatusPlaying Status = "playing" // Mines placed, game in progress
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether the status accepts no further moves.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusPlaying, StatusWon, StatusLost:
		return true
	}
	return false
}

var (
	ErrInvalidDimensions = errors.New("engine: rows and cols must be positive")
	ErrInvalidMineCount  = errors.New("engine: mine count must be between 0 and rows*cols-1")
	ErrOutOfBounds       = errors.New("engine: coordinates out of bounds")
	ErrMinePlacement     = errors.New("engine: cannot place mines outside the safe zone")
)

// attemptsPerCell bounds rejection sampling when no explicit limit is set.
const attemptsPerCell = 1000

// neighborOffsets lists the 8 neighbors as (dRow, dCol) in the fixed order
// NW, N, NE, W, E, SW, S, SE. Chording reveals in this order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Rand is the random source used for mine placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand draws from the auto-seeded math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures a new GameState.
type Option func(*GameState)

// WithRand sets the random source for mine placement.
// Use a seeded generator for reproducible boards (daily challenge, tests).
func WithRand(r Rand) Option {
	return func(s *GameState) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithMaxPlacementAttempts bounds the number of random draws used to place
// mines. Zero or negative keeps the default of 1000 draws per cell.
func WithMaxPlacementAttempts(n int) Option {
	return func(s *GameState) {
		s.maxAttempts = n
	}
}

// Cell is one grid position.
type Cell struct {
	Row, Col      int
	IsMine        bool
	IsRevealed    bool
	IsFlagged     bool
	NeighborCount int // Mines among the 8 neighbors; unused for mine cells
}

// GameState is the complete state of one game. Read it through its accessors;
// change it only through the transition functions.
type GameState struct {
	rows       int
	cols       int
	totalMines int
	flagsUsed  int
	status     Status

	// safeRevealed counts revealed non-mine cells for the win check.
	safeRevealed int

	cells       []Cell // Row-major
	rng         Rand
	maxAttempts int
}

// CreateEmptyBoard returns an idle board of rows x cols hidden, unflagged,
// mine-free cells. Mines are placed by the first RevealCell call.
func CreateEmptyBoard(rows, cols, totalMines int, opts ...Option) (*GameState, error) {
	if err := ValidateConfig(rows, cols, totalMines); err != nil {
		return nil, err
	}

	s := &GameState{
		rows:       rows,
		cols:       cols,
		totalMines: totalMines,
		status:     StatusIdle,
		rng:        globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cells = make([]Cell, rows*cols)
	for r := range rows {
		for c := range cols {
			s.cells[r*cols+c] = Cell{Row: r, Col: c}
		}
	}

	return s, nil
}

// ValidateConfig checks board dimensions and mine count.
func ValidateConfig(rows, cols, totalMines int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if totalMines < 0 || totalMines >= rows*cols {
		return fmt.Errorf("%w: got %d mines on %dx%d", ErrInvalidMineCount, totalMines, rows, cols)
	}
	return nil
}

// MaxMines returns the largest mine count for which any first click can
// succeed: every cell outside the biggest possible safe zone may hold a mine.
func MaxMines(rows, cols int) int {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return rows*cols - min(rows, 3)*min(cols, 3)
}

// RevealCell reveals the cell at (row, col).
//
// The first reveal of an idle board places the mines, keeping the clicked
// cell and its neighbors clear, and moves the game to playing. Revealing a
// mine loses the game. Revealing a safe cell flood-fills from it and wins the
// game once every safe cell is revealed.
//
// On a finished game or a revealed or flagged cell the input state is
// returned as is. Out-of-bounds coordinates return ErrOutOfBounds, and a
// board whose mines cannot fit outside the safe zone returns ErrMinePlacement.
func RevealCell(s *GameState, row, col int) (*GameState, error) {
	if err := s.check(row, col); err != nil {
		return nil, err
	}
	if s.status.Terminal() {
		return s, nil
	}
	cell := s.cells[s.index(row, col)]
	if cell.IsRevealed || cell.IsFlagged {
		return s, nil
	}

	next := s.clone()
	if next.status == StatusIdle {
		if err := next.placeMines(row, col); err != nil {
			return nil, err
		}
		next.status = StatusPlaying
	}
	next.reveal(row, col)

	return next, nil
}

// ToggleFlag flips the flag on a hidden cell and adjusts FlagsUsed.
// Flagging is allowed before the first reveal. There is no cap on the
// number of flags.
func ToggleFlag(s *GameState, row, col int) (*GameState, error) {
	if err := s.check(row, col); err != nil {
		return nil, err
	}
	if s.status.Terminal() {
		return s, nil
	}
	if s.cells[s.index(row, col)].IsRevealed {
		return s, nil
	}

	next := s.clone()
	cell := &next.cells[next.index(row, col)]
	cell.IsFlagged = !cell.IsFlagged
	if cell.IsFlagged {
		next.flagsUsed++
	} else {
		next.flagsUsed--
	}

	return next, nil
}

// ChordReveal reveals every hidden, unflagged neighbor of a revealed number
// whose flagged neighbor count equals the number exactly. Neighbors are
// revealed in NW, N, NE, W, E, SW, S, SE order and the sweep stops as soon as
// the game ends. Flags are trusted: a misplaced flag can detonate a mine.
func ChordReveal(s *GameState, row, col int) (*GameState, error) {
	if err := s.check(row, col); err != nil {
		return nil, err
	}
	if s.status != StatusPlaying {
		return s, nil
	}
	target := s.cells[s.index(row, col)]
	if !target.IsRevealed || target.NeighborCount == 0 {
		return s, nil
	}
	if s.countAround(row, col, func(c Cell) bool { return c.IsFlagged }) != target.NeighborCount {
		return s, nil
	}

	next := s
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if !s.InBounds(r, c) {
			continue
		}
		n := next.cells[next.index(r, c)]
		if n.IsRevealed || n.IsFlagged {
			continue
		}
		if next == s {
			next = s.clone()
		}
		next.reveal(r, c)
		if next.status.Terminal() {
			break
		}
	}

	return next, nil
}

// RevealMines exposes every unflagged mine of a lost game for display.
// Status and flags are unchanged. Any other status returns the input state.
func RevealMines(s *GameState) *GameState {
	if s.status != StatusLost {
		return s
	}

	next := s.clone()
	for i := range next.cells {
		c := &next.cells[i]
		if c.IsMine && !c.IsFlagged {
			c.IsRevealed = true
		}
	}
	return next
}

// Rows returns the board height.
func (s *GameState) Rows() int { return s.rows }

// Cols returns the board width.
func (s *GameState) Cols() int { return s.cols }

// TotalMines returns the configured mine count.
func (s *GameState) TotalMines() int { return s.totalMines }

// FlagsUsed returns the number of flagged cells.
func (s *GameState) FlagsUsed() int { return s.flagsUsed }

// Status returns the lifecycle stage.
func (s *GameState) Status() Status { return s.status }

// MinesRemaining returns TotalMines minus FlagsUsed. It goes negative when
// more cells are flagged than there are mines.
func (s *GameState) MinesRemaining() int { return s.totalMines - s.flagsUsed }

// InBounds reports whether (row, col) lies on the board.
func (s *GameState) InBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// Cell returns a copy of the cell at (row, col).
// It panics if the coordinates are out of bounds.
func (s *GameState) Cell(row, col int) Cell {
	if !s.InBounds(row, col) {
		panic(fmt.Sprintf("engine: cell (%d, %d) outside %dx%d board", row, col, s.rows, s.cols))
	}
	return s.cells[s.index(row, col)]
}

// Cells returns a row-major copy of all cells.
func (s *GameState) Cells() []Cell {
	out := make([]Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// RevealedCount returns the number of revealed cells, mines included.
func (s *GameState) RevealedCount() int {
	n := 0
	for _, c := range s.cells {
		if c.IsRevealed {
			n++
		}
	}
	return n
}

// FlagsExact reports whether every mine is flagged and no safe cell is.
// It is false before mines are placed.
func (s *GameState) FlagsExact() bool {
	if s.status == StatusIdle || s.flagsUsed != s.totalMines {
		return false
	}
	for _, c := range s.cells {
		if c.IsMine != c.IsFlagged {
			return false
		}
	}
	return true
}

func (s *GameState) index(row, col int) int {
	return row*s.cols + col
}

func (s *GameState) check(row, col int) error {
	if !s.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, row, col, s.rows, s.cols)
	}
	return nil
}

// clone copies the grid so the receiver stays untouched.
// The random source is shared.
func (s *GameState) clone() *GameState {
	next := *s
	next.cells = make([]Cell, len(s.cells))
	copy(next.cells, s.cells)
	return &next
}

// countAround counts in-bounds neighbors of (row, col) matching pred.
func (s *GameState) countAround(row, col int, pred func(Cell) bool) int {
	n := 0
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if s.InBounds(r, c) && pred(s.cells[s.index(r, c)]) {
			n++
		}
	}
	return n
}

// reveal applies a reveal in place. The caller has checked the guards and
// placed the mines.
func (s *GameState) reveal(row, col int) {
	cell := &s.cells[s.index(row, col)]
	if cell.IsMine {
		cell.IsRevealed = true
		s.status = StatusLost
		return
	}

	s.floodFill(row, col)

	if s.safeRevealed == len(s.cells)-s.totalMines {
		s.status = StatusWon
	}
}
