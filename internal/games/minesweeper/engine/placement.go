package engine

import (
	"fmt"

	"github.com/gammazero/deque"
)

// placeMines scatters totalMines mines by rejection sampling, avoiding the
// 3x3 safe zone centred on (safeRow, safeCol), then computes neighbor counts.
// It fails instead of looping when the mines cannot fit or the attempt budget
// runs out.
func (s *GameState) placeMines(safeRow, safeCol int) error {
	free := len(s.cells) - s.safeZoneSize(safeRow, safeCol)
	if s.totalMines > free {
		return fmt.Errorf("%w: %d mines but only %d cells outside the safe zone",
			ErrMinePlacement, s.totalMines, free)
	}

	limit := s.maxAttempts
	if limit <= 0 {
		limit = attemptsPerCell * len(s.cells)
	}

	placed := 0
	for attempts := 0; placed < s.totalMines; attempts++ {
		if attempts >= limit {
			return fmt.Errorf("%w: placed %d of %d mines in %d attempts",
				ErrMinePlacement, placed, s.totalMines, attempts)
		}

		r := s.rng.IntN(s.rows)
		c := s.rng.IntN(s.cols)
		if inSafeZone(r, c, safeRow, safeCol) {
			continue
		}
		cell := &s.cells[s.index(r, c)]
		if cell.IsMine {
			continue
		}
		cell.IsMine = true
		placed++
	}

	s.computeNeighborCounts()
	return nil
}

// computeNeighborCounts sets NeighborCount on every non-mine cell.
func (s *GameState) computeNeighborCounts() {
	isMine := func(c Cell) bool { return c.IsMine }
	for i := range s.cells {
		c := &s.cells[i]
		if c.IsMine {
			c.NeighborCount = 0
			continue
		}
		c.NeighborCount = s.countAround(c.Row, c.Col, isMine)
	}
}

// safeZoneSize returns how many cells of the 3x3 block around (row, col)
// are on the board: 4 in a corner, 6 on an edge, 9 inside.
func (s *GameState) safeZoneSize(row, col int) int {
	n := 1
	for _, d := range neighborOffsets {
		if s.InBounds(row+d[0], col+d[1]) {
			n++
		}
	}
	return n
}

func inSafeZone(r, c, safeRow, safeCol int) bool {
	return abs(r-safeRow) <= 1 && abs(c-safeCol) <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// floodFill reveals the cell at (row, col) and, through zero-count cells,
// the connected region around it. It uses an explicit stack rather than
// recursion. Flagged cells are pushed like any other hidden neighbor and
// skipped when popped, so they stay hidden without blocking the fill.
func (s *GameState) floodFill(row, col int) {
	var stack deque.Deque[int]
	stack.PushBack(s.index(row, col))

	for stack.Len() > 0 {
		cell := &s.cells[stack.PopBack()]
		if cell.IsRevealed || cell.IsFlagged {
			continue
		}
		cell.IsRevealed = true
		s.safeRevealed++

		if cell.NeighborCount != 0 {
			continue
		}
		for _, d := range neighborOffsets {
			r, c := cell.Row+d[0], cell.Col+d[1]
			if !s.InBounds(r, c) {
				continue
			}
			if i := s.index(r, c); !s.cells[i].IsRevealed {
				stack.PushBack(i)
			}
		}
	}
}
