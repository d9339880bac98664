package engine

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout characters, one per cell.
const (
	glyphMineRevealed = '*' // Detonated or exposed mine
	glyphMineFlagged  = 'F'
	glyphMineHidden   = 'O'
	glyphSafeFlagged  = 'f' // Flag on a safe cell
	glyphSafeRevealed = '.'
	glyphSafeHidden   = '#'
)

// Snapshot is a portable text form of a board, stored as YAML.
type Snapshot struct {
	Seed   int64  `yaml:"seed"`
	Status Status `yaml:"status"`
	Mines  int    `yaml:"mines"`
	Board  string `yaml:"board"`
}

// Snapshot captures the board as a layout. Seed is recorded for reference
// only; the layout already fixes the mine positions.
func (s *GameState) Snapshot(seed int64) Snapshot {
	return Snapshot{
		Seed:   seed,
		Status: s.status,
		Mines:  s.totalMines,
		Board:  strings.Join(s.Layout(), "\n"),
	}
}

// Layout renders the board as one string per row using the layout glyphs.
func (s *GameState) Layout() []string {
	rows := make([]string, s.rows)
	var sb strings.Builder
	for r := range s.rows {
		sb.Reset()
		for c := range s.cols {
			sb.WriteRune(glyph(s.cells[s.index(r, c)]))
		}
		rows[r] = sb.String()
	}
	return rows
}

func glyph(c Cell) rune {
	switch {
	case c.IsMine && c.IsRevealed:
		return glyphMineRevealed
	case c.IsMine && c.IsFlagged:
		return glyphMineFlagged
	case c.IsMine:
		return glyphMineHidden
	case c.IsFlagged:
		return glyphSafeFlagged
	case c.IsRevealed:
		return glyphSafeRevealed
	default:
		return glyphSafeHidden
	}
}

// Marshal encodes the snapshot as YAML.
func (sn Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(sn)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// ParseSnapshot decodes a YAML snapshot.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var sn Snapshot
	if err := yaml.Unmarshal(data, &sn); err != nil {
		return sn, fmt.Errorf("engine: cannot parse snapshot: %w", err)
	}
	return sn, nil
}

// State rebuilds a GameState from the snapshot. An idle board carries no
// mines yet, so its mine count comes from the Mines field.
func (sn Snapshot) State(opts ...Option) (*GameState, error) {
	board := strings.TrimRight(sn.Board, "\n")
	s, err := FromLayout(sn.Status, strings.Split(board, "\n"), opts...)
	if err != nil {
		return nil, err
	}
	if s.status == StatusIdle {
		if err := ValidateConfig(s.rows, s.cols, sn.Mines); err != nil {
			return nil, err
		}
		s.totalMines = sn.Mines
	}
	return s, nil
}

// FromLayout builds a state from layout rows, recomputing neighbor counts.
// The mine count is taken from the layout. An idle layout may not contain
// mines or revealed cells, and only a lost layout may contain a revealed mine.
// A layout is won exactly when every safe cell is revealed, and a lost
// layout must show the mine that ended it.
func FromLayout(status Status, layout []string, opts ...Option) (*GameState, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("engine: unknown status %q", status)
	}
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidDimensions)
	}

	rows, cols := len(layout), len([]rune(layout[0]))
	s := &GameState{
		rows:   rows,
		cols:   cols,
		status: status,
		rng:    globalRand{},
		cells:  make([]Cell, rows*cols),
	}
	for _, opt := range opts {
		opt(s)
	}

	detonated := false
	for r, line := range layout {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("engine: layout row %d has %d cells, expected %d", r, len(runes), cols)
		}
		for c, ch := range runes {
			cell := Cell{Row: r, Col: c}
			switch ch {
			case glyphMineRevealed:
				if status != StatusLost {
					return nil, fmt.Errorf("engine: revealed mine at (%d, %d) in %s layout", r, c, status)
				}
				cell.IsMine, cell.IsRevealed = true, true
				detonated = true
			case glyphMineFlagged:
				cell.IsMine, cell.IsFlagged = true, true
			case glyphMineHidden:
				cell.IsMine = true
			case glyphSafeFlagged:
				cell.IsFlagged = true
			case glyphSafeRevealed:
				cell.IsRevealed = true
				s.safeRevealed++
			case glyphSafeHidden:
			default:
				return nil, fmt.Errorf("engine: unknown layout glyph %q at (%d, %d)", ch, r, c)
			}
			if cell.IsMine {
				s.totalMines++
			}
			if cell.IsFlagged {
				s.flagsUsed++
			}
			s.cells[r*cols+c] = cell
		}
	}

	if status == StatusIdle && (s.totalMines > 0 || s.safeRevealed > 0) {
		return nil, fmt.Errorf("engine: idle layout must have no mines or revealed cells")
	}
	if s.totalMines >= rows*cols {
		return nil, fmt.Errorf("%w: layout is all mines", ErrInvalidMineCount)
	}
	if target := rows*cols - s.totalMines; (status == StatusWon) != (s.safeRevealed == target) {
		return nil, fmt.Errorf("engine: %s layout has %d of %d safe cells revealed", status, s.safeRevealed, target)
	}
	if status == StatusLost && !detonated {
		return nil, fmt.Errorf("engine: lost layout has no revealed mine")
	}

	s.computeNeighborCounts()
	return s, nil
}
