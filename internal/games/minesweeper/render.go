package minesweeper

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/games/minesweeper/engine"
)

const (
	hudHeight    = 2 // Title line and counters line
	footerHeight = 1 // Status message
)

// Cell glyphs.
const (
	glyphHidden    = '■'
	glyphFlag      = 'F'
	glyphMine      = '*'
	glyphWrongFlag = 'X'
	glyphEmpty     = ' '
)

// numberColors is the classic palette for neighbor counts 1-8.
var numberColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorBlue,
	core.ColorRed,
	core.ColorCyan,
	core.ColorWhite,
	core.ColorGray,
}

// boardLayout places the board on screen. Each cell is cellW columns wide
// with its glyph in the second column.
type boardLayout struct {
	x, y  int // Top-left corner of the frame
	cellW int
}

// layout centres the board below the HUD. Cells get a third column for
// cursor brackets when the screen is wide enough.
func (g *Game) layout() boardLayout {
	cols := g.board.Cols()
	cellW := 3
	if cols*cellW+2 > g.screenW {
		cellW = 2
	}
	boxW := cols*cellW + 2
	x := (g.screenW - boxW) / 2
	if x < 0 {
		x = 0
	}
	return boardLayout{x: x, y: hudHeight, cellW: cellW}
}

// width returns the frame width for a board with cols columns.
func (l boardLayout) width(cols int) int {
	return cols*l.cellW + 2
}

// cellOrigin returns the screen column where the cell starts.
func (l boardLayout) cellOrigin(row, col int) (x, y int) {
	return l.x + 1 + col*l.cellW, l.y + 1 + row
}

// frame returns the board's outer rectangle, border included.
func (l boardLayout) frame(rows, cols int) core.Rect {
	return core.NewRect(l.x, l.y, l.width(cols), rows+2)
}

// cellAt maps a screen position to a board cell. Positions on the
// border or outside it miss.
func (l boardLayout) cellAt(x, y, rows, cols int) (row, col int, ok bool) {
	inner := l.frame(rows, cols).Inset(1)
	if !inner.Contains(x, y) {
		return 0, 0, false
	}
	return y - inner.Y, (x - inner.X) / l.cellW, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderFooter(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d for this board", g.preset.Cols*2+2, g.preset.Rows+2+hudHeight+footerHeight)
	dst.DrawTextCentered(y+1, need)
}

// renderHUD draws the title, mines remaining, clock and status.
func (g *Game) renderHUD(dst *core.Screen, l boardLayout) {
	title := g.Title()
	if g.date != "" {
		title += " " + g.date
	}
	dst.DrawTextCenteredWithColor(0, title, core.ColorBrightWhite)

	w := l.width(g.board.Cols())
	mines := fmt.Sprintf("Mines: %d", g.board.MinesRemaining())
	dst.DrawTextWithColor(l.x, 1, mines, core.ColorBrightRed)

	clockStr := daily.FormatClock(g.Duration())
	clockX := l.x + w - len(clockStr)
	if clockX < l.x+len(mines)+1 {
		clockX = l.x + len(mines) + 1
	}
	dst.DrawTextWithColor(clockX, 1, clockStr, core.ColorBrightYellow)

	status, color := g.statusText()
	statusX := l.x + (w-len(status))/2
	if statusX > l.x+len(mines) && statusX+len(status) < clockX {
		dst.DrawTextWithColor(statusX, 1, status, color)
	}
}

func (g *Game) statusText() (string, core.Color) {
	switch {
	case g.paused:
		return "PAUSED", core.ColorYellow
	case g.board.Status() == engine.StatusWon:
		return "CLEARED", core.ColorBrightGreen
	case g.board.Status() == engine.StatusLost:
		return "BOOM", core.ColorBrightRed
	case g.board.Status() == engine.StatusIdle:
		return "READY", core.ColorGray
	}
	return fmt.Sprintf("%d%%", g.cleared()), core.ColorCyan
}

// cleared returns the percentage of safe cells revealed. Only safe cells
// are revealed while the game is in progress.
func (g *Game) cleared() int {
	safe := g.board.Rows()*g.board.Cols() - g.board.TotalMines()
	if safe <= 0 {
		return 100
	}
	return g.board.RevealedCount() * 100 / safe
}

// renderBoard draws the frame, cells and cursor.
func (g *Game) renderBoard(dst *core.Screen, l boardLayout) {
	rows, cols := g.board.Rows(), g.board.Cols()
	frame := l.frame(rows, cols)

	frameColor := core.ColorGray
	switch g.board.Status() {
	case engine.StatusWon:
		frameColor = core.ColorGreen
	case engine.StatusLost:
		frameColor = core.ColorRed
	}
	dst.DrawBox(frame, frameColor)

	for r := range rows {
		for c := range cols {
			x, y := l.cellOrigin(r, c)
			ch, color := g.cellGlyph(g.board.Cell(r, c))
			dst.SetWithColor(x+1, y, ch, color)
		}
	}

	if g.board.Status().Terminal() {
		return
	}

	x, y := l.cellOrigin(g.cursorRow, g.cursorCol)
	if l.cellW >= 3 {
		dst.SetWithColor(x, y, '[', core.ColorBrightYellow)
		dst.SetWithColor(x+2, y, ']', core.ColorBrightYellow)
	} else {
		dst.SetWithColor(x, y, '>', core.ColorBrightYellow)
	}
}

// cellGlyph picks the rune and colour for one cell.
func (g *Game) cellGlyph(c engine.Cell) (rune, core.Color) {
	lost := g.board.Status() == engine.StatusLost

	switch {
	case c.IsFlagged && lost && !c.IsMine:
		return glyphWrongFlag, core.ColorBrightMagenta
	case c.IsFlagged:
		return glyphFlag, core.ColorBrightRed
	case !c.IsRevealed:
		return glyphHidden, core.ColorGray
	case c.IsMine:
		if g.hasBlownUp && g.detonated == [2]int{c.Row, c.Col} {
			return glyphMine, core.ColorBrightRed
		}
		return glyphMine, core.ColorWhite
	case c.NeighborCount == 0:
		return glyphEmpty, core.ColorDefault
	}
	return rune(strconv.Itoa(c.NeighborCount)[0]), numberColors[c.NeighborCount]
}

// renderFooter draws the last status message under the board.
func (g *Game) renderFooter(dst *core.Screen, l boardLayout) {
	if g.message == "" {
		return
	}
	y := l.y + g.board.Rows() + 2
	dst.DrawTextCenteredWithColor(y, g.message, core.ColorCyan)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l boardLayout) {
	centerX := l.x + l.width(g.board.Cols())/2
	centerY := l.y + (g.board.Rows()+2)/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorYellow, "PAUSED", "Press P to resume")
	case g.board.Status() == engine.StatusWon:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightGreen,
			"BOARD CLEARED!", "Time: "+daily.FormatClock(g.Duration()), "R: new board  Q: quit")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	for i, line := range lines {
		dst.DrawTextWithColor(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}
