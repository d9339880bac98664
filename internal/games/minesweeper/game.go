// Package minesweeper drives the board engine from platform input frames.
// It owns the cursor, the game clock and rendering; the rules live in the
// engine subpackage.
package minesweeper

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/games/minesweeper/engine"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

// Mode selects how the board is chosen.
type Mode string

const (
	ModeBeginner     Mode = "beginner"
	ModeIntermediate Mode = "intermediate"
	ModeExpert       Mode = "expert"
	ModeCustom       Mode = "custom"
	ModeDaily        Mode = "daily"
)

// Package-level settings shared by every new game.
var (
	settingsMu  sync.Mutex
	configPath  string
	customBoard *config.BoardPreset
	savedBoard  *engine.Snapshot
	clock       = time.Now
)

// SetConfigPath sets the YAML config file used by Reset.
// Empty means the default search order.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetCustomBoard sets the board used by the custom mode.
func SetCustomBoard(rows, cols, mines int) error {
	p, err := config.CustomPreset(rows, cols, mines)
	if err != nil {
		return err
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	customBoard = &p
	savedBoard = nil
	return nil
}

// LoadBoard makes the custom mode start from a YAML board snapshot, as
// written by MarshalBoard. Finished boards are rejected. Restarting puts
// the board back to the loaded position.
func LoadBoard(data []byte) error {
	sn, err := engine.ParseSnapshot(data)
	if err != nil {
		return err
	}
	s, err := sn.State()
	if err != nil {
		return fmt.Errorf("minesweeper: invalid board: %w", err)
	}
	if s.Status().Terminal() {
		return fmt.Errorf("minesweeper: board is already %s", s.Status())
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	savedBoard = &sn
	customBoard = nil
	return nil
}

type sessionSettings struct {
	configPath string
	custom     *config.BoardPreset
	saved      *engine.Snapshot
	now        func() time.Time
}

func settings() sessionSettings {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return sessionSettings{
		configPath: configPath,
		custom:     customBoard,
		saved:      savedBoard,
		now:        clock,
	}
}

// Game implements registry.Game for one mode.
type Game struct {
	mode   Mode
	cfg    config.MinesweeperConfig
	preset config.BoardPreset
	seed   int64
	date   string // daily challenge key, empty for classic modes
	board  *engine.GameState

	cursorRow int
	cursorCol int

	tick     uint64
	elapsed  uint64 // ticks spent playing, pauses excluded
	tickRate int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	message    string
	detonated  [2]int // row, col of the mine that ended the game
	hasBlownUp bool
}

// New creates a game for the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

func init() {
	for _, mode := range []Mode{ModeBeginner, ModeIntermediate, ModeExpert, ModeCustom, ModeDaily} {
		registry.Register(string(mode), func() registry.Game {
			return New(mode)
		})
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeBeginner:
		return "Beginner"
	case ModeIntermediate:
		return "Intermediate"
	case ModeExpert:
		return "Expert"
	case ModeCustom:
		return "Custom"
	case ModeDaily:
		return "Daily Challenge"
	}
	return string(g.mode)
}

// Reset builds a fresh board for the mode.
// Classic modes draw mines from cfg.Seed; the daily challenge seeds from
// today's UTC date so every player gets the same board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	set := settings()
	saved := set.saved
	if g.mode != ModeCustom {
		saved = nil
	}

	g.message = ""
	g.cfg = g.loadConfig(set.configPath)
	g.preset = g.resolvePreset(set.custom)

	g.date = ""
	g.seed = cfg.Seed
	switch {
	case g.mode == ModeDaily:
		g.date = daily.Key(set.now())
		g.seed = daily.Seed(g.date)
	case saved != nil:
		g.seed = saved.Seed
	}

	rng := rand.New(rand.NewPCG(uint64(g.seed), uint64(g.seed)^0x9e3779b97f4a7c15))
	opts := []engine.Option{
		engine.WithRand(rng),
		engine.WithMaxPlacementAttempts(g.cfg.Placement.MaxAttempts),
	}
	var (
		board *engine.GameState
		err   error
	)
	if saved != nil {
		board, err = saved.State(opts...)
	} else {
		board, err = engine.CreateEmptyBoard(g.preset.Rows, g.preset.Cols, g.preset.Mines, opts...)
	}
	if err != nil {
		// Presets and saved boards are validated on load, so only a broken
		// build gets here.
		panic(fmt.Sprintf("minesweeper: invalid board %q: %v", g.preset.Name, err))
	}
	g.board = board
	if saved != nil {
		g.preset = config.BoardPreset{
			Name:  string(config.DifficultyCustom),
			Title: "Saved board",
			Rows:  board.Rows(),
			Cols:  board.Cols(),
			Mines: board.TotalMines(),
		}
	}

	g.cursorRow = g.preset.Rows / 2
	g.cursorCol = g.preset.Cols / 2

	g.tick = 0
	g.elapsed = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

	g.paused = false
	g.hasBlownUp = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

func (g *Game) loadConfig(path string) config.MinesweeperConfig {
	cfg, err := config.LoadMinesweeper(path)
	if err != nil {
		g.message = "Config error, using defaults"
		return config.DefaultMinesweeperConfig()
	}
	return cfg
}

func (g *Game) resolvePreset(custom *config.BoardPreset) config.BoardPreset {
	var (
		p   config.BoardPreset
		err error
	)
	switch g.mode {
	case ModeDaily:
		p, err = g.cfg.DailyPreset()
	case ModeCustom:
		if custom != nil {
			return *custom
		}
		p, err = g.cfg.Preset(config.DifficultyIntermediate)
		p.Name = string(config.DifficultyCustom)
	default:
		p, err = g.cfg.Preset(config.DifficultyPreset(g.mode))
	}
	if err != nil {
		p = config.DefaultMinesweeperConfig().Presets[0]
	}
	return p
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW := g.preset.Cols*2 + 2
	minH := g.preset.Rows + 2 + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.board.Status()

	if in.Has(core.ActionPause) && !status.Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if status == engine.StatusPlaying {
		g.elapsed++
	}

	if status.Terminal() {
		if in.Has(core.ActionRevealMines) {
			g.apply(engine.RevealMines(g.board), nil)
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionReveal):
		g.revealAt(g.cursorRow, g.cursorCol)
	case in.Has(core.ActionFlag):
		g.apply(engine.ToggleFlag(g.board, g.cursorRow, g.cursorCol))
	case in.Has(core.ActionChord):
		g.apply(engine.ChordReveal(g.board, g.cursorRow, g.cursorCol))
	}

	if in.HasClick() && !g.board.Status().Terminal() {
		g.handleClick(in.Click)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursorRow--
	case in.Has(core.ActionDown):
		g.cursorRow++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, g.board.Rows()-1)
	g.cursorCol = core.Clamp(g.cursorCol, 0, g.board.Cols()-1)
}

// revealAt reveals a hidden cell, or chords an already revealed number.
func (g *Game) revealAt(row, col int) {
	if g.board.Cell(row, col).IsRevealed {
		g.apply(engine.ChordReveal(g.board, row, col))
		return
	}
	g.apply(engine.RevealCell(g.board, row, col))
}

// handleClick maps a pointer press onto the board. Presses outside the
// board are ignored.
func (g *Game) handleClick(c core.Click) {
	row, col, ok := g.layout().cellAt(c.X, c.Y, g.board.Rows(), g.board.Cols())
	if !ok {
		return
	}
	g.cursorRow, g.cursorCol = row, col

	switch c.Button {
	case core.ButtonLeft:
		g.revealAt(row, col)
	case core.ButtonRight:
		g.apply(engine.ToggleFlag(g.board, row, col))
	case core.ButtonMiddle:
		g.apply(engine.ChordReveal(g.board, row, col))
	}
}

// apply installs the next board state and reacts to what changed.
func (g *Game) apply(next *engine.GameState, err error) {
	if err != nil {
		g.message = err.Error()
		return
	}

	events := engine.Diff(g.board, next)
	prev := g.board
	g.board = next

	for _, ev := range events {
		switch ev.Kind {
		case engine.EventRevealed:
			if next.Cell(ev.Row, ev.Col).IsMine && prev.Status() != engine.StatusLost {
				g.detonated = [2]int{ev.Row, ev.Col}
				g.hasBlownUp = true
			}
		case engine.EventFlagged:
			g.message = fmt.Sprintf("Flagged %s", cellName(ev.Row, ev.Col))
		case engine.EventUnflagged:
			g.message = fmt.Sprintf("Unflagged %s", cellName(ev.Row, ev.Col))
		case engine.EventStarted:
			g.message = "Good luck!"
		}
	}

	switch {
	case engine.Count(events, engine.EventWon) > 0:
		g.message = fmt.Sprintf("Cleared in %s!", daily.FormatClock(g.Duration()))
	case engine.Count(events, engine.EventLost) > 0:
		g.message = "Boom! Press M to show the mines"
	case engine.Count(events, engine.EventRevealed) > 1:
		g.message = fmt.Sprintf("Opened %d cells", engine.Count(events, engine.EventRevealed))
	}
}

// cellName formats a coordinate as column letter(s) and 1-based row, like "C7".
func cellName(row, col int) string {
	name := ""
	for c := col; ; c = c/26 - 1 {
		name = string(rune('A'+c%26)) + name
		if c < 26 {
			break
		}
	}
	return fmt.Sprintf("%s%d", name, row+1)
}

// Duration returns the time on the game clock.
func (g *Game) Duration() time.Duration {
	if g.tickRate <= 0 {
		return 0
	}
	return time.Duration(g.elapsed) * time.Second / time.Duration(g.tickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.board.Status()
	return core.GameState{
		Score:    int(g.Duration() / time.Second),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result returns the outcome once the game has ended.
func (g *Game) Result() (core.GameResult, bool) {
	status := g.board.Status()
	if !status.Terminal() {
		return core.GameResult{}, false
	}
	won := status == engine.StatusWon
	return core.GameResult{
		Mode:       string(g.mode),
		Difficulty: g.preset.Name,
		Rows:       g.board.Rows(),
		Cols:       g.board.Cols(),
		Mines:      g.board.TotalMines(),
		Won:        won,
		Duration:   g.Duration(),
		FlagsUsed:  g.board.FlagsUsed(),
		Perfect:    won && g.board.FlagsUsed() == g.board.TotalMines(),
		FlagsExact: g.board.FlagsExact(),
		DailyDate:  g.date,
		Seed:       g.seed,
	}, true
}

// Board returns the current engine state.
func (g *Game) Board() *engine.GameState {
	return g.board
}

// Cursor returns the cursor position.
func (g *Game) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Space: Reveal | F: Flag | C: Chord | M: Mines | P: Pause | R: New | Q: Quit"
}
