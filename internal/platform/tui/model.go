package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/progress"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

// DefaultSnapshotDir is where ctrl+s writes board snapshots.
const DefaultSnapshotDir = "~/.mines/snapshots"

// resizer is implemented by games that can adapt to a new screen size
// without losing the board.
type resizer interface {
	Resize(w, h int)
}

// boardMarshaler is implemented by games that can save their board.
type boardMarshaler interface {
	MarshalBoard() ([]byte, error)
}

// Options configures a game session.
type Options struct {
	Tracker     *progress.Tracker // nil disables recording
	Logger      *log.Logger       // nil discards
	SnapshotDir string            // empty means DefaultSnapshotDir
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	tracker    *progress.Tracker
	logger     *log.Logger
	snapDir    string
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	recorded   bool   // result of the current board has been stored
	notice     string // shown on the bottom row until the next board
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	snapDir := opts.SnapshotDir
	if snapDir == "" {
		snapDir = DefaultSnapshotDir
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		tracker:    opts.Tracker,
		logger:     logger,
		snapDir:    snapDir,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		now:        time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveSnapshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) || m.inputFrame.Has(core.ActionBack) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the board when the game supports it and restarts
// otherwise.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = m.now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.notice = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.record()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record stores the finished game once. Failures are logged and the game
// keeps running.
func (m *Model) record() {
	m.recorded = true
	if m.tracker == nil {
		return
	}

	res, ok := m.game.Result()
	if !ok {
		return
	}

	out, err := m.tracker.Record(res)
	if err != nil {
		m.logger.Error("cannot record game", "mode", res.Mode, "err", err)
		m.notice = "Could not save this game"
		return
	}
	m.notice = outcomeNotice(out)
}

// outcomeNotice summarizes what a recorded game achieved.
func outcomeNotice(out progress.Outcome) string {
	var parts []string
	if out.NewBest {
		parts = append(parts, "New best time!")
	}
	if out.DailyCompleted {
		parts = append(parts, "Daily challenge complete!")
	}
	for _, a := range out.Unlocked {
		parts = append(parts, "Unlocked: "+a.Name)
	}
	return strings.Join(parts, "  ")
}

// saveSnapshot writes the board, or the screen for games without one,
// to the snapshot directory.
func (m *Model) saveSnapshot() {
	dir, err := config.ExpandHome(m.snapDir)
	if err != nil {
		m.logger.Error("cannot resolve snapshot dir", "err", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("cannot create snapshot dir", "dir", dir, "err", err)
		m.notice = "Could not save snapshot"
		return
	}

	var (
		data []byte
		ext  = "txt"
	)
	if bm, ok := m.game.(boardMarshaler); ok {
		data, err = bm.MarshalBoard()
		if err != nil {
			m.logger.Error("cannot encode board", "err", err)
			m.notice = "Could not save snapshot"
			return
		}
		ext = "yaml"
	} else {
		m.game.Render(m.screen)
		data = []byte(m.screen.String())
	}

	name := fmt.Sprintf("%s_%s.%s", m.game.ID(), m.now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		m.logger.Error("cannot write snapshot", "path", path, "err", err)
		m.notice = "Could not save snapshot"
		return
	}
	m.logger.Info("snapshot saved", "path", path)
	m.notice = "Saved " + name
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCenteredWithColor(m.screen.Height()-1, m.notice, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// Notice returns the message shown under the game.
func (m Model) Notice() string {
	return m.notice
}

// Run starts the Bubble Tea program for one game session.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
