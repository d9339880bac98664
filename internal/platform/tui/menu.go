package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/progress"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

// MenuItemKind tells what selecting an item opens.
type MenuItemKind int

const (
	MenuItemGame MenuItemKind = iota
	MenuItemScoreboard
	MenuItemStats
)

// MenuItem represents a selectable menu row.
type MenuItem struct {
	Kind   MenuItemKind
	GameID string
	Title  string
	Detail string // right-hand note, e.g. best time
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuDailyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	dailyLine string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a menu listing every registered mode followed by
// the scoreboard and stats screens. A nil tracker hides progress details.
func NewMenuModel(tracker *progress.Tracker, cfg core.RuntimeConfig) MenuModel {
	var sum *progress.Summary
	if tracker != nil {
		if s, err := tracker.Summary(); err == nil {
			sum = &s
		}
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{
			Kind:   MenuItemGame,
			GameID: g.ID,
			Title:  g.Title,
			Detail: modeDetail(g.ID, sum),
		})
	}
	items = append(items,
		MenuItem{Kind: MenuItemScoreboard, Title: "Fastest Times"},
		MenuItem{Kind: MenuItemStats, Title: "Statistics"},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		dailyLine: dailyLine(sum),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func modeDetail(id string, sum *progress.Summary) string {
	if sum == nil {
		return ""
	}
	switch id {
	case "daily":
		if sum.Daily.Completed {
			return "done " + daily.FormatClock(sum.Daily.Duration)
		}
		return ""
	case "custom":
		// Custom boards vary in size, so a best time means nothing.
		return ""
	}
	if best, ok := sum.Classic.BestTimes[id]; ok {
		return "best " + daily.FormatClock(best)
	}
	return ""
}

func dailyLine(sum *progress.Summary) string {
	if sum == nil {
		return ""
	}
	status := "not completed"
	if sum.Daily.Completed {
		status = "completed"
	}
	return fmt.Sprintf("Daily challenge %s  |  streak %d  |  resets in %s",
		status, sum.DailyStreak, daily.FormatCountdown(sum.UntilReset))
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.selected = &MenuItem{Kind: MenuItemScoreboard}
		return m, tea.Quit

	case MenuActionStats:
		m.selected = &MenuItem{Kind: MenuItemStats}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M I N E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	nameW, detailW := 0, 0
	for _, item := range m.items {
		nameW = max(nameW, len(item.Title))
		detailW = max(detailW, len(item.Detail))
	}
	lineW := 2 + nameW + 2 + detailW

	for i, item := range m.items {
		if item.Kind != MenuItemGame && (i == 0 || m.items[i-1].Kind == MenuItemGame) {
			b.WriteString("\n")
		}

		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
		}
		line := cursor + fmt.Sprintf("%-*s", nameW, item.Title)
		if item.Detail != "" {
			line += "  " + menuDetailStyle.Render(item.Detail)
		}
		// Pad so every row centers on the same column.
		line += strings.Repeat(" ", max(0, lineW-lipgloss.Width(line)))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.dailyLine != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuDailyStyle.Render(m.dailyLine), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Times  |  T: Stats  |  Q: Quit"
	b.WriteString(centerText(menuDetailStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width, measuring printable
// cells so styled strings line up.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	WantsStats      bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(tracker *progress.Tracker, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(tracker, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}

func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.quitting || m.selected == nil:
		res.Quit = true
	case m.selected.Kind == MenuItemScoreboard:
		res.WantsScoreboard = true
	case m.selected.Kind == MenuItemStats:
		res.WantsStats = true
	default:
		res.GameID = m.selected.GameID
	}
	return res
}
