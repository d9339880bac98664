package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the difficulty sidebar
	sidebarWidth       = 22
	maxTimes           = 10 // Fastest wins shown per difficulty
)

var (
	borderColor    = lipgloss.Color("240")
	highlightColor = lipgloss.Color("229")
	mutedColor     = lipgloss.Color("241")
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/l", "next board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/h", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the fastest wins for each ranked difficulty.
type ScoreboardModel struct {
	presets     []config.BoardPreset
	cursor      int
	store       *storage.Store
	times       []storage.GameRecord
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over the ranked presets of cfg.
func NewScoreboardModel(store *storage.Store, cfg config.MinesweeperConfig, width, height int) ScoreboardModel {
	var presets []config.BoardPreset
	for _, d := range config.Difficulties() {
		if p, err := cfg.Preset(d); err == nil {
			presets = append(presets, p)
		}
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		presets:     presets,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable builds the table sized to the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Player", Width: 12},
		{Title: "Flags", Width: 6},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give spare room to the player column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(highlightColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the fastest wins for the selected preset.
func (m *ScoreboardModel) load() {
	m.times, m.loadErr = nil, nil
	if m.store != nil && len(m.presets) > 0 {
		m.times, m.loadErr = m.store.TopTimes(m.presets[m.cursor].Name, maxTimes)
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded times.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.times))
	for i, g := range m.times {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			daily.FormatClock(g.Duration),
			g.Player,
			fmt.Sprintf("%d/%d", g.FlagsUsed, g.Mines),
			g.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.presets) > 0 {
				m.cursor = (m.cursor + 1) % len(m.presets)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.presets) > 0 {
				m.cursor = (m.cursor - 1 + len(m.presets)) % len(m.presets)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "FASTEST TIMES"
	if len(m.presets) > 0 {
		p := m.presets[m.cursor]
		title = fmt.Sprintf("FASTEST TIMES - %s (%dx%d, %d mines)", p.Title, p.Cols, p.Rows, p.Mines)
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(highlightColor)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout puts the difficulty list beside the table.
func (m ScoreboardModel) renderWideLayout() string {
	var side strings.Builder
	side.WriteString("Boards\n")
	side.WriteString(strings.Repeat("-", sidebarWidth-4))
	side.WriteString("\n")
	for i, p := range m.presets {
		cursor, style := "  ", lipgloss.NewStyle()
		if i == m.cursor {
			cursor, style = "> ", style.Bold(true).Foreground(highlightColor)
		}
		side.WriteString(style.Render(cursor + p.Title))
		side.WriteString("\n")
	}

	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(side.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", m.renderTable())
}

// renderNarrowLayout puts difficulty tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	tabStyle := lipgloss.NewStyle().Foreground(mutedColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(highlightColor).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.presets))
	for i, p := range m.presets {
		if i == m.cursor {
			tabs[i] = activeStyle.Render(p.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + p.Title + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.presets) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.presets[m.cursor].Title)
	}

	return centerText(tabLine, m.width) + "\n\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderTable())
}

// renderTable renders the framed table, or a note when it is empty.
func (m ScoreboardModel) renderTable() string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	note := lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Padding(2, 4)
	switch {
	case m.loadErr != nil:
		return frame.Render(note.Render("Could not load times:\n" + m.loadErr.Error()))
	case len(m.times) == 0:
		return frame.Render(note.Render("No wins recorded yet.\nClear a board to set a time!"))
	}
	return frame.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, cfg config.MinesweeperConfig, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, cfg, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
