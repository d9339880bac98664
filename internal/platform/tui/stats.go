package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/achievements"
	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/daily"
	"github.com/vovakirdan/tui-mines/internal/progress"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

const (
	recentGames = 5
	barWidth    = 20
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(highlightColor).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	rarityStyles = map[achievements.Rarity]lipgloss.Style{
		achievements.Common:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		achievements.Rare:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		achievements.Epic:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		achievements.Legendary: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// StatsModel shows play statistics, the daily challenge and achievements.
type StatsModel struct {
	tracker   *progress.Tracker
	presets   []config.BoardPreset
	summary   progress.Summary
	recent    []storage.GameRecord
	loadErr   error
	resetAt   time.Time
	viewport  viewport.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	now       func() time.Time
}

// NewStatsModel creates the stats screen. Best times are listed for the
// ranked presets of cfg.
func NewStatsModel(tracker *progress.Tracker, cfg config.MinesweeperConfig, width, height int) StatsModel {
	var presets []config.BoardPreset
	for _, d := range config.Difficulties() {
		if p, err := cfg.Preset(d); err == nil {
			presets = append(presets, p)
		}
	}

	h := help.New()
	h.Width = width

	m := StatsModel{
		tracker:  tracker,
		presets:  presets,
		viewport: viewport.New(width, max(1, height-4)),
		help:     h,
		keys:     DefaultStatsKeyMap(),
		width:    width,
		height:   height,
		now:      time.Now,
	}
	m.load()
	return m
}

// load reads the summary and recent games from the tracker.
func (m *StatsModel) load() {
	if m.tracker == nil {
		m.loadErr = errors.New("no stats database")
	} else {
		m.summary, m.loadErr = m.tracker.Summary()
		if m.loadErr == nil {
			m.recent, m.loadErr = m.tracker.Recent(recentGames)
		}
	}
	m.resetAt = m.now().Add(m.summary.UntilReset)
	m.refresh()
}

// refresh re-renders the scrollable content.
func (m *StatsModel) refresh() {
	if m.loadErr != nil {
		m.viewport.SetContent(badStyle.Render("Could not load stats: " + m.loadErr.Error()))
		return
	}
	sum := m.summary
	sum.UntilReset = max(0, m.resetAt.Sub(m.now()))
	m.viewport.SetContent(renderStats(sum, m.presets, m.recent))
}

// Init starts the countdown ticker.
func (m StatsModel) Init() tea.Cmd {
	return tickCmd(1)
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-4)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case TickMsg:
		// A new day starts a new challenge.
		if !m.now().Before(m.resetAt) {
			m.load()
		} else {
			m.refresh()
		}
		return m, tickCmd(1)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(highlightColor).Render("STATISTICS")
	return centerText(title, m.width) + "\n\n" +
		m.viewport.View() + "\n" +
		labelStyle.Render(m.help.View(m.keys))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// renderStats lays out every section of the stats screen.
func renderStats(sum progress.Summary, presets []config.BoardPreset, recent []storage.GameRecord) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Classic games"))
	b.WriteString("\n")
	if c := sum.Classic; c != nil {
		row(&b, "Played", fmt.Sprintf("%d", c.Total))
		row(&b, "Won", fmt.Sprintf("%d (%d%%)", c.Won, c.WinRate()))
		row(&b, "Lost", fmt.Sprintf("%d", c.Lost))
		row(&b, "Streak", fmt.Sprintf("%d (longest %d)", c.CurrentStreak, c.LongestStreak))
		if !c.LastPlayed.IsZero() {
			row(&b, "Last played", c.LastPlayed.Local().Format("Jan 02 15:04"))
		}
		for _, p := range presets {
			best := "--:--"
			if d, ok := c.BestTimes[p.Name]; ok {
				best = daily.FormatClock(d)
			}
			row(&b, "Best "+p.Title, best)
		}
	}

	b.WriteString(sectionStyle.Render("Daily challenge"))
	b.WriteString("\n")
	if sum.Daily.Completed {
		row(&b, "Today", goodStyle.Render("completed in "+daily.FormatClock(sum.Daily.Duration)))
	} else {
		row(&b, "Today", "not completed")
	}
	row(&b, "Streak", fmt.Sprintf("%d day(s)", sum.DailyStreak))
	row(&b, "Completed", fmt.Sprintf("%d", sum.DailyTotal))
	row(&b, "Next board in", daily.FormatCountdown(sum.UntilReset))

	catalogue := achievements.Catalogue()
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Achievements %d/%d",
		achievements.Unlocked(sum.Achievements), len(catalogue))))
	b.WriteString("\n")
	for _, def := range catalogue {
		b.WriteString(achievementLine(def, sum.Achievements[def.ID]))
		b.WriteString("\n")
	}

	if len(recent) > 0 {
		b.WriteString(sectionStyle.Render("Recent games"))
		b.WriteString("\n")
		for _, g := range recent {
			result := badStyle.Render("lost")
			if g.Won {
				result = goodStyle.Render("won ")
			}
			fmt.Fprintf(&b, "  %s  %-12s %s  %s\n",
				g.CreatedAt.Local().Format("Jan 02 15:04"), g.Difficulty, result, daily.FormatClock(g.Duration))
		}
	}

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label)), value)
}

// achievementLine renders one achievement with its progress.
func achievementLine(def achievements.Definition, st achievements.State) string {
	mark := lockedStyle.Render("[ ]")
	name := lockedStyle.Render(fmt.Sprintf("%-20s", def.Name))
	if st.Unlocked {
		mark = goodStyle.Render("[x]")
		name = rarityStyles[def.Rarity].Render(fmt.Sprintf("%-20s", def.Name))
	}

	detail := def.Description
	switch {
	case st.Unlocked:
		detail += labelStyle.Render(" " + st.UnlockedAt.Local().Format("Jan 02"))
	case def.MaxProgress > 0:
		detail = progressBar(st.Progress, def.MaxProgress) + " " + detail
	}
	return fmt.Sprintf("  %s %s %-9s %s", mark, name, def.Rarity, detail)
}

// progressBar draws a fixed-width bar followed by "n/max".
func progressBar(n, maxN int) string {
	n = min(max(n, 0), maxN)
	filled := barWidth * n / maxN
	return goodStyle.Render(strings.Repeat("█", filled)) +
		lockedStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %d/%d", n, maxN)
}

// RunStats runs the stats screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(tracker *progress.Tracker, cfg config.MinesweeperConfig, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsModel(tracker, cfg, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
