package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// History layout constants
const (
	minWidthForDetails = 100 // Minimum width to show the match detail pane
	detailsWidth       = 34
	maxHistory         = 100 // Max matches to load
)

// HistoryKeyMap defines the key bindings for the match history.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
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

// HistoryModel shows the most recent stored matches.
type HistoryModel struct {
	store       *storage.Store
	matches     []storage.MatchRecord
	detail      *storage.MatchRecord
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showDetails bool
}

// NewHistoryModel creates a history view and loads the matches.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showDetails: width >= minWidthForDetails,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Left", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Right", Width: 12},
		{Title: "Rallies", Width: 8},
		{Title: "Time", Width: 8},
	}

	tableHeight := max(m.height-8, 3) // Leave room for header, help, and margins

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the recent matches from the store.
func (m *HistoryModel) load() {
	m.matches, m.loadErr = nil, nil
	if m.store != nil {
		m.matches, m.loadErr = m.store.RecentMatches(maxHistory)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Player1,
			fmt.Sprintf("%d-%d", r.Score1, r.Score2),
			r.Player2,
			fmt.Sprintf("%d", r.TotalRallies),
			formatDuration(r.Duration),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadDetail()
}

// loadDetail loads the player records of the selected match.
func (m *HistoryModel) loadDetail() {
	m.detail = nil
	if m.store == nil || !m.showDetails {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return
	}
	detail, err := m.store.MatchByID(m.matches[i].MatchID)
	if err == nil {
		m.detail = detail
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadDetail()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetails = m.width >= minWidthForDetails
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := boxStyle.Render(m.renderTableContent())
	if m.showDetails && m.detail != nil {
		details := boxStyle.Width(detailsWidth).Render(m.renderDetail())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", details)
	}
	b.WriteString(content)

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Match history is unavailable.\nNo database is open.")
	case m.loadErr != nil:
		return errorStyle.Padding(2, 4).Render("Could not load matches:\n" + m.loadErr.Error())
	case len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a match to see it here!")
	}

	return m.table.View()
}

// renderDetail renders the per-player records of the selected match.
func (m HistoryModel) renderDetail() string {
	d := m.detail
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(d.Winner+" won"))
	if d.TournamentID != "" {
		fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("Tournament round %d", d.Round)))
	}
	b.WriteString("\n")
	for _, p := range d.Players {
		fmt.Fprintf(&b, "%s\n", p.Player)
		fmt.Fprintf(&b, "  hits %d  spins %d  streak %d\n", p.PaddleHits, p.Effects, p.MaxConsecutiveWins)
		fmt.Fprintf(&b, "  fastest won %s\n", formatDuration(p.FastestWonRally))
		fmt.Fprintf(&b, "  top speed %s\n", formatSpeed(max(p.MaxSpeedWonRally, p.MaxSpeedLostRally)))
	}
	fmt.Fprintf(&b, "\n%s %.1f bounces/rally", labelStyle.Render("avg"), d.AvgBounces)
	return b.String()
}

// IsGoingBack returns true if the user wants to leave the history.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
