package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

// Leaderboard layout constants
const (
	maxLeaderboardEntries = 100
	addressPrefix         = 6
	addressSuffix         = 4
)

// LeaderboardModel is the Bubble Tea model for the leaderboard screen.
type LeaderboardModel struct {
	ledger  storage.Ledger
	player  string
	entries []storage.LeaderboardEntry
	mine    *storage.PlayerInfo
	games   uint64
	err     error

	table     table.Model
	help      help.Model
	keys      LeaderboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewLeaderboardModel creates a leaderboard screen and loads the ranking.
func NewLeaderboardModel(ledger storage.Ledger, player string, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		ledger: ledger,
		player: player,
		keys:   DefaultLeaderboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 20},
		{Title: "Best", Width: 10},
		{Title: "Games", Width: 7},
		{Title: "Last played", Width: 14},
	}

	// Give the name column whatever is left
	if avail := m.width - 8 - 6 - 10 - 7 - 14 - 10; avail > columns[1].Width {
		columns[1].Width = min(avail, 32)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// load fetches the ranking and the current player's record.
func (m *LeaderboardModel) load() {
	m.err = nil
	m.entries = nil
	m.mine = nil
	if m.ledger == nil {
		m.updateTableRows()
		return
	}

	ctx := context.Background()
	entries, err := storage.Leaderboard(ctx, m.ledger, maxLeaderboardEntries)
	if err != nil {
		m.err = err
		m.updateTableRows()
		return
	}
	m.entries = entries

	if games, err := m.ledger.TotalGames(ctx); err == nil {
		m.games = games
	}
	if m.player != "" {
		if info, err := m.ledger.PlayerInfo(ctx, m.player); err == nil {
			m.mine = info
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table and puts the cursor on the current player.
func (m *LeaderboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	cursor := 0
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			displayName(e),
			core.FormatScore(int64(e.BestScore)),
			fmt.Sprintf("%d", e.TotalGames),
			e.LastPlayed.Format("Jan 02 15:04"),
		}
		if e.Address == m.player {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

func displayName(e storage.LeaderboardEntry) string {
	if e.Name != "" {
		return e.Name
	}
	return core.TruncateAddress(e.Address, addressPrefix, addressSuffix)
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keys.Action(msg) {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionBack:
			m.goingBack = true
			return m, nil
		case core.ActionRefresh:
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("LEADERBOARD", m.width)))
	b.WriteString("\n")

	if m.games > 0 {
		b.WriteString(centerText(helpStyle.Render(fmt.Sprintf("%d players ranked, %d games played", len(m.entries), m.games)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centerText(frameStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.mine != nil {
		line := fmt.Sprintf("You: %s  best %s over %d games",
			m.mine.Name, core.FormatScore(int64(m.mine.BestScore)), m.mine.TotalGames)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table, an error or the empty message.
func (m LeaderboardModel) renderTableContent() string {
	switch {
	case m.ledger == nil:
		return mutedStyle.Padding(2, 4).Render("No ledger configured.\nScores are not being recorded.")
	case m.err != nil:
		return errorStyle.Padding(1, 2).Render("Could not load the leaderboard:\n" + m.err.Error())
	case len(m.entries) == 0:
		return mutedStyle.Padding(2, 4).Render("No scores recorded yet.\nPlay a round to claim the top spot!")
	}
	return m.table.View()
}

// Entries returns the loaded ranking.
func (m LeaderboardModel) Entries() []storage.LeaderboardEntry {
	return m.entries
}

// Err returns the last load error.
func (m LeaderboardModel) Err() error {
	return m.err
}

// IsGoingBack returns true if user wants to return to the game.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}
