package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

// registeredMsg reports the outcome of a registration attempt.
type registeredMsg struct {
	name string
	err  error
}

// RegisterModel prompts an unregistered player for a display name.
type RegisterModel struct {
	ledger storage.Ledger
	player string
	input  textinput.Model
	help   help.Model
	keys   RegisterKeyMap
	width  int
	err    error

	busy     bool
	name     string // Set once registration succeeded
	done     bool
	skipped  bool
	quitting bool
}

// NewRegisterModel creates the registration prompt for player.
func NewRegisterModel(ledger storage.Ledger, player string, width int) RegisterModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = storage.MaxNameLength
	ti.Width = 30
	ti.Focus()

	return RegisterModel{
		ledger: ledger,
		player: player,
		input:  ti,
		help:   help.New(),
		keys:   DefaultRegisterKeyMap(),
		width:  width,
	}
}

// Init starts the cursor blink.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.skipped = true
			m.done = true
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			if m.busy {
				return m, nil
			}
			name, err := storage.ValidateName(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.busy = true
			return m, register(m.ledger, m.player, name)
		}

	case registeredMsg:
		m.busy = false
		// A retried registration that already went through counts as success.
		if msg.err != nil && !errors.Is(msg.err, storage.ErrAlreadyRegistered) {
			m.err = msg.err
			return m, nil
		}
		m.name = msg.name
		m.done = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func register(ledger storage.Ledger, player, name string) tea.Cmd {
	return func() tea.Msg {
		err := ledger.Register(context.Background(), player, name)
		return registeredMsg{name: name, err: err}
	}
}

// View renders the prompt.
func (m RegisterModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("FRUIT HARVEST", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText("Pick a name for the leaderboard", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Player "+core.TruncateAddress(m.player, addressPrefix, addressSuffix)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(frameStyle.Render(m.input.View()), m.width))
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(centerText(mutedStyle.Render("Registering..."), m.width))
	case m.err != nil:
		b.WriteString(centerText(errorStyle.Render(m.err.Error()), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Done returns true once the player registered or chose to skip.
func (m RegisterModel) Done() bool {
	return m.done
}

// Skipped returns true if the player chose to play unranked.
func (m RegisterModel) Skipped() bool {
	return m.skipped
}

// Name returns the registered name.
func (m RegisterModel) Name() string {
	return m.name
}

// IsQuitting returns true if user wants to quit entirely.
func (m RegisterModel) IsQuitting() bool {
	return m.quitting
}
