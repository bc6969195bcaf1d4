package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-harvest/internal/core"
)

type sessionScreen int

const (
	screenGame sessionScreen = iota
	screenRegister
	screenLeaderboard
)

// SessionModel manages the full session flow: register -> play <-> leaderboard.
// The game's tick loop keeps running on every screen.
type SessionModel struct {
	opts        Options
	screen      sessionScreen
	game        Model
	register    RegisterModel
	leaderboard LeaderboardModel
	quitting    bool
}

// NewSessionModel creates a session. Players with a ledger address who have
// not registered yet start at the name prompt.
func NewSessionModel(opts Options) SessionModel {
	opts.applyDefaults()

	m := SessionModel{
		opts:   opts,
		screen: screenGame,
		game:   NewModel(opts),
	}

	if opts.Ledger != nil && opts.Player != "" {
		ok, err := opts.Ledger.IsRegistered(context.Background(), opts.Player)
		switch {
		case err != nil:
			opts.Logger.Warn("could not check registration", "player", opts.Player, "error", err)
		case !ok:
			m.screen = screenRegister
			m.register = NewRegisterModel(opts.Ledger, opts.Player, opts.Runtime.ScreenW)
		}
	}

	return m
}

// Init starts the game loop and, if shown, the name prompt.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenRegister {
		return tea.Batch(m.game.Init(), m.register.Init())
	}
	return m.game.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		var c1, c2, c3 tea.Cmd
		m.game, c1 = updateAs[Model](m.game, msg)
		m.register, c2 = updateAs[RegisterModel](m.register, msg)
		m.leaderboard, c3 = updateAs[LeaderboardModel](m.leaderboard, msg)
		return m, tea.Batch(c1, c2, c3)

	case TickMsg, scoreSubmittedMsg:
		// The round belongs to the game screen whatever is displayed
		var cmd tea.Cmd
		m.game, cmd = updateAs[Model](m.game, msg)
		return m, cmd
	}

	switch m.screen {
	case screenRegister:
		return m.updateRegister(msg)
	case screenLeaderboard:
		return m.updateLeaderboard(msg)
	default:
		return m.updateGame(msg)
	}
}

func (m SessionModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.register, cmd = updateAs[RegisterModel](m.register, msg)

	if m.register.IsQuitting() {
		m.game.round.Destroy()
		m.quitting = true
		return m, tea.Quit
	}

	if m.register.Done() {
		m.screen = screenGame
		if m.register.Skipped() {
			m.game.opts.Player = ""
			m.game.notice = notice{"Playing unranked", core.ColorGray}
		} else {
			m.opts.Logger.Info("player registered", "player", m.opts.Player, "name", m.register.Name())
			m.game.notice = notice{fmt.Sprintf("Welcome, %s!", m.register.Name()), core.ColorBrightGreen}
		}
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.game, cmd = updateAs[Model](m.game, msg)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, cmd
	}

	if m.game.LeaderboardRequested() {
		m.game.wantLeaderboard = false
		m.leaderboard = NewLeaderboardModel(m.opts.Ledger, m.game.opts.Player, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenLeaderboard
	}
	return m, cmd
}

func (m SessionModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.leaderboard, cmd = updateAs[LeaderboardModel](m.leaderboard, msg)

	if m.leaderboard.IsQuitting() {
		m.game.round.Destroy()
		m.quitting = true
		return m, tea.Quit
	}

	if m.leaderboard.IsGoingBack() {
		m.screen = screenGame
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenRegister:
		return m.register.View()
	case screenLeaderboard:
		return m.leaderboard.View()
	default:
		return m.game.View()
	}
}

// Game returns the play screen model.
func (m SessionModel) Game() Model {
	return m.game
}

// updateAs runs a sub-model's Update and restores its concrete type.
func updateAs[T tea.Model](model T, msg tea.Msg) (T, tea.Cmd) {
	next, cmd := model.Update(msg)
	if typed, ok := next.(T); ok {
		return typed, cmd
	}
	return model, cmd
}

// Run starts a local session on the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
