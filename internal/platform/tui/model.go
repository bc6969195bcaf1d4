package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/games/harvest"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

// Options configures a play session.
type Options struct {
	Harvest *config.HarvestConfig
	Runtime core.RuntimeConfig
	Ledger  storage.Ledger // Optional; nil plays unranked
	Player  string         // Ledger address of the player
	Logger  *log.Logger    // Optional; must not write to the game terminal
	Clock   harvest.Clock  // Optional; tests inject a manual clock
}

func (o *Options) applyDefaults() {
	if o.Harvest == nil {
		cfg := config.DefaultHarvestConfig()
		o.Harvest = &cfg
	}
	def := core.DefaultConfig()
	if o.Runtime.ScreenW <= 0 || o.Runtime.ScreenH <= 0 {
		o.Runtime.ScreenW, o.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = def.TickRate
	}
	if o.Clock == nil {
		o.Clock = harvest.SystemClock{}
	}
	if o.Runtime.Seed == 0 {
		o.Runtime.Seed = o.Clock.Now().UnixNano()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// scoreSubmittedMsg reports the outcome of a ledger submission.
type scoreSubmittedMsg struct {
	score  int
	gameID uint64
	err    error
}

// notice is a one-line status message shown above the field.
type notice struct {
	text  string
	color core.Color
}

// Model is the Bubble Tea model for the play screen.
type Model struct {
	opts   Options
	round  *harvest.Round
	sched  *teaScheduler
	screen *core.Screen
	layout harvest.Layout
	keys   GameKeyMap

	notice          notice
	submitted       bool // Score of the current round already handled
	wantLeaderboard bool
	quitting        bool
}

// NewModel creates a play screen with an idle round.
func NewModel(opts Options) Model {
	opts.applyDefaults()

	layout := harvest.NewLayout(opts.Runtime.ScreenW, opts.Runtime.ScreenH, opts.Harvest.Field)
	w, h := layout.FieldSize()
	sched := newTeaScheduler()

	round := harvest.NewRound(opts.Harvest, harvest.RoundOptions{
		Scheduler: sched,
		Clock:     opts.Clock,
		Rand:      rand.New(rand.NewSource(opts.Runtime.Seed)),
		Width:     w,
		Height:    h,
	})

	return Model{
		opts:   opts,
		round:  round,
		sched:  sched,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		layout: layout,
		keys:   DefaultGameKeyMap(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.sched.Fire()
		submit := m.checkEnded()
		return m, tea.Batch(submit, tickCmd(m.opts.Runtime.TickRate))

	case scoreSubmittedMsg:
		m.handleSubmitted(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.round.Destroy()
		m.quitting = true
		return m, tea.Quit

	case core.ActionStart:
		m.startRound()

	case core.ActionRestart:
		if m.round.State().Status == harvest.StatusEnded {
			m.startRound()
		}

	case core.ActionPause:
		m.round.TogglePause()

	case core.ActionLeaderboard:
		if m.round.State().Status == harvest.StatusPlaying {
			m.round.TogglePause()
		}
		m.wantLeaderboard = true
	}

	return m, nil
}

// handleMouse turns a left-button press into a tap on the field.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x, y, ok := m.layout.CellToPixel(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	if _, hit := m.round.Tap(x, y); !hit {
		return m, nil
	}

	// A bomb may have taken the last life.
	submit := m.checkEnded()
	return m, submit
}

func (m *Model) startRound() {
	switch m.round.State().Status {
	case harvest.StatusIdle, harvest.StatusEnded:
		m.round.Start()
		m.submitted = false
		m.notice = notice{}
	}
}

func (m *Model) resize(width, height int) {
	m.opts.Runtime.ScreenW = width
	m.opts.Runtime.ScreenH = height
	m.screen.Resize(width, height)
	m.layout = harvest.NewLayout(width, height, m.opts.Harvest.Field)
	m.round.Resize(m.layout.FieldSize())
}

// checkEnded submits the final score once per finished round.
func (m *Model) checkEnded() tea.Cmd {
	snap := m.round.State()
	if snap.Status != harvest.StatusEnded || m.submitted {
		return nil
	}
	m.submitted = true

	switch {
	case m.opts.Ledger == nil:
		return nil
	case m.opts.Player == "":
		m.notice = notice{"Playing unranked: score not saved", core.ColorGray}
		return nil
	case snap.Score <= 0:
		return nil
	}

	m.notice = notice{"Saving score...", core.ColorGray}
	return submitScore(m.opts.Ledger, m.opts.Player, snap.Score)
}

func submitScore(ledger storage.Ledger, player string, score int) tea.Cmd {
	return func() tea.Msg {
		id, err := ledger.SubmitScore(context.Background(), player, uint64(score))
		return scoreSubmittedMsg{score: score, gameID: id, err: err}
	}
}

func (m *Model) handleSubmitted(msg scoreSubmittedMsg) {
	if msg.err != nil {
		m.opts.Logger.Warn("score submission failed", "player", m.opts.Player, "score", msg.score, "error", msg.err)
		text := "Score not saved: " + msg.err.Error()
		if errors.Is(msg.err, storage.ErrNotRegistered) {
			text = "Score not saved: player not registered"
		}
		m.notice = notice{text, core.ColorBrightRed}
		return
	}

	m.opts.Logger.Info("score submitted", "player", m.opts.Player, "score", msg.score, "game", msg.gameID)
	m.notice = notice{fmt.Sprintf("Score saved as game #%d", msg.gameID), core.ColorBrightGreen}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.round.Render(m.screen, m.layout)
	if m.notice.text != "" {
		m.screen.DrawColoredText(1, m.layout.Top-1, " "+m.notice.text+" ", m.notice.color)
	}
	return RenderScreen(m.screen)
}

// Round exposes the running round.
func (m Model) Round() *harvest.Round {
	return m.round
}

// IsQuitting returns true if the user asked to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// LeaderboardRequested returns true if the user asked for the leaderboard.
func (m Model) LeaderboardRequested() bool {
	return m.wantLeaderboard
}
