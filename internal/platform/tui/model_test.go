package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
	"github.com/vovakirdan/fruit-harvest/internal/games/harvest"
	"github.com/vovakirdan/fruit-harvest/internal/storage"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// onlyKind returns the default config spawning nothing but kind.
func onlyKind(kind string) *config.HarvestConfig {
	cfg := config.DefaultHarvestConfig()
	for name, obj := range cfg.Objects {
		if name != kind {
			obj.SpawnWeight = 0
			cfg.Objects[name] = obj
		}
	}
	return &cfg
}

func openLedger(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

type modelFixture struct {
	model Model
	clock *harvest.ManualClock
}

func newModelFixture(kind string, ledger storage.Ledger, player string) *modelFixture {
	clock := harvest.NewManualClock(testEpoch)
	return &modelFixture{
		model: NewModel(Options{
			Harvest: onlyKind(kind),
			Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
			Ledger:  ledger,
			Player:  player,
			Clock:   clock,
		}),
		clock: clock,
	}
}

func (f *modelFixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *modelFixture) key(s string) tea.Cmd {
	if s == " " {
		return f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// frame advances the clock and delivers one tick.
func (f *modelFixture) frame(d time.Duration) tea.Cmd {
	f.clock.Advance(d)
	return f.send(TickMsg(f.clock.Now()))
}

func (f *modelFixture) click(obj harvest.FallingObject) tea.Cmd {
	col, row, ok := f.model.layout.ObjectCell(obj)
	if !ok {
		return nil
	}
	return f.send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (f *modelFixture) state() harvest.Snapshot {
	return f.model.Round().State()
}

func TestModelStartAndPause(t *testing.T) {
	f := newModelFixture(config.KindApple, nil, "")
	assert.Equal(t, harvest.StatusIdle, f.state().Status)
	assert.Contains(t, f.model.View(), "Press SPACE to start")

	f.key(" ")
	assert.Equal(t, harvest.StatusPlaying, f.state().Status)
	assert.Len(t, f.state().Objects, 1)

	f.key("p")
	assert.Equal(t, harvest.StatusPaused, f.state().Status)
	assert.False(t, f.model.sched.Pending(), "paused rounds have no pending frame")
	assert.Contains(t, f.model.View(), "PAUSED")

	f.key("p")
	assert.Equal(t, harvest.StatusPlaying, f.state().Status)
}

func TestModelTicksDriveTheRound(t *testing.T) {
	f := newModelFixture(config.KindApple, nil, "")
	f.key(" ")

	y := f.state().Objects[0].Y
	f.frame(100 * time.Millisecond)
	assert.Greater(t, f.state().Objects[0].Y, y)
	assert.Equal(t, 120, f.state().TimeLeft)

	f.frame(time.Second)
	assert.Equal(t, 119, f.state().TimeLeft)
	assert.Len(t, f.state().Objects, 2)
}

func TestModelClickCatchesFruit(t *testing.T) {
	f := newModelFixture(config.KindWatermelon, nil, "")
	f.key(" ")
	f.frame(900 * time.Millisecond)

	objs := f.state().Objects
	require.Len(t, objs, 1)
	f.click(objs[0])

	assert.Equal(t, 50, f.state().Score)
	assert.Empty(t, f.state().Objects)
}

func TestModelIgnoresOtherMouseEvents(t *testing.T) {
	f := newModelFixture(config.KindWatermelon, nil, "")
	f.key(" ")
	f.frame(900 * time.Millisecond)

	obj := f.state().Objects[0]
	col, row, ok := f.model.layout.ObjectCell(obj)
	require.True(t, ok)

	f.send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	f.send(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	f.send(tea.MouseMsg{X: col, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Len(t, f.state().Objects, 1)
	assert.Zero(t, f.state().Score)
}

func TestModelSubmitsScoreOnce(t *testing.T) {
	ledger := openLedger(t)
	ctx := context.Background()
	require.NoError(t, ledger.Register(ctx, "SP1", "alice"))

	f := newModelFixture(config.KindWatermelon, ledger, "SP1")
	f.key(" ")
	f.frame(900 * time.Millisecond)
	f.click(f.state().Objects[0])

	f.clock.Advance(2 * time.Minute)
	f.model.sched.Fire()
	require.Equal(t, harvest.StatusEnded, f.state().Status)

	cmd := f.model.checkEnded()
	require.NotNil(t, cmd)
	assert.Nil(t, f.model.checkEnded(), "second check must not resubmit")

	msg := cmd()
	f.send(msg)
	assert.Contains(t, f.model.notice.text, "Score saved")

	best, err := ledger.PlayerBestScore(ctx, "SP1")
	require.NoError(t, err)
	assert.Equal(t, uint64(50), best)

	// A restart arms the next submission.
	f.key("r")
	assert.Equal(t, harvest.StatusPlaying, f.state().Status)
	assert.False(t, f.model.submitted)
	assert.Empty(t, f.model.notice.text)
}

func TestModelSkipsEmptyOrUnrankedScores(t *testing.T) {
	ledger := openLedger(t)

	f := newModelFixture(config.KindApple, ledger, "")
	f.key(" ")
	f.key(" ") // no-op while playing
	f.model.Round().Stop()
	assert.Nil(t, f.model.checkEnded())
	assert.Contains(t, f.model.notice.text, "unranked")

	f = newModelFixture(config.KindApple, ledger, "SP1")
	f.key(" ")
	f.model.Round().Stop()
	assert.Nil(t, f.model.checkEnded(), "zero scores are not submitted")
}

func TestModelReportsSubmitFailure(t *testing.T) {
	ledger := openLedger(t)

	f := newModelFixture(config.KindWatermelon, ledger, "ghost")
	f.key(" ")
	f.frame(900 * time.Millisecond)
	f.click(f.state().Objects[0])
	f.model.Round().Stop()

	cmd := f.model.checkEnded()
	require.NotNil(t, cmd)
	f.send(cmd())
	assert.Equal(t, "Score not saved: player not registered", f.model.notice.text)
	assert.Equal(t, core.ColorBrightRed, f.model.notice.color)
}

func TestModelLeaderboardKeyPauses(t *testing.T) {
	f := newModelFixture(config.KindApple, nil, "")
	f.key(" ")
	f.key("l")

	assert.True(t, f.model.LeaderboardRequested())
	assert.Equal(t, harvest.StatusPaused, f.state().Status)
}

func TestModelResize(t *testing.T) {
	f := newModelFixture(config.KindApple, nil, "")
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, f.model.layout.Cols)
	assert.Equal(t, 1000.0, f.model.Round().Resolver().ContainerWidth)
	assert.Equal(t, 100, f.model.screen.Width())
}

func TestModelQuit(t *testing.T) {
	f := newModelFixture(config.KindApple, nil, "")
	f.key(" ")
	cmd := f.key("q")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, f.model.IsQuitting())
	assert.Equal(t, harvest.StatusEnded, f.state().Status)
	assert.Empty(t, f.model.View())
}
