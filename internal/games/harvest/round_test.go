package harvest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fruit-harvest/internal/core"
)

type roundFixture struct {
	round  *Round
	sched  *ManualScheduler
	clock  *ManualClock
	layout Layout
	rec    *recorder
}

func newRoundFixture(only ...Kind) *roundFixture {
	cfg := testConfig(only...)
	clock := NewManualClock(testEpoch)
	sched := NewManualScheduler(clock)
	layout := NewLayout(80, 24, cfg.Field)
	w, h := layout.FieldSize()
	rec := &recorder{}

	return &roundFixture{
		round: NewRound(cfg, RoundOptions{
			Scheduler: sched,
			Clock:     clock,
			Rand:      rand.New(rand.NewSource(99)),
			Width:     w,
			Height:    h,
			Observer:  rec.observer(),
		}),
		sched:  sched,
		clock:  clock,
		layout: layout,
		rec:    rec,
	}
}

// center returns the pixel center of an object's hit box.
func (f *roundFixture) center(obj FallingObject) (float64, float64) {
	b := f.round.Resolver().Bounds(obj)
	return b.X + b.W/2, b.Y + b.H/2
}

func TestRoundTapCatchesFruit(t *testing.T) {
	f := newRoundFixture(KindWatermelon)
	f.round.Start()

	objs := f.round.State().Objects
	require.Len(t, objs, 1)

	res, ok := f.round.Tap(f.center(objs[0]))
	require.True(t, ok)
	assert.False(t, res.Bomb)
	assert.Equal(t, 50, res.Points)
	assert.Equal(t, 1, res.Combo)
	assert.Equal(t, 50, f.round.State().Score)
	assert.Empty(t, f.round.State().Objects)

	last, ok := f.round.LastTap()
	require.True(t, ok)
	assert.Equal(t, res, last)
}

func TestRoundTapComboAcrossCatches(t *testing.T) {
	f := newRoundFixture(KindWatermelon)
	f.round.Start()
	f.sched.Frame(time.Second) // second spawn

	objs := f.round.State().Objects
	require.Len(t, objs, 2)

	first, _ := f.round.Tap(f.center(objs[0]))
	f.clock.Advance(200 * time.Millisecond)
	second, ok := f.round.Tap(f.center(objs[1]))

	require.True(t, ok)
	assert.Equal(t, 50, first.Points)
	assert.Equal(t, 55, second.Points)
	assert.Equal(t, 105, f.round.State().Score)
}

func TestRoundTapBombCostsLife(t *testing.T) {
	f := newRoundFixture(KindBomb)
	f.round.Start()

	objs := f.round.State().Objects
	require.Len(t, objs, 1)

	res, ok := f.round.Tap(f.center(objs[0]))
	require.True(t, ok)
	assert.True(t, res.Bomb)
	assert.Equal(t, 0, res.Points)
	assert.Equal(t, 3, f.round.State().Lives)
	assert.Equal(t, 0, f.round.State().Score)
	assert.Empty(t, f.round.State().Objects, "bomb is removed")
	assert.Equal(t, 1, f.round.Stats().BombsHit)
}

func TestRoundBombsEndTheRound(t *testing.T) {
	f := newRoundFixture(KindBomb)
	f.round.Start()

	for i := 0; i < 4; i++ {
		objs := f.round.State().Objects
		require.NotEmpty(t, objs)
		_, ok := f.round.Tap(f.center(objs[len(objs)-1]))
		require.True(t, ok)
		f.sched.Frame(time.Second)
	}

	assert.Equal(t, StatusEnded, f.round.State().Status)
	assert.Equal(t, 0, f.round.State().Lives)
	assert.Equal(t, []int{0}, f.rec.ends)
}

func TestRoundTapMissAndInactive(t *testing.T) {
	f := newRoundFixture(KindApple)

	_, ok := f.round.Tap(100, 100)
	assert.False(t, ok, "idle")

	f.round.Start()
	_, ok = f.round.Tap(-1000, -1000)
	assert.False(t, ok, "miss")

	objs := f.round.State().Objects
	f.round.TogglePause()
	_, ok = f.round.Tap(f.center(objs[0]))
	assert.False(t, ok, "paused")
	assert.Len(t, f.round.State().Objects, 1)

	f.round.TogglePause()
	_, ok = f.round.Tap(f.center(objs[0]))
	assert.True(t, ok, "resumed")
}

func TestRoundStartResetsGenerator(t *testing.T) {
	f := newRoundFixture(KindApple)
	f.round.Start()
	f.clock.Advance(50 * time.Second)
	f.round.Stop()

	f.round.Start()
	objs := f.round.State().Objects
	require.Len(t, objs, 1)
	assert.True(t, strings.HasPrefix(objs[0].ID, "obj-1-"))
	assert.InDelta(t, 3.5, objs[0].Speed, 1e-9)
	assert.Equal(t, 1.0, f.round.Stage())
}

func TestRoundStartIgnoredWhileRunning(t *testing.T) {
	f := newRoundFixture(KindApple)
	f.round.Start()
	f.sched.Frame(time.Second)
	require.Len(t, f.round.State().Objects, 2)

	f.round.Start()
	assert.Len(t, f.round.State().Objects, 2)
}

func TestRoundTapThroughLayout(t *testing.T) {
	f := newRoundFixture(KindWatermelon)
	f.round.Start()
	f.sched.Frame(900 * time.Millisecond) // 81px down, before the second spawn

	obj := f.round.State().Objects[0]
	col, row, ok := f.layout.ObjectCell(obj)
	require.True(t, ok)

	x, y, ok := f.layout.CellToPixel(col, row)
	require.True(t, ok)
	res, hit := f.round.Tap(x, y)
	require.True(t, hit)
	assert.Equal(t, obj.ID, res.Object.ID)
}

func TestRoundResize(t *testing.T) {
	f := newRoundFixture(KindApple)
	f.round.Resize(400, 100)
	f.round.Start()

	assert.Equal(t, 400.0, f.round.Resolver().ContainerWidth)
	f.sched.Frame(5 * time.Second) // 3.5 * 300 px, well past 100 + 100
	for _, obj := range f.round.State().Objects {
		assert.Less(t, obj.Y, 200.0)
	}
}

func TestRoundDestroy(t *testing.T) {
	f := newRoundFixture()
	f.round.Start()
	f.round.Destroy()

	assert.Equal(t, 0, f.sched.Pending())
	assert.Equal(t, StatusEnded, f.round.State().Status)
}

func TestLayout(t *testing.T) {
	l := NewLayout(80, 24, testConfig().Field)

	assert.Equal(t, 80, l.Cols)
	assert.Equal(t, 21, l.Rows)
	w, h := l.FieldSize()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 420.0, h)

	x, y, ok := l.CellToPixel(0, l.Top)
	assert.True(t, ok)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 10.0, y)

	_, _, ok = l.CellToPixel(5, 0)
	assert.False(t, ok, "HUD row")
	_, _, ok = l.CellToPixel(80, l.Top)
	assert.False(t, ok)

	_, _, ok = l.ObjectCell(FallingObject{X: 50, Y: -50})
	assert.False(t, ok, "above the field")
	col, row, ok := l.ObjectCell(FallingObject{X: 50, Y: 45})
	assert.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, l.Top+2, row)
}

func TestRoundRender(t *testing.T) {
	f := newRoundFixture(KindGrape)
	scr := core.NewScreen(80, 24)

	f.round.Render(scr, f.layout)
	assert.Contains(t, scr.String(), "FRUIT HARVEST")

	f.round.Start()
	f.sched.Frame(time.Second)
	f.round.Render(scr, f.layout)
	assert.Contains(t, scr.Row(0), "Score: 0")
	assert.Contains(t, scr.Row(0), "♥♥♥♥")
	assert.Contains(t, scr.Row(0), "01:59")

	obj := f.round.State().Objects[0]
	col, row, ok := f.layout.ObjectCell(obj)
	require.True(t, ok)
	cell := scr.GetCell(col, row)
	assert.Equal(t, KindGrape.Glyph(), cell.Rune)
	assert.Equal(t, KindGrape.Color(), cell.Color)

	grape := f.round.cfg.Objects[string(KindGrape)]
	grape.Color = core.ColorCyan
	f.round.cfg.Objects[string(KindGrape)] = grape
	f.round.Render(scr, f.layout)
	assert.Equal(t, core.ColorCyan, scr.GetCell(col, row).Color, "configured color wins")

	f.round.TogglePause()
	f.round.Render(scr, f.layout)
	assert.Contains(t, scr.String(), "PAUSED")

	f.round.Stop()
	f.round.Render(scr, f.layout)
	assert.Contains(t, scr.String(), "GAME OVER")
}
