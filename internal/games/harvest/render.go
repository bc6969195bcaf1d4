package harvest

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
)

// HUD rows above the field and hint rows below it.
const (
	hudRows  = 2
	hintRows = 1
)

// Layout maps between terminal cells and play-area pixels.
type Layout struct {
	Cols, Rows   int // Field size in cells
	Top          int // Screen row of the first field row
	CellW, CellH float64
}

// NewLayout fits the field into a screen, leaving room for the HUD.
func NewLayout(screenW, screenH int, field config.FieldConfig) Layout {
	return Layout{
		Cols:  max(screenW, 1),
		Rows:  max(screenH-hudRows-hintRows, 1),
		Top:   hudRows,
		CellW: field.CellWidth,
		CellH: field.CellHeight,
	}
}

// FieldSize returns the play-area size in pixels.
func (l Layout) FieldSize() (width, height float64) {
	return float64(l.Cols) * l.CellW, float64(l.Rows) * l.CellH
}

// CellToPixel returns the pixel at the center of screen cell (col, row).
// It reports false for cells outside the field.
func (l Layout) CellToPixel(col, row int) (x, y float64, ok bool) {
	r := row - l.Top
	if col < 0 || col >= l.Cols || r < 0 || r >= l.Rows {
		return 0, 0, false
	}
	return (float64(col) + 0.5) * l.CellW, (float64(r) + 0.5) * l.CellH, true
}

// ObjectCell returns the screen cell an object is drawn in.
// It reports false while the object is above or below the field.
func (l Layout) ObjectCell(obj FallingObject) (col, row int, ok bool) {
	if obj.Y < 0 {
		return 0, 0, false
	}
	r := int(obj.Y / l.CellH)
	if r >= l.Rows {
		return 0, 0, false
	}
	col = core.Clamp(int(obj.X/100*float64(l.Cols)), 0, l.Cols-1)
	return col, r + l.Top, true
}

// Render draws the round onto dst.
func (r *Round) Render(dst *core.Screen, l Layout) {
	dst.Clear()
	snap := r.engine.State()

	r.drawHUD(dst, snap)
	dst.DrawHLine(0, l.Top-1, dst.Width(), '─')

	for _, obj := range snap.Objects {
		col, row, ok := l.ObjectCell(obj)
		if !ok {
			continue
		}
		dst.SetColored(col, row, obj.Kind.Glyph(), r.colorOf(obj.Kind))
	}

	if tap, ok := r.LastTap(); ok && snap.Status == StatusPlaying {
		msg := fmt.Sprintf("+%d", tap.Points)
		if tap.Bomb {
			msg = "BOOM! -1 life"
		}
		dst.DrawColoredText(dst.Width()-len(msg)-1, l.Top-1, msg, tapColor(tap))
	}

	hint := " Click fruit to catch  |  P: pause  L: leaderboard  Q: quit"
	dst.DrawColoredText(0, dst.Height()-1, hint, core.ColorGray)

	switch snap.Status {
	case StatusIdle:
		drawCenteredMessage(dst, "FRUIT HARVEST", "Press SPACE to start")
	case StatusPaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case StatusEnded:
		st := r.engine.Stats()
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %s  |  Accuracy %.0f%%  |  Press R to restart",
				core.FormatScore(int64(snap.Score)), st.Accuracy()))
	}
}

func (r *Round) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawText(1, 0, "Score: "+core.FormatScore(int64(snap.Score)))

	hearts := strings.Repeat("♥", snap.Lives) + strings.Repeat("♡", max(r.cfg.Session.MaxLives-snap.Lives, 0))
	dst.DrawColoredText(18, 0, hearts, core.ColorRed)

	timeColor := core.ColorDefault
	if snap.TimeLeft <= 10 {
		timeColor = core.ColorBrightRed
	}
	dst.DrawColoredText(30, 0, core.FormatTime(snap.TimeLeft), timeColor)

	dst.DrawColoredText(38, 0, fmt.Sprintf("x%.1f", r.gen.Stage()), core.ColorCyan)

	if label := ComboLabel(snap.Combo); label != "" {
		dst.DrawColoredText(45, 0, label, core.ColorBrightYellow)
	}
}

// colorOf prefers the configured color for kind.
func (r *Round) colorOf(kind Kind) core.Color {
	if obj, ok := r.cfg.Objects[string(kind)]; ok && obj.Color != core.ColorDefault {
		return obj.Color
	}
	return kind.Color()
}

func tapColor(tap TapResult) core.Color {
	if tap.Bomb {
		return core.ColorBrightRed
	}
	return core.ColorBrightGreen
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
