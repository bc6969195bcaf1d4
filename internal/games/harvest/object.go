// Package harvest implements the fruit harvest game: a pausable, frame-driven
// loop that spawns falling fruit and bombs, advances them, and scores catches.
//
// The package is front-end agnostic. Coordinates are in pixels (vertical) and
// percent of play-area width (horizontal); front ends translate pointer input
// into that space and call Round.Tap.
package harvest

import (
	"time"

	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
)

// Kind identifies a falling object variant.
type Kind string

const (
	KindApple      Kind = config.KindApple
	KindBanana     Kind = config.KindBanana
	KindOrange     Kind = config.KindOrange
	KindGrape      Kind = config.KindGrape
	KindWatermelon Kind = config.KindWatermelon
	KindBomb       Kind = config.KindBomb
)

// Kinds lists every kind in spawn-table order. The order matters for the
// weighted draw: ties at a cumulative boundary go to the earlier kind.
var Kinds = []Kind{KindApple, KindBanana, KindOrange, KindGrape, KindWatermelon, KindBomb}

// IsBomb reports whether the kind costs a life instead of scoring.
func (k Kind) IsBomb() bool {
	return k == KindBomb
}

// Glyph returns the rune used to draw the kind on a terminal screen.
func (k Kind) Glyph() rune {
	switch k {
	case KindApple:
		return 'a'
	case KindBanana:
		return ')'
	case KindOrange:
		return 'o'
	case KindGrape:
		return '%'
	case KindWatermelon:
		return 'W'
	case KindBomb:
		return '*'
	default:
		return '?'
	}
}

// Color returns the display color for the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindApple:
		return core.ColorBrightRed
	case KindBanana:
		return core.ColorBrightYellow
	case KindOrange:
		return core.ColorOrange
	case KindGrape:
		return core.ColorMagenta
	case KindWatermelon:
		return core.ColorBrightGreen
	case KindBomb:
		return core.ColorGray
	default:
		return core.ColorDefault
	}
}

// SpeedCategory is a named base fall speed.
type SpeedCategory string

const (
	SpeedVerySlow SpeedCategory = config.SpeedVerySlow
	SpeedSlow     SpeedCategory = config.SpeedSlow
	SpeedMedium   SpeedCategory = config.SpeedMedium
	SpeedFast     SpeedCategory = config.SpeedFast
)

// FallingObject is a single spawned entity.
// X is fixed at spawn; only the engine mutates Y.
type FallingObject struct {
	ID            string
	Kind          Kind
	X             float64 // Percent of play-area width
	Y             float64 // Pixels from the top, negative while above the field
	Speed         float64 // Pixels per frame at a 60fps baseline
	SpeedCategory SpeedCategory
	BasePoints    int
	SpawnedAt     time.Time
}
