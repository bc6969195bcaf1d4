package harvest

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/fruit-harvest/internal/config"
)

const (
	comboStep    = 0.1
	maxComboMult = 2.0
)

// ScoreResult is the outcome of scoring one catch.
type ScoreResult struct {
	BasePoints      int
	IsBomb          bool
	ComboMultiplier float64
	FinalPoints     int
}

// PointTable holds the base points per kind.
type PointTable map[Kind]int

// NewPointTable reads base points from the config.
func NewPointTable(cfg *config.HarvestConfig) PointTable {
	pt := make(PointTable, len(cfg.Objects))
	for name, obj := range cfg.Objects {
		pt[Kind(name)] = obj.Points
	}
	return pt
}

// Score computes the points for catching kind with comboBefore catches
// already in the current streak. Bombs are always worth nothing.
func (pt PointTable) Score(kind Kind, comboBefore int) ScoreResult {
	base := pt[kind]
	mult := ComboMultiplier(comboBefore)
	if kind.IsBomb() {
		return ScoreResult{BasePoints: base, IsBomb: true, ComboMultiplier: mult}
	}
	return ScoreResult{
		BasePoints:      base,
		ComboMultiplier: mult,
		FinalPoints:     Award(base, comboBefore),
	}
}

// ComboMultiplier returns min(1 + 0.1*comboBefore, 2).
func ComboMultiplier(comboBefore int) float64 {
	if comboBefore < 0 {
		comboBefore = 0
	}
	return math.Min(1+float64(comboBefore)*comboStep, maxComboMult)
}

// Award returns floor(base * ComboMultiplier(comboBefore)).
func Award(base, comboBefore int) int {
	// Round away representation error before flooring: 50*1.1 must be 55.
	return int(math.Floor(float64(base)*ComboMultiplier(comboBefore) + 1e-9))
}

// NextCombo advances a combo counter for a catch at now. A catch within
// window of the previous one extends the streak; anything else starts a new
// streak at 1. A zero last means there was no previous catch.
func NextCombo(last, now time.Time, current int, window time.Duration) int {
	if !last.IsZero() && now.Sub(last) < window {
		return current + 1
	}
	return 1
}

// ComboLabel returns the HUD text for a combo count.
func ComboLabel(count int) string {
	switch {
	case count < 2:
		return ""
	case count < 5:
		return fmt.Sprintf("%dx Combo!", count)
	case count < 10:
		return fmt.Sprintf("%dx Combo! On fire!", count)
	default:
		return fmt.Sprintf("%dx MEGA COMBO!", count)
	}
}
