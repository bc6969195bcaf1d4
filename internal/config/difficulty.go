package config

import "github.com/vovakirdan/fruit-harvest/internal/core"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// elapsed milliseconds, depending on the progression type.
func (d *DifficultyManager) Level(score int, elapsedMs int64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(elapsedMs) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Multiplier returns the speed factor for the current level:
// 1.0 at level 0, 1.0 + SpeedMultiplier at level 1.
func (d *DifficultyManager) Multiplier(score int, elapsedMs int64) float64 {
	return 1.0 + d.Level(score, elapsedMs)*d.cfg.Scaling.SpeedMultiplier
}

// Speed scales baseSpeed by the current multiplier.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsedMs int64) float64 {
	return baseSpeed * d.Multiplier(score, elapsedMs)
}
