package config

import (
	_ "embed"

	"github.com/vovakirdan/fruit-harvest/internal/core"
)

//go:embed defaults/harvest.yaml
var defaultHarvestYAML []byte

// DefaultHarvestConfig returns the default harvest configuration.
// It mirrors defaults/harvest.yaml and is used when the embedded file fails to parse.
func DefaultHarvestConfig() HarvestConfig {
	return HarvestConfig{
		Session: SessionConfig{
			DurationSecs:    120,
			MaxLives:        4,
			SpawnIntervalMs: 1000,
			ComboWindowMs:   1000,
		},
		Field: FieldConfig{
			CellWidth:       10,
			CellHeight:      20,
			OffscreenMargin: 100,
			SpawnY:          -50,
			MinSpawnX:       10,
			MaxSpawnX:       90,
			DefaultHitBox:   Size{Width: 60, Height: 60},
		},
		Objects: map[string]ObjectConfig{
			KindApple:      {Points: 10, SpawnWeight: 30, Speed: SpeedMedium, HitBox: Size{Width: 50, Height: 50}, Color: core.ColorBrightRed},
			KindBanana:     {Points: 15, SpawnWeight: 25, Speed: SpeedSlow, HitBox: Size{Width: 45, Height: 60}, Color: core.ColorBrightYellow},
			KindOrange:     {Points: 20, SpawnWeight: 20, Speed: SpeedMedium, HitBox: Size{Width: 55, Height: 55}, Color: core.ColorOrange},
			KindGrape:      {Points: 25, SpawnWeight: 15, Speed: SpeedFast, HitBox: Size{Width: 45, Height: 45}, Color: core.ColorMagenta},
			KindWatermelon: {Points: 50, SpawnWeight: 10, Speed: SpeedVerySlow, HitBox: Size{Width: 70, Height: 70}, Color: core.ColorBrightGreen},
			KindBomb:       {Points: 0, SpawnWeight: 20, Speed: SpeedMedium, HitBox: Size{Width: 50, Height: 50}, Color: core.ColorGray},
		},
		Speeds: map[string]float64{
			SpeedVerySlow: 1.5,
			SpeedSlow:     2.5,
			SpeedMedium:   3.5,
			SpeedFast:     5.0,
		},
		Level: 1,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 60000, // 60 seconds
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultHarvestYAML
}
