// Package config provides YAML-based game configuration loading and
// difficulty management for the harvest game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/fruit-harvest/internal/core"
)

// Object kind names as they appear in YAML.
const (
	KindApple      = "apple"
	KindBanana     = "banana"
	KindOrange     = "orange"
	KindGrape      = "grape"
	KindWatermelon = "watermelon"
	KindBomb       = "bomb"
)

// Speed category names as they appear in YAML.
const (
	SpeedVerySlow = "very-slow"
	SpeedSlow     = "slow"
	SpeedMedium   = "medium"
	SpeedFast     = "fast"
)

// HarvestConfig contains all configuration for the fruit harvest game.
type HarvestConfig struct {
	Session    SessionConfig           `yaml:"session"`
	Field      FieldConfig             `yaml:"field"`
	Objects    map[string]ObjectConfig `yaml:"objects"`
	Speeds     map[string]float64      `yaml:"speeds"`
	Level      int                     `yaml:"level"` // Generator difficulty level, 1..3
	Difficulty DifficultyConfig        `yaml:"difficulty"`
}

// SessionConfig defines the limits of a single play-through.
type SessionConfig struct {
	DurationSecs    int `yaml:"duration_secs"`
	MaxLives        int `yaml:"max_lives"`
	SpawnIntervalMs int `yaml:"spawn_interval_ms"`
	ComboWindowMs   int `yaml:"combo_window_ms"`
}

// FieldConfig defines the play area geometry in pixels.
// Terminal front ends map one cell to CellWidth x CellHeight pixels.
type FieldConfig struct {
	CellWidth       float64 `yaml:"cell_width"`
	CellHeight      float64 `yaml:"cell_height"`
	OffscreenMargin float64 `yaml:"offscreen_margin"`
	SpawnY          float64 `yaml:"spawn_y"`
	MinSpawnX       float64 `yaml:"min_spawn_x"` // percent of width
	MaxSpawnX       float64 `yaml:"max_spawn_x"` // percent of width
	DefaultHitBox   Size    `yaml:"default_hit_box"`
}

// ObjectConfig defines one falling object kind.
type ObjectConfig struct {
	Points      int        `yaml:"points"`
	SpawnWeight float64    `yaml:"spawn_weight"`
	Speed       string     `yaml:"speed"` // Empty means random fallback distribution
	HitBox      Size       `yaml:"hit_box"`
	Color       core.Color `yaml:"color,omitempty"` // Empty keeps the built-in color for the kind
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or elapsed milliseconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Validate reports the first problem that would make the config unplayable.
func (c HarvestConfig) Validate() error {
	var errs []error
	if c.Session.DurationSecs <= 0 {
		errs = append(errs, fmt.Errorf("session.duration_secs must be positive, got %d", c.Session.DurationSecs))
	}
	if c.Session.MaxLives <= 0 {
		errs = append(errs, fmt.Errorf("session.max_lives must be positive, got %d", c.Session.MaxLives))
	}
	if c.Session.SpawnIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("session.spawn_interval_ms must be positive, got %d", c.Session.SpawnIntervalMs))
	}
	if c.Field.MinSpawnX >= c.Field.MaxSpawnX {
		errs = append(errs, fmt.Errorf("field.min_spawn_x (%g) must be below field.max_spawn_x (%g)", c.Field.MinSpawnX, c.Field.MaxSpawnX))
	}

	total := 0.0
	for name, obj := range c.Objects {
		if obj.SpawnWeight < 0 {
			errs = append(errs, fmt.Errorf("objects.%s.spawn_weight must not be negative", name))
		}
		if obj.Speed != "" {
			if _, ok := c.Speeds[obj.Speed]; !ok {
				errs = append(errs, fmt.Errorf("objects.%s.speed: unknown category %q", name, obj.Speed))
			}
		}
		total += obj.SpawnWeight
	}
	if total <= 0 {
		errs = append(errs, errors.New("objects: spawn weights sum to zero"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
