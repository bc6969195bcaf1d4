package harvest

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
)

const (
	minLevel = 1
	maxLevel = 3

	defaultPoints = 10 // Points for a kind missing from the config

	bombFastChance = 0.7
)

// fallbackSpeeds is the distribution used for fruit without a configured
// speed category. Thresholds are cumulative.
var fallbackSpeeds = []struct {
	upTo     float64
	category SpeedCategory
}{
	{0.1, SpeedVerySlow},
	{0.4, SpeedSlow},
	{0.8, SpeedMedium},
	{1.0, SpeedFast},
}

// Generator produces new falling objects with randomized kind, column and
// speed. Fall speed grows with time since the last Reset.
type Generator struct {
	cfg        *config.HarvestConfig
	rng        *rand.Rand
	clock      Clock
	difficulty *config.DifficultyManager

	weights []float64 // Parallel to Kinds
	total   float64

	level     int
	counter   int
	startedAt time.Time
}

// NewGenerator creates a generator. All randomness comes from rng and all
// elapsed time from clock, so a seeded rng and a manual clock give a
// repeatable spawn sequence.
func NewGenerator(cfg *config.HarvestConfig, rng *rand.Rand, clock Clock) *Generator {
	g := &Generator{
		cfg:        cfg,
		rng:        rng,
		clock:      clock,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		weights:    make([]float64, len(Kinds)),
	}
	for i, k := range Kinds {
		w := cfg.Objects[string(k)].SpawnWeight
		if w < 0 {
			w = 0
		}
		g.weights[i] = w
		g.total += w
	}
	g.SetDifficulty(cfg.Level)
	g.Reset()
	return g
}

// Reset restarts the id counter and the elapsed-time baseline.
// The difficulty level is kept.
func (g *Generator) Reset() {
	g.counter = 0
	g.startedAt = g.clock.Now()
}

// SetDifficulty sets the global speed factor, clamped to [1, 3].
func (g *Generator) SetDifficulty(level int) {
	g.level = core.Clamp(level, minLevel, maxLevel)
}

// Level returns the current difficulty level.
func (g *Generator) Level() int {
	return g.level
}

// Elapsed returns the time since the last Reset.
func (g *Generator) Elapsed() time.Duration {
	return g.clock.Now().Sub(g.startedAt)
}

// Next creates a new object above the visible area.
func (g *Generator) Next() FallingObject {
	now := g.clock.Now()
	kind := g.pickKind()
	category := g.pickSpeed(kind)

	g.counter++
	return FallingObject{
		ID:            fmt.Sprintf("obj-%d-%d", g.counter, now.UnixMilli()),
		Kind:          kind,
		X:             g.pickColumn(),
		Y:             g.cfg.Field.SpawnY,
		Speed:         g.speedFor(category),
		SpeedCategory: category,
		BasePoints:    g.pointsFor(kind),
		SpawnedAt:     now,
	}
}

// Spawn adapts Next to the engine's spawn factory signature.
func (g *Generator) Spawn() (FallingObject, bool) {
	return g.Next(), true
}

// Stage returns the coarse difficulty stage for the HUD:
// 1.0 under 30s, 1.2 under 60s, 1.5 under 90s, 2.0 after.
func (g *Generator) Stage() float64 {
	secs := g.Elapsed().Seconds()
	switch {
	case secs < 30:
		return 1.0
	case secs < 60:
		return 1.2
	case secs < 90:
		return 1.5
	default:
		return 2.0
	}
}

// pickKind draws a kind by cumulative weight. Weights need not sum to any
// particular total; the draw is scaled to their sum.
func (g *Generator) pickKind() Kind {
	draw := g.rng.Float64() * g.total
	cumulative := 0.0
	for i, k := range Kinds {
		cumulative += g.weights[i]
		if g.weights[i] > 0 && draw <= cumulative {
			return k
		}
	}
	return KindApple
}

func (g *Generator) pickColumn() float64 {
	lo, hi := g.cfg.Field.MinSpawnX, g.cfg.Field.MaxSpawnX
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) pickSpeed(kind Kind) SpeedCategory {
	if kind.IsBomb() {
		if g.rng.Float64() < bombFastChance {
			return SpeedFast
		}
		return SpeedMedium
	}

	if obj, ok := g.cfg.Objects[string(kind)]; ok && obj.Speed != "" {
		return SpeedCategory(obj.Speed)
	}

	r := g.rng.Float64()
	for _, s := range fallbackSpeeds {
		if r < s.upTo {
			return s.category
		}
	}
	return SpeedFast
}

// speedFor scales the category's base speed by elapsed time and level.
func (g *Generator) speedFor(category SpeedCategory) float64 {
	base := g.cfg.Speeds[string(category)]
	elapsedMs := g.Elapsed().Milliseconds()
	return g.difficulty.Speed(base, 0, elapsedMs) * float64(g.level)
}

func (g *Generator) pointsFor(kind Kind) int {
	if obj, ok := g.cfg.Objects[string(kind)]; ok {
		return obj.Points
	}
	return defaultPoints
}
