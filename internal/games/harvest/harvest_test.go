package harvest

import (
	"time"

	"github.com/vovakirdan/fruit-harvest/internal/config"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// testConfig returns the default config with spawn weights zeroed for every
// kind not listed. With no kinds listed the defaults are kept.
func testConfig(only ...Kind) *config.HarvestConfig {
	cfg := config.DefaultHarvestConfig()
	if len(only) == 0 {
		return &cfg
	}
	keep := make(map[string]bool, len(only))
	for _, k := range only {
		keep[string(k)] = true
	}
	for name, obj := range cfg.Objects {
		if !keep[name] {
			obj.SpawnWeight = 0
			cfg.Objects[name] = obj
		}
	}
	return &cfg
}

// recorder captures every observer notification.
type recorder struct {
	scores   []int
	lives    []int
	timers   []int
	statuses []Status
	objects  [][]FallingObject
	ends     []int
}

func (r *recorder) observer() Observer {
	return Observer{
		OnScoreUpdate:   func(s int) { r.scores = append(r.scores, s) },
		OnLivesUpdate:   func(l int) { r.lives = append(r.lives, l) },
		OnTimerUpdate:   func(t int) { r.timers = append(r.timers, t) },
		OnStatusChange:  func(s Status) { r.statuses = append(r.statuses, s) },
		OnObjectsUpdate: func(o []FallingObject) { r.objects = append(r.objects, o) },
		OnGameEnd:       func(s int) { r.ends = append(r.ends, s) },
	}
}

func (r *recorder) lastObjects() []FallingObject {
	if len(r.objects) == 0 {
		return nil
	}
	return r.objects[len(r.objects)-1]
}
