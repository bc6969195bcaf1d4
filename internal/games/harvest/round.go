package harvest

import (
	"math/rand"

	"github.com/vovakirdan/fruit-harvest/internal/config"
)

// RoundOptions wires a Round to its host.
type RoundOptions struct {
	Scheduler FrameScheduler
	Clock     Clock
	Rand      *rand.Rand
	Width     float64 // Play-area width in pixels
	Height    float64 // Play-area height in pixels
	Observer  Observer
}

// TapResult describes what a pointer press hit.
type TapResult struct {
	Object FallingObject
	Bomb   bool
	Points int // Points awarded, 0 for bombs
	Combo  int // Combo count after the tap
}

// Round composes the generator, engine, resolver and point table into one
// playable game. Front ends only deal with a Round.
type Round struct {
	cfg      *config.HarvestConfig
	gen      *Generator
	engine   *Engine
	resolver *Resolver
	points   PointTable
	lastTap  *TapResult
}

// NewRound builds an idle round from cfg.
func NewRound(cfg *config.HarvestConfig, opts RoundOptions) *Round {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Clock.Now().UnixNano()))
	}

	r := &Round{
		cfg:      cfg,
		gen:      NewGenerator(cfg, opts.Rand, opts.Clock),
		resolver: NewResolver(cfg, opts.Width),
		points:   NewPointTable(cfg),
	}

	r.engine = NewEngine(NewEngineConfig(cfg, opts.Height), r.gen.Spawn, opts.Scheduler, opts.Clock, opts.Observer)
	return r
}

// Start begins a new session when idle or after the previous one ended.
func (r *Round) Start() {
	switch r.engine.Status() {
	case StatusIdle, StatusEnded:
		r.lastTap = nil
		r.gen.Reset()
		r.engine.Start()
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (r *Round) TogglePause() {
	switch r.engine.Status() {
	case StatusPlaying:
		r.engine.Pause()
	case StatusPaused:
		r.engine.Resume()
	}
}

// Stop ends the session early.
func (r *Round) Stop() {
	r.engine.Stop()
}

// Destroy releases the engine's pending frame.
func (r *Round) Destroy() {
	r.engine.Destroy()
}

// Resize updates the play-area size in pixels.
func (r *Round) Resize(width, height float64) {
	r.resolver.ContainerWidth = width
	r.engine.SetViewportHeight(height)
}

// Tap resolves a pointer press at pixel (x, y). Fruit is scored, bombs cost
// a life. It reports false when nothing was hit or the round is not running.
func (r *Round) Tap(x, y float64) (TapResult, bool) {
	if r.engine.Status() != StatusPlaying {
		return TapResult{}, false
	}

	objects := r.engine.Objects()
	id, ok := r.resolver.Resolve(x, y, objects)
	if !ok {
		return TapResult{}, false
	}
	var obj FallingObject
	for _, o := range objects {
		if o.ID == id {
			obj = o
			break
		}
	}

	res := TapResult{Object: obj}
	if r.points.Score(obj.Kind, r.engine.Combo()).IsBomb {
		res.Bomb = true
		r.engine.Remove(id)
		r.engine.LoseLife()
	} else {
		before := r.engine.State().Score
		r.engine.CatchObject(id, obj.BasePoints)
		res.Points = r.engine.State().Score - before
	}
	res.Combo = r.engine.Combo()
	r.lastTap = &res
	return res, true
}

// LastTap returns the most recent successful tap of the session, if any.
func (r *Round) LastTap() (TapResult, bool) {
	if r.lastTap == nil {
		return TapResult{}, false
	}
	return *r.lastTap, true
}

// State returns the engine snapshot.
func (r *Round) State() Snapshot {
	return r.engine.State()
}

// Stats returns the session statistics.
func (r *Round) Stats() Stats {
	return r.engine.Stats()
}

// Stage returns the generator's coarse difficulty stage.
func (r *Round) Stage() float64 {
	return r.gen.Stage()
}

// Resolver exposes the underlying resolver.
func (r *Round) Resolver() *Resolver {
	return r.resolver
}
