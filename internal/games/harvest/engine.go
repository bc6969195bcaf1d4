package harvest

import (
	"time"

	"github.com/vovakirdan/fruit-harvest/internal/config"
)

// MinSpawnInterval is the floor enforced by SetSpawnInterval.
const MinSpawnInterval = 300 * time.Millisecond

// Status is the engine's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusEnded
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Observer receives engine notifications. Nil fields are skipped.
// Object slices passed to OnObjectsUpdate are copies.
type Observer struct {
	OnScoreUpdate   func(score int)
	OnLivesUpdate   func(lives int)
	OnTimerUpdate   func(secondsLeft int)
	OnStatusChange  func(status Status)
	OnObjectsUpdate func(objects []FallingObject)
	OnGameEnd       func(finalScore int)
}

// SpawnFunc returns a new object, or false to skip this spawn opportunity.
type SpawnFunc func() (FallingObject, bool)

// EngineConfig holds the session limits and field geometry.
type EngineConfig struct {
	Duration        time.Duration
	MaxLives        int
	SpawnInterval   time.Duration
	ComboWindow     time.Duration
	ViewportHeight  float64 // Pixels
	OffscreenMargin float64 // Pixels below the viewport before an object expires
}

// NewEngineConfig builds an EngineConfig from the game config.
func NewEngineConfig(cfg *config.HarvestConfig, viewportHeight float64) EngineConfig {
	return EngineConfig{
		Duration:        time.Duration(cfg.Session.DurationSecs) * time.Second,
		MaxLives:        cfg.Session.MaxLives,
		SpawnInterval:   time.Duration(cfg.Session.SpawnIntervalMs) * time.Millisecond,
		ComboWindow:     time.Duration(cfg.Session.ComboWindowMs) * time.Millisecond,
		ViewportHeight:  viewportHeight,
		OffscreenMargin: cfg.Field.OffscreenMargin,
	}
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Status   Status
	Score    int
	Lives    int
	TimeLeft int
	Combo    int
	Elapsed  time.Duration
	Objects  []FallingObject
}

// Engine owns one session: score, lives, timer and the live objects. It is
// driven by a FrameScheduler and is not safe for concurrent use; every call
// must come from the goroutine that runs the scheduled frames.
type Engine struct {
	cfg   EngineConfig
	spawn SpawnFunc
	sched FrameScheduler
	clock Clock
	obs   Observer

	status     Status
	frame      FrameHandle // Pending frame, zero when none
	lastTick   time.Time
	elapsed    time.Duration
	sinceSpawn time.Duration

	score     int
	lives     int
	timeLeft  int
	objects   []FallingObject
	combo     int
	lastCatch time.Time
	stats     Stats
}

// NewEngine creates an idle engine.
func NewEngine(cfg EngineConfig, spawn SpawnFunc, sched FrameScheduler, clock Clock, obs Observer) *Engine {
	e := &Engine{
		cfg:      cfg,
		spawn:    spawn,
		sched:    sched,
		clock:    clock,
		obs:      obs,
		lives:    cfg.MaxLives,
		timeLeft: durationSecs(cfg.Duration),
		stats:    newStats(),
	}
	e.SetSpawnInterval(cfg.SpawnInterval)
	return e
}

// Start begins a new session from idle or ended. It resets all session state,
// notifies observers and runs the first frame immediately.
func (e *Engine) Start() {
	if e.status == StatusPlaying || e.status == StatusPaused {
		return
	}
	e.reset()
	e.setStatus(StatusPlaying)
	e.lastTick = e.clock.Now()
	e.tick()
}

// Pause freezes the session. No-op unless playing.
func (e *Engine) Pause() {
	if e.status != StatusPlaying {
		return
	}
	e.cancelFrame()
	e.setStatus(StatusPaused)
}

// Resume continues a paused session. Time spent paused is not counted: the
// next delta is measured from the moment of resuming.
func (e *Engine) Resume() {
	if e.status != StatusPaused {
		return
	}
	e.setStatus(StatusPlaying)
	e.lastTick = e.clock.Now()
	e.tick()
}

// Stop ends a playing or paused session and reports the final score.
func (e *Engine) Stop() {
	if e.status != StatusPlaying && e.status != StatusPaused {
		return
	}
	e.end()
}

// Destroy releases the pending frame. A running session is stopped first.
func (e *Engine) Destroy() {
	e.Stop()
	e.cancelFrame()
}

// SetSpawnInterval changes the gap between spawns, floored at 300ms.
func (e *Engine) SetSpawnInterval(d time.Duration) {
	if d < MinSpawnInterval {
		d = MinSpawnInterval
	}
	e.cfg.SpawnInterval = d
}

// SpawnInterval returns the current gap between spawns.
func (e *Engine) SpawnInterval() time.Duration {
	return e.cfg.SpawnInterval
}

// SetViewportHeight updates the field height used for expiring objects.
func (e *Engine) SetViewportHeight(h float64) {
	e.cfg.ViewportHeight = h
}

// CatchObject removes the object with id and awards points scaled by the
// current combo. Outside of play it does nothing.
func (e *Engine) CatchObject(id string, points int) {
	if e.status != StatusPlaying {
		return
	}
	now := e.clock.Now()
	obj, found := e.remove(id)

	e.combo = NextCombo(e.lastCatch, now, e.combo, e.cfg.ComboWindow)
	e.lastCatch = now
	e.score += Award(points, e.combo-1)
	if found {
		e.stats.recordCatch(obj.Kind, e.combo)
	}

	e.notifyScore()
	e.notifyObjects()
}

// LoseLife takes a life and breaks the combo. The session ends when no lives
// remain. Outside of play it does nothing.
func (e *Engine) LoseLife() {
	if e.status != StatusPlaying {
		return
	}
	if e.lives > 0 {
		e.lives--
	}
	e.combo = 0
	e.stats.BombsHit++
	if e.obs.OnLivesUpdate != nil {
		e.obs.OnLivesUpdate(e.lives)
	}
	if e.lives == 0 {
		e.end()
	}
}

// Remove drops a live object without scoring it.
func (e *Engine) Remove(id string) (FallingObject, bool) {
	if e.status != StatusPlaying {
		return FallingObject{}, false
	}
	obj, ok := e.remove(id)
	if ok {
		e.notifyObjects()
	}
	return obj, ok
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Combo returns the current combo count.
func (e *Engine) Combo() int {
	return e.combo
}

// Objects returns a copy of the live objects in spawn order.
func (e *Engine) Objects() []FallingObject {
	return e.copyObjects()
}

// State returns a snapshot of the session.
func (e *Engine) State() Snapshot {
	return Snapshot{
		Status:   e.status,
		Score:    e.score,
		Lives:    e.lives,
		TimeLeft: e.timeLeft,
		Combo:    e.combo,
		Elapsed:  e.elapsed,
		Objects:  e.copyObjects(),
	}
}

// Stats returns a copy of the session statistics.
func (e *Engine) Stats() Stats {
	return e.stats.clone()
}

// tick runs one frame.
func (e *Engine) tick() {
	e.frame = 0
	if e.status != StatusPlaying {
		return
	}

	now := e.clock.Now()
	delta := now.Sub(e.lastTick)
	if delta < 0 {
		delta = 0
	}
	e.lastTick = now

	e.elapsed += delta
	e.timeLeft = max(0, durationSecs(e.cfg.Duration)-int(e.elapsed/time.Second))
	if e.obs.OnTimerUpdate != nil {
		e.obs.OnTimerUpdate(e.timeLeft)
		if e.interrupted() {
			return
		}
	}
	if e.timeLeft == 0 {
		e.end()
		return
	}

	e.sinceSpawn += delta
	if e.sinceSpawn >= e.cfg.SpawnInterval {
		if obj, ok := e.spawn(); ok {
			e.objects = append(e.objects, obj)
		}
		e.sinceSpawn = 0
	}

	fall := delta.Seconds() * 60
	for i := range e.objects {
		e.objects[i].Y += e.objects[i].Speed * fall
	}
	e.expire()

	e.notifyObjects()
	if e.interrupted() {
		return
	}
	e.frame = e.sched.ScheduleNext(e.tick)
}

// interrupted reports whether an observer changed the session mid-tick. A
// nested tick started by Resume has already scheduled the next frame.
func (e *Engine) interrupted() bool {
	return e.status != StatusPlaying || e.frame != 0
}

// expire removes objects that have fallen past the bottom margin.
func (e *Engine) expire() {
	limit := e.cfg.ViewportHeight + e.cfg.OffscreenMargin
	kept := e.objects[:0]
	for _, obj := range e.objects {
		if obj.Y >= limit {
			if !obj.Kind.IsBomb() {
				e.stats.Missed++
			}
			continue
		}
		kept = append(kept, obj)
	}
	e.objects = kept
}

func (e *Engine) reset() {
	e.cancelFrame()
	e.score = 0
	e.lives = e.cfg.MaxLives
	e.timeLeft = durationSecs(e.cfg.Duration)
	e.objects = nil
	e.elapsed = 0
	e.sinceSpawn = e.cfg.SpawnInterval // First frame spawns
	e.combo = 0
	e.lastCatch = time.Time{}
	e.stats = newStats()

	e.notifyScore()
	if e.obs.OnLivesUpdate != nil {
		e.obs.OnLivesUpdate(e.lives)
	}
	if e.obs.OnTimerUpdate != nil {
		e.obs.OnTimerUpdate(e.timeLeft)
	}
	e.notifyObjects()
}

func (e *Engine) end() {
	e.cancelFrame()
	e.setStatus(StatusEnded)
	if e.obs.OnGameEnd != nil {
		e.obs.OnGameEnd(e.score)
	}
}

func (e *Engine) remove(id string) (FallingObject, bool) {
	for i, obj := range e.objects {
		if obj.ID == id {
			e.objects = append(e.objects[:i], e.objects[i+1:]...)
			return obj, true
		}
	}
	return FallingObject{}, false
}

func (e *Engine) cancelFrame() {
	if e.frame != 0 {
		e.sched.Cancel(e.frame)
		e.frame = 0
	}
}

func (e *Engine) setStatus(s Status) {
	e.status = s
	if e.obs.OnStatusChange != nil {
		e.obs.OnStatusChange(s)
	}
}

func (e *Engine) notifyScore() {
	if e.obs.OnScoreUpdate != nil {
		e.obs.OnScoreUpdate(e.score)
	}
}

func (e *Engine) notifyObjects() {
	if e.obs.OnObjectsUpdate != nil {
		e.obs.OnObjectsUpdate(e.copyObjects())
	}
}

func (e *Engine) copyObjects() []FallingObject {
	out := make([]FallingObject, len(e.objects))
	copy(out, e.objects)
	return out
}

func durationSecs(d time.Duration) int {
	return int(d / time.Second)
}
