package harvest

import (
	"time"

	"github.com/kamstrup/intmap"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FrameFunc is a callback run on the next animation frame.
type FrameFunc func()

// FrameHandle identifies a scheduled frame so it can be cancelled.
// The zero handle never refers to a pending frame.
type FrameHandle uint64

// FrameScheduler is the host's animation-frame facility.
// Implementations run callbacks on the same goroutine that drives the engine.
type FrameScheduler interface {
	ScheduleNext(fn FrameFunc) FrameHandle
	Cancel(h FrameHandle)
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// ManualScheduler is a FrameScheduler driven explicitly by tests or
// headless runners. Frame advances the attached clock and runs whatever was
// scheduled before the call; callbacks scheduled during the frame wait for
// the next one.
type ManualScheduler struct {
	clock   *ManualClock
	next    FrameHandle
	pending *intmap.Map[FrameHandle, FrameFunc]
	order   []FrameHandle
}

// NewManualScheduler creates a scheduler that advances clock on every frame.
func NewManualScheduler(clock *ManualClock) *ManualScheduler {
	return &ManualScheduler{
		clock:   clock,
		pending: intmap.New[FrameHandle, FrameFunc](4),
	}
}

// ScheduleNext queues fn for the next frame.
func (s *ManualScheduler) ScheduleNext(fn FrameFunc) FrameHandle {
	s.next++
	s.pending.Put(s.next, fn)
	s.order = append(s.order, s.next)
	return s.next
}

// Cancel drops a pending frame. Unknown handles are ignored.
func (s *ManualScheduler) Cancel(h FrameHandle) {
	s.pending.Del(h)
}

// Pending returns the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	return s.pending.Len()
}

// Frame advances the clock by dt and runs the pending callbacks in the order
// they were scheduled.
func (s *ManualScheduler) Frame(dt time.Duration) {
	s.clock.Advance(dt)

	batch := s.order
	s.order = nil
	for _, h := range batch {
		fn, ok := s.pending.Get(h)
		if !ok {
			continue
		}
		s.pending.Del(h)
		fn()
	}
}

// Run steps frames of size dt until total time has passed or nothing is
// pending. It returns the number of frames run.
func (s *ManualScheduler) Run(total, dt time.Duration) int {
	frames := 0
	for elapsed := time.Duration(0); elapsed < total && s.Pending() > 0; elapsed += dt {
		s.Frame(dt)
		frames++
	}
	return frames
}
