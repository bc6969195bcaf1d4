// Package tui provides the Bubble Tea front end for Fruit Harvest.
// It drives a harvest.Round from the terminal event loop and maps keys and
// mouse presses onto it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-harvest/internal/games/harvest"
)

// TickMsg is sent to trigger a frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// teaScheduler is the frame scheduler behind the terminal loop. The engine
// keeps at most one frame pending; it runs on the next TickMsg.
// Only the Bubble Tea update goroutine touches it.
type teaScheduler struct {
	last    harvest.FrameHandle
	pending harvest.FrameHandle
	fn      harvest.FrameFunc
}

var _ harvest.FrameScheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{}
}

// ScheduleNext replaces any pending frame with fn.
func (s *teaScheduler) ScheduleNext(fn harvest.FrameFunc) harvest.FrameHandle {
	s.last++
	s.pending = s.last
	s.fn = fn
	return s.pending
}

// Cancel drops the pending frame if h still refers to it.
func (s *teaScheduler) Cancel(h harvest.FrameHandle) {
	if h == 0 || h != s.pending {
		return
	}
	s.pending = 0
	s.fn = nil
}

// Fire runs the pending frame, if any. The callback may schedule the next one.
func (s *teaScheduler) Fire() bool {
	fn := s.fn
	if fn == nil {
		return false
	}
	s.pending = 0
	s.fn = nil
	fn()
	return true
}

// Pending reports whether a frame is waiting for the next tick.
func (s *teaScheduler) Pending() bool {
	return s.fn != nil
}
