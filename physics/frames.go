package physics

import (
	"sync"
	"time"
)

// FrameHandle identifies a scheduled frame callback so it can be cancelled.
type FrameHandle uint64

// FrameScheduler abstracts the display-refresh primitive the decay loop runs
// on. Injecting it lets tests step the simulation synchronously without a real
// rendering surface.
//
// Cancel prevents the corresponding callback from firing when it has not
// started yet. A callback already in flight may still run; callers that need
// hard cancellation combine the scheduler with a generation token, as the drag
// controller does.
type FrameScheduler interface {
	Schedule(fn func()) FrameHandle
	Cancel(h FrameHandle)
}

// DisplayScheduler is the wall-clock FrameScheduler used in serve mode. Each
// Schedule arms a one-shot timer for the next frame interval.
type DisplayScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	next     FrameHandle
	timers   map[FrameHandle]*time.Timer
}

// NewDisplayScheduler creates a scheduler firing callbacks after the given
// frame interval.
func NewDisplayScheduler(interval time.Duration) *DisplayScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &DisplayScheduler{
		interval: interval,
		timers:   make(map[FrameHandle]*time.Timer),
	}
}

// Schedule arms a timer that invokes fn one frame interval from now.
func (s *DisplayScheduler) Schedule(fn func()) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		delete(s.timers, h)
		s.mu.Unlock()
		fn()
	})
	return h
}

// Cancel stops the timer for a pending frame. Unknown handles are ignored.
func (s *DisplayScheduler) Cancel(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// ManualScheduler queues frame callbacks and runs them only when stepped,
// giving tests and headless tools a deterministic, synchronous clock.
type ManualScheduler struct {
	mu      sync.Mutex
	next    FrameHandle
	order   []FrameHandle
	pending map[FrameHandle]func()
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameHandle]func())}
}

// Schedule queues fn for the next Step call.
func (s *ManualScheduler) Schedule(fn func()) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.order = append(s.order, h)
	s.pending[h] = fn
	return h
}

// Cancel removes a queued callback before it runs.
func (s *ManualScheduler) Cancel(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, h)
}

// Step runs the oldest queued callback. It returns false when nothing was
// queued.
func (s *ManualScheduler) Step() bool {
	s.mu.Lock()
	var fn func()
	for len(s.order) > 0 {
		h := s.order[0]
		s.order = s.order[1:]
		if f, ok := s.pending[h]; ok {
			delete(s.pending, h)
			fn = f
			break
		}
	}
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Run steps until the queue drains or max frames have run, returning the
// number of frames executed.
func (s *ManualScheduler) Run(max int) int {
	ran := 0
	for ran < max && s.Step() {
		ran++
	}
	return ran
}

// Pending reports how many callbacks are queued.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
