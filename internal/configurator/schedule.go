package configurator

import (
	"slices"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel stops the callback if it has not run yet and reports whether it did.
	Cancel() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// FrameScheduler runs deferred callbacks from the render loop.
// It is not safe for concurrent use; call it from the goroutine that owns the scene.
type FrameScheduler struct {
	now   time.Time
	seq   uint64
	tasks []*frameTask
}

type frameTask struct {
	due  time.Time
	seq  uint64
	fn   func()
	done bool
	s    *FrameScheduler
}

// NewFrameScheduler creates a scheduler whose clock starts at now.
func NewFrameScheduler(now time.Time) *FrameScheduler {
	return &FrameScheduler{now: now}
}

// AfterFunc schedules fn to run on the first Tick at or after now+d.
func (s *FrameScheduler) AfterFunc(d time.Duration, fn func()) Task {
	s.seq++
	t := &frameTask{due: s.now.Add(d), seq: s.seq, fn: fn, s: s}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances the clock to now and runs every due task ordered by deadline,
// then by scheduling order. Tasks scheduled while ticking wait for the next Tick.
// Returns the number of callbacks run.
func (s *FrameScheduler) Tick(now time.Time) int {
	if now.After(s.now) {
		s.now = now
	}

	var due, rest []*frameTask
	for _, t := range s.tasks {
		if !t.due.After(s.now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.tasks = rest

	slices.SortFunc(due, func(a, b *frameTask) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return int(a.seq) - int(b.seq)
	})

	ran := 0
	for _, t := range due {
		if t.done {
			continue
		}
		t.done = true
		t.fn()
		ran++
	}
	return ran
}

// Pending returns the number of tasks waiting to run.
func (s *FrameScheduler) Pending() int {
	return len(s.tasks)
}

// Now returns the scheduler clock.
func (s *FrameScheduler) Now() time.Time {
	return s.now
}

func (t *frameTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.tasks = slices.DeleteFunc(t.s.tasks, func(o *frameTask) bool { return o == t })
	return true
}
