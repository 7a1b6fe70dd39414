package configurator

import (
	"testing"
	"time"
)

func TestFrameSchedulerOrder(t *testing.T) {
	s := NewFrameScheduler(t0)
	var order []string
	s.AfterFunc(300*time.Millisecond, func() { order = append(order, "late") })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, "first") })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, "second") })

	if n := s.Tick(t0.Add(50 * time.Millisecond)); n != 0 {
		t.Errorf("expected nothing due, ran %d", n)
	}
	if n := s.Tick(t0.Add(time.Second)); n != 3 {
		t.Errorf("expected 3 callbacks, ran %d", n)
	}
	want := []string{"first", "second", "late"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", s.Pending())
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := NewFrameScheduler(t0)
	ran := false
	task := s.AfterFunc(time.Millisecond, func() { ran = true })

	if !task.Cancel() {
		t.Error("expected first Cancel to succeed")
	}
	if task.Cancel() {
		t.Error("expected second Cancel to report false")
	}
	s.Tick(t0.Add(time.Second))
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestFrameSchedulerCancelFromCallback(t *testing.T) {
	s := NewFrameScheduler(t0)
	var second Task
	ran := 0
	s.AfterFunc(time.Millisecond, func() {
		ran++
		second.Cancel()
	})
	second = s.AfterFunc(time.Millisecond, func() { ran++ })

	if n := s.Tick(t0.Add(time.Second)); n != 1 || ran != 1 {
		t.Errorf("expected only the first callback, ran %d (%d)", ran, n)
	}
}

func TestFrameSchedulerDefersNewTasks(t *testing.T) {
	s := NewFrameScheduler(t0)
	nested := false
	s.AfterFunc(0, func() {
		s.AfterFunc(0, func() { nested = true })
	})

	s.Tick(t0)
	if nested {
		t.Error("task scheduled during Tick ran in the same Tick")
	}
	s.Tick(t0)
	if !nested {
		t.Error("expected nested task on the next Tick")
	}
}
