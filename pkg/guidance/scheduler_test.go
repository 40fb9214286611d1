package guidance

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerFires(t *testing.T) {
	var ticks atomic.Int64
	s := newScheduler(10*time.Millisecond, func() { ticks.Add(1) })

	s.Start()
	defer s.Stop()

	deadline := time.After(time.Second)
	for ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("ticks = %d, want at least 2", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	var ticks atomic.Int64
	s := newScheduler(10*time.Millisecond, func() { ticks.Add(1) })

	s.Start()
	time.Sleep(35 * time.Millisecond)
	s.Stop()

	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Errorf("ticks advanced after stop: %d -> %d", after, got)
	}
	if s.Running() {
		t.Error("scheduler should not report running after stop")
	}
}

func TestSchedulerStartStopIdempotent(t *testing.T) {
	s := newScheduler(time.Hour, func() {})

	s.Start()
	s.Start()
	if !s.Running() {
		t.Error("scheduler should be running")
	}
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Error("scheduler should be stopped")
	}
}
