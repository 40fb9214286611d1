package guidance

import (
	"sync"
	"time"
)

// scheduler fires a callback on a fixed cadence while navigating. It is
// started on entry to the navigating state and stopped on exit. A tick
// that lands while a cycle is in flight is the callback's problem; the
// scheduler never queues.
type scheduler struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func newScheduler(interval time.Duration, fn func()) *scheduler {
	return &scheduler{interval: interval, fn: fn}
}

// Start begins ticking. Starting a running scheduler is a no-op.
func (s *scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})

	go s.loop(s.stop)
}

func (s *scheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			s.fn()
		}
	}
}

// Stop halts ticking. Stopping a stopped scheduler is a no-op.
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
}

// Running reports whether the scheduler is ticking.
func (s *scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
