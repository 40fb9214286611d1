package guidance

import (
	"sync"
	"time"
)

// Metrics is a point-in-time snapshot of controller counters.
type Metrics struct {
	CyclesStarted   uint64
	CyclesCompleted uint64
	CyclesFailed    uint64
	TicksSkipped    uint64
	InputsDropped   uint64
	StaleDiscarded  uint64
	LastCycle       time.Duration
	TotalCycleTime  time.Duration
}

// AvgCycle returns the mean completed-cycle duration.
func (m Metrics) AvgCycle() time.Duration {
	if m.CyclesCompleted == 0 {
		return 0
	}
	return m.TotalCycleTime / time.Duration(m.CyclesCompleted)
}

// metricsCollector accumulates counters behind a mutex. Collection is
// cheap enough to stay on the hot path.
type metricsCollector struct {
	mu sync.Mutex
	m  Metrics
}

func (c *metricsCollector) cycleStarted() {
	c.mu.Lock()
	c.m.CyclesStarted++
	c.mu.Unlock()
}

func (c *metricsCollector) cycleCompleted(d time.Duration) {
	c.mu.Lock()
	c.m.CyclesCompleted++
	c.m.LastCycle = d
	c.m.TotalCycleTime += d
	c.mu.Unlock()
}

func (c *metricsCollector) cycleFailed() {
	c.mu.Lock()
	c.m.CyclesFailed++
	c.mu.Unlock()
}

func (c *metricsCollector) tickSkipped() {
	c.mu.Lock()
	c.m.TicksSkipped++
	c.mu.Unlock()
}

func (c *metricsCollector) inputDropped() {
	c.mu.Lock()
	c.m.InputsDropped++
	c.mu.Unlock()
}

func (c *metricsCollector) staleDiscarded() {
	c.mu.Lock()
	c.m.StaleDiscarded++
	c.mu.Unlock()
}

func (c *metricsCollector) snapshot() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m
}
