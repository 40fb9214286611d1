package planner

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Planner for testing.
type Mock struct {
	mu sync.Mutex

	// Configurable behavior
	PlanFunc func(ctx context.Context, req Request) (*Instruction, error)

	// Result is returned when PlanFunc is nil.
	Result *Instruction

	// Err is returned when PlanFunc is nil.
	Err error

	// Captured calls for assertions
	Calls    int
	Requests []Request
}

// NewMock creates a new Mock planner.
func NewMock() *Mock {
	return &Mock{}
}

// Plan implements Planner.
func (m *Mock) Plan(ctx context.Context, req Request) (*Instruction, error) {
	m.mu.Lock()
	m.Calls++
	m.Requests = append(m.Requests, req)
	fn := m.PlanFunc
	result, err := m.Result, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if result == nil && err == nil {
		return &Instruction{Text: "Continue straight.", Urgency: UrgencyNormal, Danger: DangerSafe}, nil
	}
	return result, err
}

// CallCount returns how many times Plan was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// LastRequest returns the most recent request, or nil.
func (m *Mock) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// Close implements Planner.
func (m *Mock) Close() error {
	return nil
}

// Ensure Mock implements Planner
var _ Planner = (*Mock)(nil)
