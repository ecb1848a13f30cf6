package mocks

import (
	"time"

	"github.com/partygames/clockin/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	// Current is the time returned by Now
	Current time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock fixed at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{Current: t}
}

// Now returns the mock's current time
func (c *MockClock) Now() time.Time {
	return c.Current
}

// Advance moves the mock's current time forward
func (c *MockClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
