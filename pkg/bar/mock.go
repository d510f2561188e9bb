package bar

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockSource implements Source for testing. All fields are configurable and
// it tracks how many times Poll has been called.
type MockSource struct {
	name     string
	interval time.Duration

	mu      sync.RWMutex
	segment Segment
	err     error

	pollCount atomic.Int64

	// PollFunc, if set, overrides the default Poll behavior. This lets
	// tests inject dynamic behavior (e.g., block until a signal).
	PollFunc func(ctx context.Context) (Segment, error)
}

// MockOption configures a MockSource.
type MockOption func(*MockSource)

// WithSegment sets the segment returned by Poll.
func WithSegment(seg Segment) MockOption {
	return func(m *MockSource) { m.segment = seg }
}

// WithError sets the error returned by Poll.
func WithError(err error) MockOption {
	return func(m *MockSource) { m.err = err }
}

// WithPollFunc sets a custom function for Poll.
func WithPollFunc(fn func(ctx context.Context) (Segment, error)) MockOption {
	return func(m *MockSource) { m.PollFunc = fn }
}

// NewMockSource creates a mock source with the given name, interval, and
// options.
func NewMockSource(name string, interval time.Duration, opts ...MockOption) *MockSource {
	m := &MockSource{
		name:     name,
		interval: interval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the source name.
func (m *MockSource) Name() string { return m.name }

// Interval returns the configured poll interval.
func (m *MockSource) Interval() time.Duration { return m.interval }

// SetSegment updates the returned segment (thread-safe).
func (m *MockSource) SetSegment(seg Segment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.segment = seg
}

// SetError updates the returned error (thread-safe).
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Poll increments the call counter and returns the configured segment and
// error, or delegates to PollFunc if set.
func (m *MockSource) Poll(ctx context.Context) (Segment, error) {
	m.pollCount.Add(1)

	if m.PollFunc != nil {
		return m.PollFunc(ctx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.segment, m.err
}

// PollCount returns how many times Poll has been called.
func (m *MockSource) PollCount() int64 {
	return m.pollCount.Load()
}
