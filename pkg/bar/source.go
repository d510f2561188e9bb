package bar

import (
	"context"
	"time"
)

// Source is the interface all segment producers implement. Implementations
// live in pkg/sources and are registered with the Scheduler at startup.
type Source interface {
	// Name returns a unique identifier for this source (e.g., "battery").
	// It doubles as the block name on the wire, which is how inbound click
	// events are routed back to the segment that was clicked.
	Name() string

	// Poll performs one poll cycle and returns a fresh Segment. A failed
	// poll returns a non-nil error; the scheduler's fault barrier turns it
	// into an inline error segment instead of propagating it.
	Poll(ctx context.Context) (Segment, error)

	// Interval returns how often this source should be polled. The
	// scheduler uses this to configure a per-source ticker; the value is
	// fixed for the source's lifetime.
	Interval() time.Duration
}

// Func adapts a plain poll function into a Source, for segments whose poll
// logic does not warrant a dedicated type.
type Func struct {
	SourceName   string
	PollInterval time.Duration
	PollFunc     func(ctx context.Context) (Segment, error)
}

func (f Func) Name() string            { return f.SourceName }
func (f Func) Interval() time.Duration { return f.PollInterval }

func (f Func) Poll(ctx context.Context) (Segment, error) {
	return f.PollFunc(ctx)
}
