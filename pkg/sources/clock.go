package sources

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Clock renders the current date and time.
type Clock struct {
	interval time.Duration
	format   string
	now      func() time.Time
}

// NewClock creates the clock source from config.
func NewClock(cfg config.ClockConfig) *Clock {
	return &Clock{
		interval: cfg.Interval.Duration,
		format:   cfg.Format,
		now:      time.Now,
	}
}

func (c *Clock) Name() string            { return "clock" }
func (c *Clock) Interval() time.Duration { return c.interval }

func (c *Clock) Poll(ctx context.Context) (bar.Segment, error) {
	return bar.Text(c.now().Format(c.format)), nil
}
