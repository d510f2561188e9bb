package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/load"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// LoadAvg renders the one-minute load average.
type LoadAvg struct {
	interval time.Duration
	color    string
}

// NewLoadAvg creates the load average source from config.
func NewLoadAvg(cfg config.LoadAvgConfig) *LoadAvg {
	return &LoadAvg{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
	}
}

func (l *LoadAvg) Name() string            { return "loadavg" }
func (l *LoadAvg) Interval() time.Duration { return l.interval }

func (l *LoadAvg) Poll(ctx context.Context) (bar.Segment, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return bar.Segment{}, fmt.Errorf("load average: %w", err)
	}
	return bar.Text(fmt.Sprintf(" %.2f", avg.Load1)).WithColor(l.color), nil
}
