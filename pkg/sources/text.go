package sources

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Static renders a fixed text segment. It still sits on the scheduler like
// every other source, just at a cadence where the ticker hardly ever fires.
type Static struct {
	content string
}

// NewStatic creates the flair source from config.
func NewStatic(cfg config.TextConfig) *Static {
	return &Static{content: cfg.Content}
}

func (s *Static) Name() string            { return "text" }
func (s *Static) Interval() time.Duration { return time.Hour }

func (s *Static) Poll(ctx context.Context) (bar.Segment, error) {
	return bar.Text(s.content), nil
}
