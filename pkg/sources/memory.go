package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/mem"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Memory renders the available physical memory.
type Memory struct {
	interval time.Duration
	color    string
}

// NewMemory creates the memory source from config.
func NewMemory(cfg config.MemoryConfig) *Memory {
	return &Memory{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
	}
}

func (m *Memory) Name() string            { return "memory" }
func (m *Memory) Interval() time.Duration { return m.interval }

func (m *Memory) Poll(ctx context.Context) (bar.Segment, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return bar.Segment{}, fmt.Errorf("virtual memory: %w", err)
	}
	return bar.Text(" " + humanize.IBytes(vm.Available)).WithColor(m.color), nil
}
