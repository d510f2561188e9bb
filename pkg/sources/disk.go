package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Disk renders the space available on one mount point.
type Disk struct {
	interval time.Duration
	mount    string
	color    string
}

// NewDisk creates the disk source from config.
func NewDisk(cfg config.DiskConfig) *Disk {
	return &Disk{
		interval: cfg.Interval.Duration,
		mount:    cfg.Mount,
		color:    cfg.Color,
	}
}

func (d *Disk) Name() string            { return "disk" }
func (d *Disk) Interval() time.Duration { return d.interval }

func (d *Disk) Poll(ctx context.Context) (bar.Segment, error) {
	usage, err := disk.UsageWithContext(ctx, d.mount)
	if err != nil {
		return bar.Segment{}, fmt.Errorf("disk usage for %s: %w", d.mount, err)
	}
	return bar.Text(" " + humanize.IBytes(usage.Free)).WithColor(d.color), nil
}
