package sources

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// defaultBacklightRoot is the sysfs backlight class directory.
const defaultBacklightRoot = "/sys/class/backlight"

// Backlight renders screen brightness with scroll-to-adjust bindings.
type Backlight struct {
	interval time.Duration
	color    string
	device   string
	root     string
}

// NewBacklight creates the backlight source from config.
func NewBacklight(cfg config.BacklightConfig) *Backlight {
	return &Backlight{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
		device:   cfg.Device,
		root:     defaultBacklightRoot,
	}
}

func (b *Backlight) Name() string            { return "backlight" }
func (b *Backlight) Interval() time.Duration { return b.interval }

func (b *Backlight) Poll(ctx context.Context) (bar.Segment, error) {
	cur, max, err := readBacklight(b.root, b.device)
	if os.IsNotExist(err) {
		// No backlight device (desktop machine): hide the segment.
		return bar.Segment{}, nil
	}
	if err != nil {
		return bar.Segment{}, err
	}

	pct := math.Round(float64(cur) * 100 / float64(max))
	return bar.Text(fmt.Sprintf("☀ %.0f%%", pct)).
		WithColor(b.color).
		WithClick(bar.ButtonScrollUp, "bright_up").
		WithClick(bar.ButtonScrollDown, "bright_down"), nil
}

// Adjust changes the brightness of the source's device by delta, a
// fraction of the maximum (0.05 = five percent), clamped to [0, max].
// It is invoked from the bright_up/bright_down click actions.
func (b *Backlight) Adjust(delta float64) error {
	dir, err := backlightDir(b.root, b.device)
	if err != nil {
		return err
	}
	cur, max, err := readBacklightDir(dir)
	if err != nil {
		return err
	}

	v := cur + int64(math.Round(delta*float64(max)))
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	path := filepath.Join(dir, "brightness")
	if err := os.WriteFile(path, []byte(strconv.FormatInt(v, 10)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// backlightDir resolves the sysfs directory for the configured device, or
// the first device present when none is configured.
func backlightDir(root, device string) (string, error) {
	if device != "" {
		return filepath.Join(root, device), nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", os.ErrNotExist
	}
	return filepath.Join(root, entries[0].Name()), nil
}

func readBacklight(root, device string) (cur, max int64, err error) {
	dir, err := backlightDir(root, device)
	if err != nil {
		return 0, 0, err
	}
	return readBacklightDir(dir)
}

func readBacklightDir(dir string) (cur, max int64, err error) {
	cur, err = readSysfsInt(filepath.Join(dir, "brightness"))
	if err != nil {
		return 0, 0, err
	}
	max, err = readSysfsInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return 0, 0, err
	}
	if max <= 0 {
		return 0, 0, fmt.Errorf("%s reports max_brightness %d", dir, max)
	}
	return cur, max, nil
}

func readSysfsInt(path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
