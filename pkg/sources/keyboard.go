package sources

import (
	"context"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Keyboard renders the active ibus input engine.
type Keyboard struct {
	interval time.Duration
	run      runner
}

// NewKeyboard creates the keyboard layout source from config.
func NewKeyboard(cfg config.KeyboardConfig) *Keyboard {
	return &Keyboard{
		interval: cfg.Interval.Duration,
		run:      runCommand,
	}
}

func (k *Keyboard) Name() string            { return "keyboard" }
func (k *Keyboard) Interval() time.Duration { return k.interval }

func (k *Keyboard) Poll(ctx context.Context) (bar.Segment, error) {
	out, err := k.run(ctx, "ibus", "engine")
	if err != nil {
		// No ibus daemon running: hide the segment rather than parading
		// an error for an optional tool.
		return bar.Segment{}, nil
	}
	return bar.Text("⌨ " + parseEngine(out)), nil
}

// parseEngine extracts the layout from an engine name like "xkb:us::eng".
func parseEngine(out string) string {
	parts := strings.Split(strings.TrimSpace(out), ":")
	if len(parts) < 2 || parts[1] == "" {
		return "N/A"
	}
	return parts[1]
}
