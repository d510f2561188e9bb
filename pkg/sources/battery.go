package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
	"gitlab.com/tinyland/lab/pulsebar/pkg/notify"
)

// defaultPowerSupplyRoot is the sysfs power supply class directory.
const defaultPowerSupplyRoot = "/sys/class/power_supply"

// Battery renders charge level and charging state, and owns the
// low-battery alert: when capacity drops to the warn threshold while
// discharging, one critical desktop notification fires per discharge
// period. The alert state lives here and is only touched from Poll, which
// runs on this source's scheduler goroutine alone.
//
// gopsutil has no battery API, so this source reads the sysfs power supply
// class directly.
type Battery struct {
	interval    time.Duration
	warnPercent int
	root        string
	notifier    *notify.Notifier
	alert       bar.AlertState
}

// NewBattery creates the battery source from config.
func NewBattery(cfg config.BatteryConfig, notifier *notify.Notifier) *Battery {
	return &Battery{
		interval:    cfg.Interval.Duration,
		warnPercent: cfg.WarnPercent,
		root:        defaultPowerSupplyRoot,
		notifier:    notifier,
	}
}

func (b *Battery) Name() string            { return "battery" }
func (b *Battery) Interval() time.Duration { return b.interval }

func (b *Battery) Poll(ctx context.Context) (bar.Segment, error) {
	capacity, status, found, err := readBattery(b.root)
	if err != nil {
		return bar.Segment{}, err
	}
	if !found {
		// Desktop machine: render nothing rather than an error.
		return bar.Segment{}, nil
	}

	discharging := status == "Discharging"
	if b.alert.Check(capacity <= b.warnPercent && discharging) {
		b.notifier.Send(
			"Battery level critical",
			"Connect to power source immediately",
			"battery-caution",
			notify.UrgencyCritical,
		)
	}

	icon, color := batteryGlyph(capacity)
	charge := ""
	if !discharging {
		charge = ""
	}
	return bar.Text(fmt.Sprintf("%s%s %d%%", charge, icon, capacity)).WithColor(color), nil
}

// readBattery scans the power supply class for the first battery and
// returns its capacity percentage and status string. found is false when
// the machine has no battery at all.
func readBattery(root string) (capacity int, status string, found bool, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, "", false, nil
		}
		return 0, "", false, fmt.Errorf("scan %s: %w", root, err)
	}

	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		kind, err := os.ReadFile(filepath.Join(dir, "type"))
		if err != nil || strings.TrimSpace(string(kind)) != "Battery" {
			continue
		}

		capRaw, err := os.ReadFile(filepath.Join(dir, "capacity"))
		if err != nil {
			return 0, "", false, fmt.Errorf("read battery capacity: %w", err)
		}
		capacity, err = strconv.Atoi(strings.TrimSpace(string(capRaw)))
		if err != nil {
			return 0, "", false, fmt.Errorf("parse battery capacity: %w", err)
		}

		statusRaw, err := os.ReadFile(filepath.Join(dir, "status"))
		if err != nil {
			return 0, "", false, fmt.Errorf("read battery status: %w", err)
		}
		return capacity, strings.TrimSpace(string(statusRaw)), true, nil
	}
	return 0, "", false, nil
}

// batteryGlyph maps a capacity percentage to an icon and color ramp.
func batteryGlyph(capacity int) (icon, color string) {
	switch {
	case capacity < 20:
		return "", "#FF4000"
	case capacity < 40:
		return "", "#FFAE00"
	case capacity < 60:
		return "", "#FFF600"
	case capacity < 80:
		return "", "#A8FF00"
	default:
		return "", "#50FF00"
	}
}
