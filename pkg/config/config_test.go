package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultEnablesAllSources(t *testing.T) {
	cfg := Default()

	if !cfg.Sources.Media.Enabled || !cfg.Sources.Battery.Enabled || !cfg.Sources.Clock.Enabled {
		t.Error("default config should enable all sources")
	}
	if cfg.Sources.Battery.WarnPercent != 10 {
		t.Errorf("WarnPercent = %d, want 10", cfg.Sources.Battery.WarnPercent)
	}
	if cfg.Sources.Disk.Mount != "/" {
		t.Errorf("Mount = %q, want /", cfg.Sources.Disk.Mount)
	}
	if cfg.Audio.Control != "Master" {
		t.Errorf("Control = %q, want Master", cfg.Audio.Control)
	}
	if len(cfg.Audio.Picker) == 0 {
		t.Error("default picker command is empty")
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	doc := `
[audio]
control = "PCM"

[sources.battery]
warn_percent = 15
interval = "5s"

[sources.keyboard]
enabled = false

[sources.clock]
format = "15:04:05"
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	if cfg.Audio.Control != "PCM" {
		t.Errorf("Control = %q, want PCM", cfg.Audio.Control)
	}
	if cfg.Sources.Battery.WarnPercent != 15 {
		t.Errorf("WarnPercent = %d, want 15", cfg.Sources.Battery.WarnPercent)
	}
	if cfg.Sources.Battery.Interval.Duration != 5*time.Second {
		t.Errorf("battery interval = %v, want 5s", cfg.Sources.Battery.Interval.Duration)
	}
	if cfg.Sources.Keyboard.Enabled {
		t.Error("keyboard should be disabled")
	}
	if cfg.Sources.Clock.Format != "15:04:05" {
		t.Errorf("clock format = %q", cfg.Sources.Clock.Format)
	}

	// Untouched settings keep their defaults.
	if cfg.Sources.Disk.Mount != "/" {
		t.Errorf("Mount = %q, want default /", cfg.Sources.Disk.Mount)
	}
	if cfg.Sources.Media.Color != "#9090ff" {
		t.Errorf("media color = %q, want default", cfg.Sources.Media.Color)
	}
}

func TestLoadFromReaderRejectsBadDuration(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("[sources.disk]\ninterval = \"soon\"\n")); err == nil {
		t.Error("invalid duration should fail to parse")
	}
	if _, err := LoadFromReader(strings.NewReader("[sources.disk]\ninterval = \"-2s\"\n")); err == nil {
		t.Error("negative duration should fail to parse")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", d.Duration)
	}
	out, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(out) != "1m30s" {
		t.Errorf("MarshalText = %q, want 1m30s", out)
	}
}

func TestDurationEmptyIsZero(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if d.Duration != 0 {
		t.Errorf("Duration = %v, want 0", d.Duration)
	}
}
