package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/sensors"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Temperature renders the CPU temperature with a thermometer glyph that
// fills up as things heat up.
type Temperature struct {
	interval time.Duration
	color    string
	sensor   string
}

// NewTemperature creates the temperature source from config.
func NewTemperature(cfg config.TemperatureConfig) *Temperature {
	return &Temperature{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
		sensor:   cfg.Sensor,
	}
}

func (t *Temperature) Name() string            { return "temperature" }
func (t *Temperature) Interval() time.Duration { return t.interval }

func (t *Temperature) Poll(ctx context.Context) (bar.Segment, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return bar.Segment{}, fmt.Errorf("read temperature sensors: %w", err)
	}
	temp, err := pickTemperature(stats, t.sensor)
	if err != nil {
		return bar.Segment{}, err
	}
	return bar.Text(fmt.Sprintf("%s %.1f °C", thermometerGlyph(temp), temp)).WithColor(t.color), nil
}

// pickTemperature selects one reading: the first sensor whose key contains
// the configured substring, or the hottest sensor when no key is set.
func pickTemperature(stats []sensors.TemperatureStat, key string) (float64, error) {
	if len(stats) == 0 {
		return 0, fmt.Errorf("no temperature sensors found")
	}
	if key != "" {
		for _, s := range stats {
			if strings.Contains(s.SensorKey, key) {
				return s.Temperature, nil
			}
		}
		return 0, fmt.Errorf("no sensor matching %q", key)
	}
	hottest := stats[0].Temperature
	for _, s := range stats[1:] {
		if s.Temperature > hottest {
			hottest = s.Temperature
		}
	}
	return hottest, nil
}

// thermometerGlyph maps a temperature to a fill level.
func thermometerGlyph(temp float64) string {
	switch {
	case temp < 60:
		return ""
	case temp < 70:
		return ""
	case temp < 80:
		return ""
	case temp < 90:
		return ""
	default:
		return ""
	}
}
