package sources

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/audio"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Volume renders the mixer volume with its control bindings: scroll to
// step the volume, middle click to mute, left click for the device picker.
type Volume struct {
	interval time.Duration
	color    string
	mixer    audio.Mixer
}

// NewVolume creates the volume source around a mixer handle.
func NewVolume(cfg config.VolumeConfig, mixer audio.Mixer) *Volume {
	return &Volume{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
		mixer:    mixer,
	}
}

func (v *Volume) Name() string            { return "volume" }
func (v *Volume) Interval() time.Duration { return v.interval }

func (v *Volume) Poll(ctx context.Context) (bar.Segment, error) {
	muted, err := v.mixer.Muted()
	if err != nil {
		return bar.Segment{}, err
	}

	text := "🔇 MUTE"
	if !muted {
		cur, min, max, err := v.mixer.Volume()
		if err != nil {
			return bar.Segment{}, err
		}
		pct := audio.Percent(cur, min, max)
		text = fmt.Sprintf("%s %d%%", audio.Icon(pct), pct)
	}

	return bar.Text(text).
		WithColor(v.color).
		WithClick(bar.ButtonScrollUp, "vol_up").
		WithClick(bar.ButtonScrollDown, "vol_down").
		WithClick(bar.ButtonMiddle, "vol_mute").
		WithClick(bar.ButtonLeft, "device_menu"), nil
}
