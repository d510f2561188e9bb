package audio

import "math"

// Add adjusts the mixer volume by diff steps, where one step is one percent
// of the control's full range. The result is clamped to [min, max], so
// stepping past either boundary is a no-op beyond the clamp: repeated
// vol_up at max leaves the volume unchanged.
func Add(m Mixer, diff int) error {
	cur, min, max, err := m.Volume()
	if err != nil {
		return err
	}
	step := float64(max-min) * 0.01
	v := cur + int64(math.Round(step*float64(diff)))
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return m.SetVolume(v)
}

// ToggleMute flips the playback switch state.
func ToggleMute(m Mixer) error {
	muted, err := m.Muted()
	if err != nil {
		return err
	}
	return m.SetMuted(!muted)
}

// Percent converts a raw volume within [min, max] to a 0-100 percentage.
func Percent(cur, min, max int64) int {
	if max <= min {
		return 0
	}
	return int(math.Round(float64(cur-min) * 100 / float64(max-min)))
}

// Icon returns the speaker glyph for a volume percentage.
func Icon(pct int) string {
	switch {
	case pct < 30:
		return ""
	case pct < 60:
		return ""
	default:
		return ""
	}
}
