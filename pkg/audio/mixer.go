// Package audio controls the system mixer and output devices: volume
// stepping, mute toggling, default-sink switching, and the interactive
// device picker. Hardware access goes through small interfaces (Mixer,
// SinkController) whose production implementations shell out to amixer and
// pactl; everything above them is plain logic and is tested with fakes.
package audio

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// Mixer is the volume control surface of one mixer simple control.
type Mixer interface {
	// Volume returns the current raw volume and the valid [min, max] range.
	Volume() (cur, min, max int64, err error)

	// SetVolume writes a raw volume value. Callers clamp before writing.
	SetVolume(v int64) error

	// Muted reports the playback switch state.
	Muted() (bool, error)

	// SetMuted sets the playback switch state.
	SetMuted(muted bool) error
}

// AlsaMixer implements Mixer by shelling out to amixer.
type AlsaMixer struct {
	// Control is the simple control name, e.g. "Master".
	Control string
}

// NewAlsaMixer returns a mixer for the named simple control.
func NewAlsaMixer(control string) *AlsaMixer {
	return &AlsaMixer{Control: control}
}

var (
	limitsRe = regexp.MustCompile(`Limits: Playback (\d+) - (\d+)`)
	volumeRe = regexp.MustCompile(`Playback (\d+) \[\d+%\](?: \[[-\d.]+dB\])? \[(on|off)\]`)
)

func (m *AlsaMixer) state() (cur, min, max int64, muted bool, err error) {
	out, err := exec.Command("amixer", "get", m.Control).Output()
	if err != nil {
		return 0, 0, 0, false, fmt.Errorf("amixer get %s: %w", m.Control, err)
	}
	return parseAmixer(out)
}

// parseAmixer extracts the playback range, current volume, and switch state
// from `amixer get` output. The first playback channel wins; channels are
// always set together so they never diverge.
func parseAmixer(out []byte) (cur, min, max int64, muted bool, err error) {
	limits := limitsRe.FindSubmatch(out)
	if limits == nil {
		return 0, 0, 0, false, fmt.Errorf("no playback limits in amixer output")
	}
	min, _ = strconv.ParseInt(string(limits[1]), 10, 64)
	max, _ = strconv.ParseInt(string(limits[2]), 10, 64)

	vol := volumeRe.FindSubmatch(out)
	if vol == nil {
		return 0, 0, 0, false, fmt.Errorf("no playback channel in amixer output")
	}
	cur, _ = strconv.ParseInt(string(vol[1]), 10, 64)
	muted = string(vol[2]) == "off"
	return cur, min, max, muted, nil
}

// Volume implements Mixer.
func (m *AlsaMixer) Volume() (cur, min, max int64, err error) {
	cur, min, max, _, err = m.state()
	return cur, min, max, err
}

// SetVolume implements Mixer. amixer interprets a bare number as a raw
// volume value and applies it to all channels.
func (m *AlsaMixer) SetVolume(v int64) error {
	if err := exec.Command("amixer", "set", m.Control, strconv.FormatInt(v, 10)).Run(); err != nil {
		return fmt.Errorf("amixer set %s: %w", m.Control, err)
	}
	return nil
}

// Muted implements Mixer.
func (m *AlsaMixer) Muted() (bool, error) {
	_, _, _, muted, err := m.state()
	return muted, err
}

// SetMuted implements Mixer.
func (m *AlsaMixer) SetMuted(muted bool) error {
	arg := "unmute"
	if muted {
		arg = "mute"
	}
	if err := exec.Command("amixer", "set", m.Control, arg).Run(); err != nil {
		return fmt.Errorf("amixer set %s %s: %w", m.Control, arg, err)
	}
	return nil
}
