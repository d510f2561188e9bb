package audio

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"gitlab.com/tinyland/lab/pulsebar/pkg/notify"
)

// Sink describes one audio output device.
type Sink struct {
	// Name is the machine identifier used by set-default-sink.
	Name string

	// Description is the human-readable device label shown in the picker.
	Description string
}

// SinkController manages PulseAudio/PipeWire output devices.
type SinkController interface {
	// Sinks lists the available output devices.
	Sinks() ([]Sink, error)

	// SinkInputs lists the IDs of currently playing streams.
	SinkInputs() ([]string, error)

	// SetDefault makes the named sink the default output.
	SetDefault(name string) error

	// MoveInput reassigns one playing stream to the named sink.
	MoveInput(id, sink string) error
}

// PactlController implements SinkController by shelling out to pactl.
type PactlController struct{}

// Sinks implements SinkController via `pactl list sinks`.
func (PactlController) Sinks() ([]Sink, error) {
	out, err := exec.Command("pactl", "list", "sinks").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sinks: %w", err)
	}
	return parseSinks(out), nil
}

// parseSinks extracts Name/Description pairs from `pactl list sinks`
// output. A sink block is complete once both fields have been seen.
func parseSinks(out []byte) []Sink {
	var sinks []Sink
	var cur Sink

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Name: "):
			cur = Sink{Name: strings.TrimPrefix(line, "Name: ")}
		case strings.HasPrefix(line, "Description: "):
			cur.Description = strings.TrimPrefix(line, "Description: ")
			if cur.Name != "" {
				sinks = append(sinks, cur)
				cur = Sink{}
			}
		}
	}
	return sinks
}

// SinkInputs implements SinkController via `pactl list short sink-inputs`.
func (PactlController) SinkInputs() ([]string, error) {
	out, err := exec.Command("pactl", "list", "short", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list short sink-inputs: %w", err)
	}
	return parseShortIDs(out), nil
}

// parseShortIDs returns the first tab-separated field of every line.
func parseShortIDs(out []byte) []string {
	var ids []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			ids = append(ids, fields[0])
		}
	}
	return ids
}

// SetDefault implements SinkController.
func (PactlController) SetDefault(name string) error {
	if err := exec.Command("pactl", "set-default-sink", name).Run(); err != nil {
		return fmt.Errorf("pactl set-default-sink %s: %w", name, err)
	}
	return nil
}

// MoveInput implements SinkController.
func (PactlController) MoveInput(id, sink string) error {
	if err := exec.Command("pactl", "move-sink-input", id, sink).Run(); err != nil {
		return fmt.Errorf("pactl move-sink-input %s %s: %w", id, sink, err)
	}
	return nil
}

// SwitchDevice makes the named sink the default output and reassigns every
// active stream to it. All failures are non-fatal and best-effort: each one
// emits its own desktop notification and the loop keeps going, so one
// stubborn stream never blocks the rest from moving.
func SwitchDevice(ctl SinkController, notifier *notify.Notifier, name string) {
	if err := ctl.SetDefault(name); err != nil {
		notifier.Send("Couldn't set new device", err.Error(), "", notify.UrgencyNormal)
	}

	inputs, err := ctl.SinkInputs()
	if err != nil {
		notifier.Send("Couldn't list active streams", err.Error(), "", notify.UrgencyNormal)
		return
	}
	for _, id := range inputs {
		if err := ctl.MoveInput(id, name); err != nil {
			notifier.Send("Error changing sink for application", err.Error(), "", notify.UrgencyNormal)
		}
	}
}
