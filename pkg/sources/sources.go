// Package sources implements the bar.Source producers behind every pulsebar
// segment: media player, volume, keyboard layout, disk, network, load,
// memory, temperature, battery, backlight, clock, and static text.
//
// System metrics come from gopsutil; external tools (nmcli, ibus) are
// invoked as subprocesses whose stdout is consumed for the life of one
// poll. Probe failures surface as errors and are contained by the
// scheduler's fault barrier. No probe carries a timeout: a hung subprocess
// stalls only its own segment.
package sources

import (
	"context"
	"fmt"
	"os/exec"
)

// runner is the subprocess invocation hook shared by the nmcli and ibus
// sources; tests substitute canned output.
type runner func(ctx context.Context, name string, args ...string) (string, error)

// runCommand invokes an external probe and returns its stdout. A non-zero
// exit or I/O error is a probe failure.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}
