package audio

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"gitlab.com/tinyland/lab/pulsebar/pkg/notify"
)

// PickDevice spawns the configured interactive chooser, feeds it the
// available sinks, and switches the default output to whatever the user
// selects. The chooser receives two newline-delimited lines per device
// (name, then description; zenity's two-column list consumes alternating
// lines) and prints the selected device name on stdout. An empty selection
// is a valid outcome meaning "no change".
func PickDevice(cmdline []string, ctl SinkController, notifier *notify.Notifier) error {
	if len(cmdline) == 0 {
		return fmt.Errorf("no picker command configured")
	}

	sinks, err := ctl.Sinks()
	if err != nil {
		return err
	}

	cmd := exec.Command(cmdline[0], cmdline[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("picker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("picker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn picker %s: %w", cmdline[0], err)
	}

	writeErr := writeSinkLines(stdin, sinks)
	stdin.Close()

	out, readErr := io.ReadAll(stdout)
	// A cancelled dialog exits non-zero with empty output; that is the
	// "no change" outcome, not an error, so the exit status is ignored.
	_ = cmd.Wait()

	if writeErr != nil {
		return writeErr
	}
	if readErr != nil {
		return fmt.Errorf("read picker output: %w", readErr)
	}

	selected := Selection(out)
	if selected == "" {
		return nil
	}

	SwitchDevice(ctl, notifier, selected)
	return nil
}

// writeSinkLines writes the picker's input: name and description lines per
// sink.
func writeSinkLines(w io.Writer, sinks []Sink) error {
	for _, s := range sinks {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", s.Name, s.Description); err != nil {
			return fmt.Errorf("feed picker: %w", err)
		}
	}
	return nil
}

// Selection extracts the chosen device name from the picker's stdout.
// Whitespace-only output means nothing was chosen.
func Selection(out []byte) string {
	return strings.TrimSpace(string(out))
}
