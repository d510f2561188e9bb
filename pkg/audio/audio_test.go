package audio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	"gitlab.com/tinyland/lab/pulsebar/pkg/notify"
)

// fakeMixer implements Mixer in memory.
type fakeMixer struct {
	cur, min, max int64
	muted         bool
	err           error
}

func (f *fakeMixer) Volume() (int64, int64, int64, error) {
	return f.cur, f.min, f.max, f.err
}

func (f *fakeMixer) SetVolume(v int64) error {
	if f.err != nil {
		return f.err
	}
	f.cur = v
	return nil
}

func (f *fakeMixer) Muted() (bool, error) { return f.muted, f.err }

func (f *fakeMixer) SetMuted(muted bool) error {
	if f.err != nil {
		return f.err
	}
	f.muted = muted
	return nil
}

// --- Volume Tests ---

func TestAddRoundTripRestoresVolume(t *testing.T) {
	m := &fakeMixer{cur: 32768, min: 0, max: 65536}

	if err := Add(m, 5); err != nil {
		t.Fatalf("Add(+5) failed: %v", err)
	}
	if m.cur == 32768 {
		t.Fatal("Add(+5) did not change the volume")
	}
	if err := Add(m, -5); err != nil {
		t.Fatalf("Add(-5) failed: %v", err)
	}
	if m.cur != 32768 {
		t.Errorf("round trip ended at %d, want 32768", m.cur)
	}
}

func TestAddClampsAtMax(t *testing.T) {
	m := &fakeMixer{cur: 65536, min: 0, max: 65536}
	if err := Add(m, 100); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.cur != 65536 {
		t.Errorf("volume = %d, want clamp at 65536", m.cur)
	}
}

func TestAddClampsAtMin(t *testing.T) {
	m := &fakeMixer{cur: 100, min: 0, max: 65536}
	if err := Add(m, -100); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.cur != 0 {
		t.Errorf("volume = %d, want clamp at 0", m.cur)
	}
}

func TestAddStepIsOnePercentOfRange(t *testing.T) {
	m := &fakeMixer{cur: 0, min: 0, max: 200}
	if err := Add(m, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.cur != 2 {
		t.Errorf("one step on range [0,200] = %d, want 2", m.cur)
	}
}

func TestAddPropagatesMixerError(t *testing.T) {
	m := &fakeMixer{err: errors.New("no such control")}
	if err := Add(m, 5); err == nil {
		t.Error("Add should surface mixer errors")
	}
}

func TestToggleMuteTwiceRestoresState(t *testing.T) {
	for _, initial := range []bool{true, false} {
		m := &fakeMixer{muted: initial}
		if err := ToggleMute(m); err != nil {
			t.Fatalf("first toggle failed: %v", err)
		}
		if m.muted == initial {
			t.Fatal("first toggle did not flip the switch")
		}
		if err := ToggleMute(m); err != nil {
			t.Fatalf("second toggle failed: %v", err)
		}
		if m.muted != initial {
			t.Errorf("double toggle ended at %v, want %v", m.muted, initial)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		cur, min, max int64
		want          int
	}{
		{0, 0, 65536, 0},
		{32768, 0, 65536, 50},
		{65536, 0, 65536, 100},
		{150, 100, 200, 50},
		{5, 5, 5, 0}, // degenerate range
	}
	for _, tt := range tests {
		if got := Percent(tt.cur, tt.min, tt.max); got != tt.want {
			t.Errorf("Percent(%d, %d, %d) = %d, want %d", tt.cur, tt.min, tt.max, got, tt.want)
		}
	}
}

// --- amixer Parsing Tests ---

const amixerOutput = `Simple mixer control 'Master',0
  Capabilities: pvolume pswitch pswitch-joined
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 65536
  Mono:
  Front Left: Playback 32768 [50%] [on]
  Front Right: Playback 32768 [50%] [on]
`

const amixerMutedOutput = `Simple mixer control 'Master',0
  Capabilities: pvolume pswitch
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 87
  Front Left: Playback 44 [51%] [-32.25dB] [off]
  Front Right: Playback 44 [51%] [-32.25dB] [off]
`

func TestParseAmixer(t *testing.T) {
	cur, min, max, muted, err := parseAmixer([]byte(amixerOutput))
	if err != nil {
		t.Fatalf("parseAmixer failed: %v", err)
	}
	if cur != 32768 || min != 0 || max != 65536 {
		t.Errorf("volume = %d [%d, %d], want 32768 [0, 65536]", cur, min, max)
	}
	if muted {
		t.Error("muted = true, want false")
	}
}

func TestParseAmixerMutedWithDecibels(t *testing.T) {
	cur, min, max, muted, err := parseAmixer([]byte(amixerMutedOutput))
	if err != nil {
		t.Fatalf("parseAmixer failed: %v", err)
	}
	if cur != 44 || min != 0 || max != 87 {
		t.Errorf("volume = %d [%d, %d], want 44 [0, 87]", cur, min, max)
	}
	if !muted {
		t.Error("muted = false, want true")
	}
}

func TestParseAmixerGarbage(t *testing.T) {
	if _, _, _, _, err := parseAmixer([]byte("amixer: Mixer attach default error")); err == nil {
		t.Error("garbage input should fail to parse")
	}
}

// --- Sink Tests ---

// fakeController implements SinkController in memory.
type fakeController struct {
	sinks      []Sink
	inputs     []string
	defaulted  string
	moved      map[string]string
	setErr     error
	moveFailID string
}

func (f *fakeController) Sinks() ([]Sink, error) { return f.sinks, nil }

func (f *fakeController) SinkInputs() ([]string, error) { return f.inputs, nil }

func (f *fakeController) SetDefault(name string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.defaulted = name
	return nil
}

func (f *fakeController) MoveInput(id, sink string) error {
	if id == f.moveFailID {
		return errors.New("stream is corked")
	}
	if f.moved == nil {
		f.moved = make(map[string]string)
	}
	f.moved[id] = sink
	return nil
}

// recordingNotifier returns a notifier whose bus object counts calls.
type countingObject struct {
	calls int
}

func (c *countingObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	c.calls++
	return &dbus.Call{Body: []interface{}{uint32(1)}}
}

func TestSwitchDeviceMovesAllStreams(t *testing.T) {
	ctl := &fakeController{inputs: []string{"31", "47", "52"}}
	obj := &countingObject{}
	SwitchDevice(ctl, notify.NewWithObject(obj, "test", nil), "hdmi")

	if ctl.defaulted != "hdmi" {
		t.Errorf("default sink = %q, want hdmi", ctl.defaulted)
	}
	if len(ctl.moved) != 3 {
		t.Errorf("moved %d streams, want 3", len(ctl.moved))
	}
	if obj.calls != 0 {
		t.Errorf("sent %d notifications on the happy path, want 0", obj.calls)
	}
}

func TestSwitchDeviceOneFailureDoesNotBlockOthers(t *testing.T) {
	ctl := &fakeController{inputs: []string{"1", "2", "3"}, moveFailID: "2"}
	obj := &countingObject{}
	SwitchDevice(ctl, notify.NewWithObject(obj, "test", nil), "usb")

	if len(ctl.moved) != 2 {
		t.Errorf("moved %d streams, want 2 (one failed)", len(ctl.moved))
	}
	if obj.calls != 1 {
		t.Errorf("sent %d notifications, want 1 for the failed stream", obj.calls)
	}
}

func TestSwitchDeviceSetDefaultFailureStillMoves(t *testing.T) {
	ctl := &fakeController{inputs: []string{"9"}, setErr: errors.New("no such sink")}
	obj := &countingObject{}
	SwitchDevice(ctl, notify.NewWithObject(obj, "test", nil), "usb")

	if len(ctl.moved) != 1 {
		t.Errorf("moved %d streams, want 1", len(ctl.moved))
	}
	if obj.calls != 1 {
		t.Errorf("sent %d notifications, want 1 for the failed set-default", obj.calls)
	}
}

const pactlSinksOutput = `Sink #54
	State: RUNNING
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Analog Stereo
	Driver: PipeWire
Sink #77
	State: SUSPENDED
	Name: alsa_output.usb-Focusrite.analog-stereo
	Description: Scarlett 2i2 USB
	Driver: PipeWire
`

func TestParseSinks(t *testing.T) {
	sinks := parseSinks([]byte(pactlSinksOutput))
	if len(sinks) != 2 {
		t.Fatalf("got %d sinks, want 2", len(sinks))
	}
	if sinks[0].Name != "alsa_output.pci-0000_00_1f.3.analog-stereo" {
		t.Errorf("sink 0 name = %q", sinks[0].Name)
	}
	if sinks[1].Description != "Scarlett 2i2 USB" {
		t.Errorf("sink 1 description = %q", sinks[1].Description)
	}
}

func TestParseShortIDs(t *testing.T) {
	out := "31\t54\tprotocol-native.c\tPipeWire\tfloat32le 2ch 48000Hz\n52\t77\tmodule-null.c\n"
	ids := parseShortIDs([]byte(out))
	if len(ids) != 2 || ids[0] != "31" || ids[1] != "52" {
		t.Errorf("ids = %v, want [31 52]", ids)
	}
}

// --- Picker Tests ---

func TestWriteSinkLines(t *testing.T) {
	var buf bytes.Buffer
	sinks := []Sink{
		{Name: "analog", Description: "Built-in Audio"},
		{Name: "usb", Description: "Scarlett 2i2"},
	}
	if err := writeSinkLines(&buf, sinks); err != nil {
		t.Fatalf("writeSinkLines failed: %v", err)
	}
	want := "analog\nBuilt-in Audio\nusb\nScarlett 2i2\n"
	if buf.String() != want {
		t.Errorf("picker input = %q, want %q", buf.String(), want)
	}
}

func TestSelection(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"usb\n", "usb"},
		{"  usb  \n", "usb"},
		{"\n", ""},
		{"", ""},
		{"   \n\t", ""},
	}
	for _, tt := range tests {
		if got := Selection([]byte(tt.out)); got != tt.want {
			t.Errorf("Selection(%q) = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, ""},
		{29, ""},
		{30, ""},
		{59, ""},
		{60, ""},
		{100, ""},
	}
	for _, tt := range tests {
		if got := Icon(tt.pct); got != tt.want {
			t.Errorf("Icon(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
