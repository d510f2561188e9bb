package protocol

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
)

// --- Writer Tests ---

func TestWriterHeader(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	got := buf.String()
	want := "{\"version\":1,\"click_events\":true}\n[\n"
	if got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestWriterLineFraming(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	_ = w.Start()

	line := []bar.Block{
		{Source: "clock", Segment: bar.Text(" 26/08 14:00")},
	}
	if err := w.WriteLine(line); err != nil {
		t.Fatalf("first WriteLine failed: %v", err)
	}
	if err := w.WriteLine(line); err != nil {
		t.Fatalf("second WriteLine failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// header, "[", first record, comma-prefixed second record
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if strings.HasPrefix(lines[2], ",") {
		t.Errorf("first record should not be comma-prefixed: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], ",") {
		t.Errorf("second record should be comma-prefixed: %q", lines[3])
	}
}

func TestWriterBlockFields(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	_ = w.Start()

	seg := bar.Text("🔇 MUTE").WithColor("#9090ff").WithClick(bar.ButtonMiddle, "vol_mute")
	if err := w.WriteLine([]bar.Block{{Source: "volume", Segment: seg}}); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}

	out := buf.String()
	record := out[strings.Index(out, "[\n")+2:]
	want := `[{"full_text":"🔇 MUTE","color":"#9090ff","name":"volume"}]` + "\n"
	if record != want {
		t.Errorf("record = %q, want %q", record, want)
	}
}

func TestWriterOmitsEmptySegments(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	_ = w.Start()

	blocks := []bar.Block{
		{Source: "media", Segment: bar.Segment{}}, // stopped player
		{Source: "clock", Segment: bar.Text("14:00")},
	}
	if err := w.WriteLine(blocks); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "media") {
		t.Errorf("empty segment was encoded: %q", out)
	}
	if !strings.Contains(out, "clock") {
		t.Errorf("non-empty segment missing: %q", out)
	}
}

func TestWriterOmitsDefaultColor(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	_ = w.Start()

	_ = w.WriteLine([]bar.Block{{Source: "kbd", Segment: bar.Text("⌨ us")}})
	if strings.Contains(buf.String(), "color") {
		t.Errorf("default color should be omitted: %q", buf.String())
	}
}

// --- Reader Tests ---

func collectClicks(t *testing.T, input string) []ClickEvent {
	t.Helper()
	var events []ClickEvent
	ReadClicks(strings.NewReader(input), func(ev ClickEvent) {
		events = append(events, ev)
	}, nil)
	return events
}

func TestReadClicks(t *testing.T) {
	input := "[\n" +
		`{"name":"volume","button":4,"x":1400,"y":10}` + "\n" +
		`,{"name":"media","button":1}` + "\n"

	events := collectClicks(t, input)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Name != "volume" || events[0].Button != bar.ButtonScrollUp {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Name != "media" || events[1].Button != bar.ButtonLeft {
		t.Errorf("event 1 = %+v", events[1])
	}
}

func TestReadClicksDropsMalformedInput(t *testing.T) {
	input := "[\n" +
		"this is not json\n" +
		`,{"name":"volume","button":` + "\n" + // truncated JSON
		`,{"button":2}` + "\n" + // no name
		`,{"name":"volume"}` + "\n" + // no button
		`,{"name":"volume","button":2}` + "\n"

	events := collectClicks(t, input)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if events[0].Name != "volume" || events[0].Button != bar.ButtonMiddle {
		t.Errorf("event = %+v", events[0])
	}
}

func TestReadClicksSurvivesOversizedGarbageLine(t *testing.T) {
	// A garbage line past bufio.Scanner's default 64 KiB token limit must
	// be dropped like any other malformed input, not terminate the reader
	// before the events that follow it.
	input := "[\n" +
		strings.Repeat("x", 256*1024) + "\n" +
		`,{"name":"volume","button":2}` + "\n"

	events := collectClicks(t, input)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	if events[0].Name != "volume" || events[0].Button != bar.ButtonMiddle {
		t.Errorf("event = %+v", events[0])
	}
}

func TestReadClicksEmptyStream(t *testing.T) {
	if events := collectClicks(t, ""); len(events) != 0 {
		t.Errorf("got %d events from empty stream", len(events))
	}
}
