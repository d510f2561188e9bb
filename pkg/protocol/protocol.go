// Package protocol implements the i3bar JSON protocol: an endless array of
// status lines written to stdout, and a stream of click events read from
// stdin. See https://i3wm.org/docs/i3bar-protocol.html for the framing.
package protocol

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// block is the wire representation of one segment. The name field is echoed
// back by the bar in click events, which is how clicks are routed to the
// source that produced the block.
type block struct {
	FullText string `json:"full_text"`
	Color    string `json:"color,omitempty"`
	Name     string `json:"name"`
}

// header is the first JSON object on the output stream.
type header struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events"`
}

// Writer emits the i3bar output stream: the protocol header, the opening
// bracket of the infinite array, then one self-delimited JSON array of
// blocks per render, flushed immediately so the bar updates without
// buffering delay.
//
// Writer is not safe for concurrent use; the scheduler already serializes
// WriteLine calls under its render lock.
type Writer struct {
	w     *bufio.Writer
	first bool
}

// NewWriter wraps w (normally os.Stdout) in a protocol writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), first: true}
}

// Start writes the protocol header and opens the infinite array. It must be
// called once before the first WriteLine; a failure here is fatal for the
// whole bar.
func (w *Writer) Start() error {
	hdr, err := json.Marshal(header{Version: 1, ClickEvents: true})
	if err != nil {
		return err
	}
	if _, err := w.w.Write(hdr); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n[\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteLine encodes one composed line as a JSON array of blocks. Segments
// with empty text are elided so inactive sources (stopped player, absent
// battery) do not leave stray separators on the bar.
func (w *Writer) WriteLine(blocks []bar.Block) error {
	line := make([]block, 0, len(blocks))
	for _, b := range blocks {
		if b.Segment.Text == "" {
			continue
		}
		line = append(line, block{
			FullText: b.Segment.Text,
			Color:    b.Segment.Color,
			Name:     b.Source,
		})
	}

	payload, err := json.Marshal(line)
	if err != nil {
		return err
	}

	if !w.first {
		if _, err := w.w.WriteString(","); err != nil {
			return err
		}
	}
	w.first = false

	if _, err := w.w.Write(payload); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// ClickEvent is one decoded click from the input stream.
type ClickEvent struct {
	// Name is the block name the click landed on, i.e. the source name.
	Name string `json:"name"`

	// Button is the mouse button, in i3bar numbering.
	Button bar.Button `json:"button"`
}

// ReadClicks consumes the click-event stream from r and invokes handle for
// every well-formed event. Malformed or unrecognized input is dropped,
// never fatal: the bar must keep running whatever arrives on stdin.
// ReadClicks returns when r reaches EOF or a read error occurs.
func ReadClicks(r io.Reader, handle func(ClickEvent), logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	scanner := bufio.NewScanner(r)
	// A click event is tiny, but stdin is untrusted: an oversized garbage
	// line must be droppable, not end click handling for the process.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// The event stream is itself an infinite JSON array: an opening
		// bracket, then comma-prefixed objects.
		line = strings.TrimPrefix(line, ",")
		line = strings.TrimSpace(line)
		if line == "" || line == "[" || line == "]" {
			continue
		}

		var ev ClickEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			logger.Debug("dropping malformed click event", "input", line, "error", err)
			continue
		}
		if ev.Name == "" || ev.Button == 0 {
			logger.Debug("dropping incomplete click event", "input", line)
			continue
		}
		handle(ev)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("click event stream closed", "error", err)
	}
}
