// Package bar implements the status-line composition engine for pulsebar.
// It defines the Segment value produced by every data source, the Source
// interface those producers implement, the fault barrier that keeps a
// failing probe from taking down the whole line, the click-action registry,
// and the Scheduler that drives all sources on independent tickers and
// serializes renders to the output boundary.
package bar

// Button identifies a mouse button in a click event, using the i3bar
// numbering (left 1, middle 2, right 3, scroll up 4, scroll down 5).
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

// Segment is one renderable unit of the composed status line. Segments are
// immutable values: a source builds a fresh one on every successful poll and
// the scheduler replaces, never mutates, the stored copy.
type Segment struct {
	// Text is the visible content. An empty Text renders as a hidden block.
	Text string

	// Color is the foreground color as "#rrggbb". Empty means the bar's
	// default foreground.
	Color string

	// Clicks maps mouse buttons to registered action names. Nil for
	// segments with no click behavior.
	Clicks map[Button]string
}

// Text is shorthand for a plain segment with no color or click bindings.
func Text(text string) Segment {
	return Segment{Text: text}
}

// WithColor returns a copy of the segment with the foreground color set.
func (s Segment) WithColor(color string) Segment {
	s.Color = color
	return s
}

// WithClick returns a copy of the segment with an additional button binding.
// The Clicks map is copied so the original segment stays immutable.
func (s Segment) WithClick(b Button, action string) Segment {
	clicks := make(map[Button]string, len(s.Clicks)+1)
	for k, v := range s.Clicks {
		clicks[k] = v
	}
	clicks[b] = action
	s.Clicks = clicks
	return s
}

// ClickAction returns the action name bound to the given button, if any.
func (s Segment) ClickAction(b Button) (string, bool) {
	action, ok := s.Clicks[b]
	return action, ok
}
