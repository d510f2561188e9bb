package bar

import "context"

// ErrorColor is the foreground color used for segments produced from a
// failed poll.
const ErrorColor = "#ff5555"

// Guard invokes the source's Poll and contains any failure: instead of
// propagating the error it returns a segment carrying the error message in
// the error color, with no click bindings. Every failure kind renders the
// same way; only the message differs. A transient probe failure (missing
// daemon, offline network check, absent device) degrades to a visible but
// harmless segment and is retried on the source's next tick.
func Guard(ctx context.Context, src Source) Segment {
	seg, err := src.Poll(ctx)
	if err != nil {
		return Segment{Text: err.Error(), Color: ErrorColor}
	}
	return seg
}
