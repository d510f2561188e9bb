package bar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Block pairs a source name with its latest segment. The composed line
// handed to the output boundary is an ordered slice of Blocks, one per
// registered source, in registration order.
type Block struct {
	Source  string
	Segment Segment
}

// Output is the boundary the scheduler writes composed lines to. The
// production implementation is the i3bar protocol writer; tests substitute
// a recorder. WriteLine is always called under the scheduler's render lock,
// so implementations never see interleaved lines.
type Output interface {
	WriteLine(blocks []Block) error
}

// Scheduler owns all registered sources, runs each on its own fixed
// interval, holds the latest segment per source, and re-renders the
// composed line after every store.
//
// Each source is polled by its own goroutine, so a poll that blocks (a
// stalled subprocess, slow mixer access) delays only that source's segment.
// At most one poll of a given source runs at a time. Compose and write form
// a single critical section; concurrent render triggers serialize on one
// mutex, so the output never sees a partial line.
type Scheduler struct {
	logger *slog.Logger
	out    Output

	mu      sync.Mutex // guards slots' current segments, serializes compose+write
	slots   []*slot
	running bool

	fatal chan error // first unrecoverable output failure
}

type slot struct {
	src     Source
	current Segment
}

// NewScheduler creates a scheduler writing composed lines to out.
func NewScheduler(out Output, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		out:    out,
		fatal:  make(chan error, 1),
	}
}

// Register adds a source. Registration order is render order. Register must
// be called before Run; registering afterwards returns an error.
func (s *Scheduler) Register(src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, cannot register %q", src.Name())
	}
	for _, sl := range s.slots {
		if sl.src.Name() == src.Name() {
			return fmt.Errorf("source %q already registered", src.Name())
		}
	}
	s.slots = append(s.slots, &slot{src: src})
	return nil
}

// Run polls every registered source once immediately, then on its own
// ticker, re-rendering after each poll. It blocks until ctx is cancelled
// (returns ctx.Err()) or the output boundary fails (returns that error).
// The scheduler itself never fails.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	slots := s.slots
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, sl := range slots {
		wg.Add(1)
		go func(sl *slot) {
			defer wg.Done()
			s.pollLoop(ctx, sl)
		}(sl)
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-s.fatal:
		s.logger.Error("output boundary failed", "error", err)
	}
	cancel()
	wg.Wait()
	return err
}

// RunOnce polls every registered source exactly once, in parallel, then
// writes a single composed line. Debugging path; no tickers are started.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	slots := s.slots
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, sl := range slots {
		wg.Add(1)
		go func(sl *slot) {
			defer wg.Done()
			seg := Guard(ctx, sl.src)
			s.mu.Lock()
			sl.current = seg
			s.mu.Unlock()
		}(sl)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.WriteLine(s.composeLocked())
}

// pollLoop drives one source: an immediate first poll, then one poll per
// tick. The ticker never waits for the poll, but polls of the same source
// never overlap because this goroutine is the only poller.
func (s *Scheduler) pollLoop(ctx context.Context, sl *slot) {
	s.pollOnce(ctx, sl)

	ticker := time.NewTicker(sl.src.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx, sl)
		}
	}
}

// pollOnce runs one guarded poll-and-store cycle and triggers a render.
// The poll itself runs outside the render lock.
func (s *Scheduler) pollOnce(ctx context.Context, sl *slot) {
	seg := Guard(ctx, sl.src)

	s.mu.Lock()
	sl.current = seg
	line := s.composeLocked()
	err := s.out.WriteLine(line)
	s.mu.Unlock()

	if err != nil {
		select {
		case s.fatal <- err:
		default:
		}
	}
}

// composeLocked rebuilds the full line from every source's latest segment,
// in registration order. Caller holds s.mu.
func (s *Scheduler) composeLocked() []Block {
	line := make([]Block, len(s.slots))
	for i, sl := range s.slots {
		line[i] = Block{Source: sl.src.Name(), Segment: sl.current}
	}
	return line
}

// ClickAction resolves an inbound click on the named source's segment to
// the action bound to that button at the time of the last render. The
// render lock is held only for the lookup, never while the action runs.
func (s *Scheduler) ClickAction(source string, b Button) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sl := range s.slots {
		if sl.src.Name() == source {
			return sl.current.ClickAction(b)
		}
	}
	return "", false
}
