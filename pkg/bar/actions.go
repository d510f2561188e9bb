package bar

import "log/slog"

// Actions maps action names to zero-argument side-effecting operations.
// It is populated during startup and read-only afterwards; Dispatch may be
// called concurrently with polls once the bar is running.
//
// Registering the same name twice keeps the later operation. This is a
// deliberate last-write-wins policy so a config override can replace a
// built-in binding.
type Actions struct {
	ops    map[string]func()
	logger *slog.Logger
}

// NewActions returns an empty action registry.
func NewActions(logger *slog.Logger) *Actions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Actions{
		ops:    make(map[string]func()),
		logger: logger,
	}
}

// Register stores op under name, silently overwriting any prior entry.
func (a *Actions) Register(name string, op func()) {
	a.ops[name] = op
}

// Dispatch looks up name and invokes the bound operation. Unknown names are
// ignored: a click referencing a stale or unregistered action must never
// crash the dispatcher. The operation runs synchronously on the caller's
// goroutine and may itself block on hardware I/O, so callers must not hold
// the render lock.
func (a *Actions) Dispatch(name string) {
	op, ok := a.ops[name]
	if !ok {
		a.logger.Debug("ignoring unknown action", "name", name)
		return
	}
	op()
}
