package heuristic

import (
	"time"

	"github.com/gaste/heuristic-ccp/pkg/observability"
)

const (
	// DefaultFallbackWindow is how long the decision loop stays bypassed after
	// a fallback was emitted.
	DefaultFallbackWindow = 10 * time.Second

	// DefaultFallbackSteps is the number of decisions handed to the solver's
	// own heuristic by each fallback signal.
	DefaultFallbackSteps = 1000
)

// windowOpen reports whether a fallback window is active at now. An expired
// window is cleared.
func (e *Engine) windowOpen(now time.Time) bool {
	if e.deadline == nil {
		return false
	}
	if now.Before(*e.deadline) {
		return true
	}
	e.deadline = nil
	return false
}

// fallback resets the traversal, opens a new window and returns the fallback
// signal.
func (e *Engine) fallback(reason string) Decision {
	e.reset()
	until := e.opts.Clock().Add(e.opts.FallbackWindow)
	e.deadline = &until
	return e.emitFallback(reason)
}

// emitFallback counts and reports a fallback without touching any state.
func (e *Engine) emitFallback(reason string) Decision {
	e.stats.Fallbacks++
	e.log.Debug("fallback", "reason", reason, "steps", e.opts.FallbackSteps)
	observability.Heuristic().OnFallback(reason)
	return FallbackFor(e.opts.FallbackSteps)
}

// FallbackUntil returns the end of the current fallback window, or nil if
// none is open.
func (e *Engine) FallbackUntil() *time.Time {
	if e.deadline == nil {
		return nil
	}
	t := *e.deadline
	return &t
}
