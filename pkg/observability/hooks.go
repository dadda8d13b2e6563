// Package observability provides hooks for metrics, tracing, and logging.
//
// The heuristic and the solver harness report events through hook interfaces
// instead of depending on a metrics backend. Consumers register hooks at
// startup; the defaults do nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHeuristicHooks(&myHeuristicHooks{})
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Heuristic().OnChoice(variable, observability.ChoiceColor)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Heuristic Hooks
// =============================================================================

// ChoiceKind tells which kind of option variable the heuristic proposed.
type ChoiceKind string

const (
	ChoiceColor ChoiceKind = "color"
	ChoiceBin   ChoiceKind = "bin"
)

// HeuristicHooks receives events from the decision heuristic. The heuristic is
// callback-driven and has no context of its own, so these hooks take none.
type HeuristicHooks interface {
	// OnBuild records the outcome of Entity Model construction.
	OnBuild(vertices, edges int, err error)

	// OnChoice records a branching variable handed to the solver.
	OnChoice(variable int, kind ChoiceKind)

	// OnFallback records a fallback signal and why it was emitted.
	OnFallback(reason string)

	// OnConflict records a conflict notification; total is the running count.
	OnConflict(total int)
}

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the solver harness.
type SolverHooks interface {
	// OnSolveStart records the start of a run.
	OnSolveStart(ctx context.Context, runID string, vars, clauses int)

	// OnSolveComplete records the end of a run.
	OnSolveComplete(ctx context.Context, runID string, status string, decisions int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHeuristicHooks is a no-op implementation of HeuristicHooks.
type NoopHeuristicHooks struct{}

func (NoopHeuristicHooks) OnBuild(int, int, error)  {}
func (NoopHeuristicHooks) OnChoice(int, ChoiceKind) {}
func (NoopHeuristicHooks) OnFallback(string)        {}
func (NoopHeuristicHooks) OnConflict(int)           {}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, string, int, int) {}
func (NoopSolverHooks) OnSolveComplete(context.Context, string, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	heuristicHooks HeuristicHooks = NoopHeuristicHooks{}
	solverHooks    SolverHooks    = NoopSolverHooks{}
	hooksMu        sync.RWMutex
)

// SetHeuristicHooks registers custom heuristic hooks.
// This should be called once at application startup before any engine is created.
func SetHeuristicHooks(h HeuristicHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		heuristicHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// Heuristic returns the registered heuristic hooks.
func Heuristic() HeuristicHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return heuristicHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	heuristicHooks = NoopHeuristicHooks{}
	solverHooks = NoopSolverHooks{}
}
