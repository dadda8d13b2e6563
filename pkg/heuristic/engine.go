package heuristic

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gaste/heuristic-ccp/pkg/facts"
	"github.com/gaste/heuristic-ccp/pkg/model"
	"github.com/gaste/heuristic-ccp/pkg/observability"
	"github.com/gaste/heuristic-ccp/pkg/ordering"
)

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Logger receives debug lines tracing every decision. Defaults to a
	// discarding logger.
	Logger *log.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// FallbackWindow is how long decisions are handed to the solver after a
	// fallback. Defaults to DefaultFallbackWindow.
	FallbackWindow time.Duration

	// FallbackSteps is the step count carried by the fallback signal.
	// Defaults to DefaultFallbackSteps; a negative value means "always".
	FallbackSteps int
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.FallbackWindow == 0 {
		o.FallbackWindow = DefaultFallbackWindow
	}
	if o.FallbackSteps == 0 {
		o.FallbackSteps = DefaultFallbackSteps
	}
}

// Stats counts what an Engine has done so far.
type Stats struct {
	Calls        int // ChoiceVars invocations
	ColorChoices int
	BinChoices   int
	Fallbacks    int
	Conflicts    int
}

// State is a snapshot of the traversal state, for diagnostics.
type State struct {
	Index      int
	Color      int   // active color stage, 0-based
	Queue      []int // vertex indices, head first
	Considered []int // vertex indices
}

// Engine is the decision heuristic for one solver run. The solver drives it
// through the callback methods in this order: AddVarName for every named
// variable, OnFinishedParsing, OnStartingSolver, then any interleaving of
// ChoiceVars, OnLiteralsTrue, OnVariableUndefined and OnConflict.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	opts Options
	log  *log.Logger

	catalog *facts.Catalog
	names   map[int]string

	model  *model.Model
	order  *ordering.Engine
	interp *Interpretation
	trav   traversal

	deadline *time.Time
	err      error
	stats    Stats
}

// New returns an Engine waiting for variable names.
func New(opts Options) *Engine {
	opts.setDefaults()
	return &Engine{
		opts:    opts,
		log:     opts.Logger,
		catalog: facts.NewCatalog(),
		names:   make(map[int]string),
		interp:  NewInterpretation(0),
	}
}

// AddVarName registers the meaning of a solver variable. Names that are not
// instance facts are ignored. A malformed fact disables the engine and is
// returned.
func (e *Engine) AddVarName(variable int, name string) error {
	e.names[variable] = name
	if e.err != nil {
		return e.err
	}
	if _, err := e.catalog.Add(variable, name); err != nil {
		e.disable(err)
		return err
	}
	return nil
}

// OnFinishedParsing validates the collected facts, builds the Entity Model and
// computes the visiting order. On failure the engine disables itself: every
// later ChoiceVars call returns the fallback signal.
func (e *Engine) OnFinishedParsing() error {
	if e.err != nil {
		return e.err
	}
	if err := e.catalog.Validate(); err != nil {
		e.disable(err)
		return err
	}

	m, err := model.Build(e.catalog)
	observability.Heuristic().OnBuild(len(e.catalog.Vertices), len(e.catalog.Edges), err)
	if err != nil {
		e.disable(err)
		return err
	}
	e.model = m
	e.trav = newTraversal(len(m.Vertices))

	e.order = ordering.New(m)
	if err := e.order.CreateOrder(); err != nil {
		e.disable(err)
		return err
	}
	e.log.Debug("model built", "vertices", len(m.Vertices), "edges", len(m.Edges),
		"colors", m.NumColors, "bins", m.NumBins, "capacity", m.MaxBinSize)
	return nil
}

// OnStartingSolver allocates the interpretation for numVars variables.
func (e *Engine) OnStartingSolver(numVars, numClauses int) {
	e.interp = NewInterpretation(numVars)
	e.log.Debug("solver starting", "vars", numVars, "clauses", numClauses)
}

// OnLiteralsTrue records that every literal in lits is now true.
func (e *Engine) OnLiteralsTrue(lits ...int) {
	for _, l := range lits {
		e.interp.SetLiteral(l)
	}
}

// OnVariableUndefined records that variable v is unassigned again.
func (e *Engine) OnVariableUndefined(v int) {
	e.interp.Unset(v)
}

// OnConflict resets the traversal. choice is the latest undefined choice as
// reported by the solver, 0 if none; it is only logged.
func (e *Engine) OnConflict(choice int) {
	e.stats.Conflicts++
	e.log.Debug("conflict", "choice", choice, "total", e.stats.Conflicts)
	observability.Heuristic().OnConflict(e.stats.Conflicts)
	e.reset()
}

// Fallback is called by the solver when it starts using its own heuristic.
func (e *Engine) Fallback() {}

// ChoiceVars returns the next decision for the solver.
func (e *Engine) ChoiceVars() Decision {
	e.stats.Calls++
	if e.err != nil || e.model == nil {
		return e.emitFallback(reasonDisabled)
	}
	if e.windowOpen(e.opts.Clock()) {
		return e.emitFallback(reasonWindowOpen)
	}

	s := e.decide()
	if s.reason != "" {
		return e.fallback(s.reason)
	}

	switch s.kind {
	case observability.ChoiceColor:
		e.stats.ColorChoices++
	case observability.ChoiceBin:
		e.stats.BinChoices++
	}
	e.log.Debug("choosing variable", "var", s.lit, "kind", s.kind, "name", e.names[s.lit])
	observability.Heuristic().OnChoice(s.lit, s.kind)
	return Choose(s.lit)
}

// reset clears the traversal but keeps the model and the order.
func (e *Engine) reset() {
	e.trav.reset()
}

func (e *Engine) disable(err error) {
	e.err = err
	e.log.Error("heuristic disabled", "err", err)
}

// Err returns the error that disabled the engine, if any.
func (e *Engine) Err() error { return e.err }

// Model returns the Entity Model, or nil before a successful OnFinishedParsing.
func (e *Engine) Model() *model.Model { return e.model }

// Order returns the visiting order as vertex indices, or nil before a
// successful OnFinishedParsing.
func (e *Engine) Order() []int {
	if e.order == nil {
		return nil
	}
	return e.order.Order()
}

// Interpretation returns the engine's view of the solver's assignment.
func (e *Engine) Interpretation() *Interpretation { return e.interp }

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// Name returns the name registered for a variable or literal.
func (e *Engine) Name(lit int) string {
	if lit < 0 {
		lit = -lit
	}
	return e.names[lit]
}

// State returns a snapshot of the traversal state.
func (e *Engine) State() State {
	s := State{
		Index: e.trav.index,
		Color: e.trav.color,
		Queue: e.trav.queue.Items(),
	}
	for i, c := range e.trav.considered {
		if c {
			s.Considered = append(s.Considered, i)
		}
	}
	return s
}
