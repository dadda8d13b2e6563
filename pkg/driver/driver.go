package driver

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/google/uuid"

	"github.com/gaste/heuristic-ccp/pkg/errors"
	"github.com/gaste/heuristic-ccp/pkg/heuristic"
	"github.com/gaste/heuristic-ccp/pkg/observability"
)

// ErrIncomplete is returned when a run is cancelled or hits its decision
// limit before an answer is known.
var ErrIncomplete = errors.New(errors.ErrCodeIncomplete, "stopped before a solution could be found")

// Heuristic is the decision procedure consulted for branching variables.
// [heuristic.Engine] implements it.
type Heuristic interface {
	AddVarName(variable int, name string) error
	OnFinishedParsing() error
	OnStartingSolver(numVars, numClauses int)
	OnLiteralsTrue(lits ...int)
	OnVariableUndefined(v int)
	OnConflict(choice int)
	ChoiceVars() heuristic.Decision
	Fallback()
}

// Status is the answer of a run.
type Status string

const (
	StatusSatisfiable   Status = "SAT"
	StatusUnsatisfiable Status = "UNSAT"
	StatusIncoherent    Status = "INCOHERENT" // aborted by the heuristic
	StatusUnknown       Status = "UNKNOWN"
)

// Result describes a finished run.
type Result struct {
	RunID  string
	Status Status
	Model  []int // true literals, by variable, when satisfiable

	Decisions        int // all decisions taken
	HeuristicChoices int // decisions proposed by the heuristic
	DefaultChoices   int // decisions taken by the default heuristic
	Conflicts        int
	Duration         time.Duration

	Trace []Event
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithMaxDecisions stops a run with ErrIncomplete after n decisions.
// Zero means no limit.
func WithMaxDecisions(n int) Option {
	return func(d *Driver) { d.maxDecisions = n }
}

// WithTrace records every decision, conflict and fallback in Result.Trace.
func WithTrace() Option {
	return func(d *Driver) { d.trace = true }
}

// Driver runs gini on a problem and lets a Heuristic pick the branching
// literals. Unit propagation and the final model check are gini's; the
// decisions, backtracking and restarts are driven here.
type Driver struct {
	log          *log.Logger
	maxDecisions int
	trace        bool
}

// New returns a Driver.
func New(opts ...Option) *Driver {
	d := &Driver{log: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// run is the state of one Run call.
type run struct {
	d   *Driver
	p   *Problem
	h   Heuristic
	g   *gini.Gini
	s   *search
	rec recorder
	res Result
	log *log.Logger

	fallbackLeft int
	fallbackAll  bool
}

// Run solves p, consulting h for decisions. The returned Result is non-nil
// whenever the problem could be loaded into the solver, including when the
// error is ErrIncomplete.
func (d *Driver) Run(ctx context.Context, p *Problem, h Heuristic) (*Result, error) {
	g, err := gini.NewDimacs(bytes.NewReader(p.cnf))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse cnf")
	}

	id := uuid.NewString()
	r := &run{
		d:   d,
		p:   p,
		h:   h,
		g:   g,
		rec: recorder{on: d.trace},
		res: Result{RunID: id, Status: StatusUnknown},
		log: d.log.With("run", id[:8]),
	}

	numVars := max(p.NumVars, int(g.MaxVar()))
	for _, n := range p.Names {
		if err := h.AddVarName(n.Var, n.Name); err != nil {
			r.log.Warn("rejected variable name", "var", n.Var, "name", n.Name, "err", err)
		}
	}
	if err := h.OnFinishedParsing(); err != nil {
		r.log.Warn("heuristic unavailable, using default decisions", "err", errors.UserMessage(err))
	}
	h.OnStartingSolver(numVars, p.NumClauses)
	r.s = newSearch(g, h, numVars)

	observability.Solver().OnSolveStart(ctx, id, numVars, p.NumClauses)
	start := time.Now()
	r.log.Info("solving", "vars", numVars, "clauses", p.NumClauses, "names", len(p.Names))

	err = r.loop(ctx)

	r.res.Duration = time.Since(start)
	r.res.Trace = r.rec.events
	observability.Solver().OnSolveComplete(ctx, id, string(r.res.Status), r.res.Decisions, r.res.Duration, err)
	r.log.Info("done", "status", r.res.Status, "decisions", r.res.Decisions,
		"conflicts", r.res.Conflicts, "duration", r.res.Duration)
	return &r.res, err
}

func (r *run) loop(ctx context.Context) error {
	if _, res := r.s.root(); res == unsatisfiable {
		r.res.Status = StatusUnsatisfiable
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeIncomplete, ErrIncomplete, "%v", err)
		}
		if r.d.maxDecisions > 0 && r.res.Decisions >= r.d.maxDecisions {
			return ErrIncomplete
		}

		m, ok, stop := r.decide()
		if stop {
			r.res.Status = StatusIncoherent
			return nil
		}
		if !ok {
			done, err := r.finish(ctx)
			if done || err != nil {
				return err
			}
			continue
		}

		r.res.Decisions++
		if r.s.push(m, false) == unsatisfiable {
			if !r.conflict(m.Dimacs()) {
				r.res.Status = StatusUnsatisfiable
				return nil
			}
		}
	}
}

// maxDirectives bounds consecutive restart and unroll directives in one
// decision.
const maxDirectives = 64

// decide picks the next literal. ok is false when every variable is assigned;
// stop is true when the heuristic aborted the search.
func (r *run) decide() (m z.Lit, ok, stop bool) {
	for range maxDirectives {
		if r.fallbackAll || r.fallbackLeft > 0 {
			if r.fallbackLeft > 0 {
				r.fallbackLeft--
			}
			return r.byDefault()
		}

		d := r.h.ChoiceVars()
		switch d.Kind {
		case heuristic.Choice:
			v := d.Var
			if v < 0 {
				v = -v
			}
			if v == 0 || v >= len(r.s.vals) || r.s.assigned(v) {
				r.log.Warn("heuristic chose an unavailable variable", "lit", d.Var)
				return r.byDefault()
			}
			r.res.HeuristicChoices++
			r.rec.add(Event{Kind: EventChoice, Lit: d.Var, Name: r.p.NameOf(v), Level: r.s.level()})
			return z.Dimacs2Lit(d.Var), true, false

		case heuristic.UseFallback:
			r.h.Fallback()
			r.rec.add(Event{Kind: EventFallback, Steps: d.Steps, Level: r.s.level()})
			if d.Steps <= 0 {
				r.fallbackAll = true
			} else {
				r.fallbackLeft = d.Steps
			}

		case heuristic.Restart:
			r.rec.add(Event{Kind: EventRestart, Level: r.s.level()})
			r.s.restart()

		case heuristic.Unroll:
			r.rec.add(Event{Kind: EventUnroll, Lit: d.Var, Name: r.p.NameOf(d.Var), Level: r.s.level()})
			r.s.unroll(d.Var)

		case heuristic.Abort:
			return z.LitNull, false, true
		}
	}
	r.log.Warn("heuristic keeps redirecting, using default decision")
	return r.byDefault()
}

func (r *run) byDefault() (z.Lit, bool, bool) {
	m, ok := r.s.next()
	if !ok {
		return m, false, false
	}
	r.res.DefaultChoices++
	v := int(m.Var())
	r.rec.add(Event{Kind: EventDefault, Lit: m.Dimacs(), Name: r.p.NameOf(v), Level: r.s.level()})
	return m, true, false
}

// conflict reports a failed decision and backtracks. It returns false when no
// decision is left to flip.
func (r *run) conflict(choice int) bool {
	r.res.Conflicts++
	r.rec.add(Event{Kind: EventConflict, Lit: choice, Level: r.s.level()})
	r.h.OnConflict(choice)
	flipped, ok := r.s.backtrack()
	if ok {
		r.rec.add(Event{Kind: EventBacktrack, Lit: flipped.Dimacs(), Name: r.p.NameOf(int(flipped.Var())), Level: r.s.level()})
	}
	return ok
}

// finish asks gini for a model under the current decisions. It returns true
// once the run has an answer.
func (r *run) finish(ctx context.Context) (bool, error) {
	switch r.solve(ctx) {
	case satisfiable:
		r.res.Status = StatusSatisfiable
		top := int(r.g.MaxVar())
		for v := 1; v < len(r.s.vals); v++ {
			// variables in no clause keep the value they were decided with
			if (v <= top && r.g.Value(z.Var(v).Pos())) || (v > top && r.s.vals[v] > 0) {
				r.res.Model = append(r.res.Model, v)
			} else {
				r.res.Model = append(r.res.Model, -v)
			}
		}
		r.rec.add(Event{Kind: EventModel, Level: r.s.level()})
		return true, nil
	case unsatisfiable:
		if !r.conflict(0) {
			r.res.Status = StatusUnsatisfiable
			return true, nil
		}
		return false, nil
	}
	return true, ErrIncomplete
}

// solve runs gini's own search under the current decisions, stopping it when
// ctx is done.
func (r *run) solve(ctx context.Context) int {
	if ctx.Done() == nil {
		return r.g.Solve()
	}
	s := r.g.GoSolve()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-tick.C:
			if res, ok := s.Test(); ok {
				return res
			}
		}
	}
}

const pollInterval = 5 * time.Millisecond
