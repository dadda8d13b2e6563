package driver

import (
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// frame is one decision level: the assumed literal and everything unit
// propagation assigned because of it.
type frame struct {
	m        z.Lit
	flipped  bool
	assigned []int
}

// listener is told about every assignment change.
type listener interface {
	OnLiteralsTrue(lits ...int)
	OnVariableUndefined(v int)
}

// search is a chronological backtracking search over gini test scopes. Each
// decision opens a scope with Assume and Test; backtracking closes it with
// Untest.
type search struct {
	s      inter.S
	l      listener
	vals   []int8 // by variable, 0 if unassigned
	frames []frame
	buffer []z.Lit
}

func newSearch(s inter.S, l listener, numVars int) *search {
	return &search{
		s:      s,
		l:      l,
		vals:   make([]int8, numVars+1),
		buffer: make([]z.Lit, 0, numVars+1),
	}
}

// root propagates the formula without assumptions and opens the base scope.
// Unit clauses are assigned while the formula is loaded, before any test, so
// the root values are read back from the solver instead of the test output.
func (h *search) root() ([]int, int) {
	res, _ := h.test()
	if res == unsatisfiable {
		return nil, res
	}
	var units []z.Lit
	top := min(int(h.s.MaxVar()), len(h.vals)-1)
	for v := 1; v <= top; v++ {
		m := z.Var(v).Pos()
		switch {
		case h.s.Value(m):
			units = append(units, m)
		case h.s.Value(m.Not()):
			units = append(units, m.Not())
		}
	}
	return h.record(units), res
}

// test runs gini's Test. The output slice is only filled when the
// destination is non-nil, so the buffer is never given away.
func (h *search) test() (int, []z.Lit) {
	res, out := h.s.Test(h.buffer[:0])
	if out != nil {
		h.buffer = out
	}
	return res, out
}

// push assumes m in a new scope. The frame is kept even on conflict so that
// backtrack can close its scope.
func (h *search) push(m z.Lit, flipped bool) int {
	h.s.Assume(m)
	res, out := h.test()
	f := frame{m: m, flipped: flipped}
	if res != unsatisfiable {
		f.assigned = h.record(out)
		if v := int(m.Var()); !h.assigned(v) {
			f.assigned = append(f.assigned, h.record([]z.Lit{m})...)
		}
	}
	h.frames = append(h.frames, f)
	return res
}

// pop closes the innermost scope and unassigns its literals.
func (h *search) pop() int {
	f := h.frames[len(h.frames)-1]
	h.frames = h.frames[:len(h.frames)-1]
	for _, v := range f.assigned {
		h.vals[v] = 0
		h.l.OnVariableUndefined(v)
	}
	return h.s.Untest()
}

// backtrack undoes decisions after a conflict in the innermost scope until a
// decision can be flipped without an immediate conflict. It returns the
// flipped literal, or false if the search space is exhausted.
func (h *search) backtrack() (z.Lit, bool) {
	for len(h.frames) > 0 {
		top := h.frames[len(h.frames)-1]
		res := h.pop()
		if top.flipped || res == unsatisfiable {
			continue
		}
		if h.push(top.m.Not(), true) != unsatisfiable {
			return top.m.Not(), true
		}
	}
	return z.LitNull, false
}

// unroll pops decisions until variable v is unassigned.
func (h *search) unroll(v int) {
	for len(h.frames) > 0 && v < len(h.vals) && h.vals[v] != 0 {
		h.pop()
	}
}

// restart pops every decision.
func (h *search) restart() {
	for len(h.frames) > 0 {
		h.pop()
	}
}

// record marks the propagated literals as assigned, reports them and returns
// their variables.
func (h *search) record(out []z.Lit) []int {
	if len(out) == 0 {
		return nil
	}
	vars := make([]int, 0, len(out))
	lits := make([]int, 0, len(out))
	for _, m := range out {
		d := m.Dimacs()
		v := int(m.Var())
		if v >= len(h.vals) {
			h.vals = append(h.vals, make([]int8, v+1-len(h.vals))...)
		}
		if h.vals[v] != 0 {
			continue
		}
		h.vals[v] = m.Sign()
		vars = append(vars, v)
		lits = append(lits, d)
	}
	if len(lits) > 0 {
		h.l.OnLiteralsTrue(lits...)
	}
	return vars
}

// assigned reports whether variable v has a value.
func (h *search) assigned(v int) bool {
	return v > 0 && v < len(h.vals) && h.vals[v] != 0
}

// next returns the default decision: the lowest unassigned variable, negated.
func (h *search) next() (z.Lit, bool) {
	for v := 1; v < len(h.vals); v++ {
		if h.vals[v] == 0 {
			return z.Var(v).Neg(), true
		}
	}
	return z.LitNull, false
}

func (h *search) level() int { return len(h.frames) }
