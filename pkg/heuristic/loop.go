package heuristic

import (
	"github.com/gaste/heuristic-ccp/pkg/model"
	"github.com/gaste/heuristic-ccp/pkg/observability"
)

// Fallback reasons reported to logs and hooks.
const (
	reasonDisabled       = "engine disabled"
	reasonOrderInvalid   = "order invalid"
	reasonOrderExhausted = "order exhausted"
	reasonColorsDone     = "color stages exhausted"
	reasonNoVertex       = "no unconsidered vertex"
	reasonIterationCap   = "iteration cap reached"
	reasonWindowOpen     = "fallback window open"
)

// traversal is the mutable state of the decision loop. The Entity Model and
// the order are only read.
type traversal struct {
	index      int // cursor into the order
	color      int // active color stage, 0-based
	queue      Queue
	considered []bool
}

func newTraversal(n int) traversal {
	return traversal{considered: make([]bool, n)}
}

// reset returns the traversal to its initial state.
func (t *traversal) reset() {
	t.index = 0
	t.color = 0
	t.queue.Clear()
	clear(t.considered)
}

// step is the outcome of one decide call: either a literal to branch on or a
// fallback reason.
type step struct {
	lit    int
	kind   observability.ChoiceKind
	reason string
}

// iterationCap bounds a single decide call. Every iteration dequeues, advances
// the cursor or advances the color stage, so a correct loop never gets close.
func iterationCap(m *model.Model, order []int) int {
	deg := 0
	for i := range m.Vertices {
		deg += len(m.Vertices[i].Neighbors)
	}
	return len(order)*(m.NumColors+1)*(m.NumBins+1) + deg + 16
}

// decide runs the decision loop until it finds an unknown option variable or
// hits a fallback condition.
func (e *Engine) decide() step {
	m, t, in := e.model, &e.trav, e.interp
	order := e.order.Order()
	limit := iterationCap(m, order)

	for iter := 0; ; iter++ {
		if iter >= limit {
			return step{reason: reasonIterationCap}
		}
		if !e.order.Valid() {
			return step{reason: reasonOrderInvalid}
		}

		if t.queue.Len() == 0 {
			if t.index >= len(order) {
				return step{reason: reasonOrderExhausted}
			}
			if t.index > 0 {
				t.color++
				if t.color >= m.NumColors {
					return step{reason: reasonColorsDone}
				}
			}
			next := -1
			for next < 0 && t.index < len(order) {
				if v := order[t.index]; !t.considered[v] {
					next = v
				}
				t.index++
			}
			if next < 0 {
				return step{reason: reasonNoVertex}
			}
			t.queue.Push(next)
		}

		vi, _ := t.queue.Head()
		v := &m.Vertices[vi]
		if t.considered[vi] {
			// queued twice by different neighbors and already placed
			t.queue.Pop()
			continue
		}
		e.log.Debug("queue head", "vertex", v.Name, "color", t.color+1, "queued", t.queue.Len())

		color := resolvedColor(v, in)
		switch {
		case color == 0:
			if t.color >= len(v.Colors) {
				e.log.Debug("no color option for stage", "vertex", v.Name, "color", t.color+1)
				t.queue.Pop()
				t.considered[vi] = true
				continue
			}
			lit := v.Colors[t.color].Var
			switch in.Value(lit) {
			case Unknown:
				return step{lit: lit, kind: observability.ChoiceColor}
			case False:
				e.log.Debug("color option false", "vertex", v.Name, "var", lit)
				t.queue.Pop()
			}
			// True would have been resolved above.

		case color != t.color+1:
			e.log.Debug("vertex colored in another stage", "vertex", v.Name, "color", color)
			t.queue.Pop()

		default:
			if bin := resolvedBin(v, in); bin != 0 {
				e.log.Debug("vertex already placed", "vertex", v.Name, "bin", bin)
				t.queue.Pop()
				t.queue.Expand(m, vi, t.considered)
				t.considered[vi] = true
				continue
			}
			lit, ok := e.firstFit(v)
			if !ok {
				e.log.Debug("no bin fits", "vertex", v.Name, "size", v.Size, "capacity", m.MaxBinSize)
				t.queue.Pop()
				t.considered[vi] = true
				continue
			}
			switch in.Value(lit) {
			case Unknown:
				return step{lit: lit, kind: observability.ChoiceBin}
			case True:
				t.queue.Pop()
				t.considered[vi] = true
			case False:
				t.queue.Pop()
			}
		}
	}
}

// resolvedColor returns the lowest color whose option is true, or 0.
func resolvedColor(v *model.Vertex, in *Interpretation) int {
	for _, c := range v.Colors {
		if in.Value(c.Var) == True {
			return c.Color
		}
	}
	return 0
}

// resolvedBin returns the lowest bin whose option is true, or 0.
func resolvedBin(v *model.Vertex, in *Interpretation) int {
	for _, b := range v.Bins {
		if in.Value(b.Var) == True {
			return b.Bin
		}
	}
	return 0
}

// firstFit returns the bin option variable of the first bin in the active
// color stage that still has room for v. Bins are tried by position in v's
// sorted bin options; positions v does not declare are skipped.
func (e *Engine) firstFit(v *model.Vertex) (int, bool) {
	m := e.model
	for i := 0; i < m.NumBins && i < len(v.Bins); i++ {
		used := e.usage(e.trav.color, i)
		if used+v.Size <= m.MaxBinSize {
			e.log.Debug("bin fits", "vertex", v.Name, "bin", i+1, "used", used, "size", v.Size)
			return v.Bins[i].Var, true
		}
	}
	return 0, false
}

// usage sums the sizes of the true assignments filed in one slot.
func (e *Engine) usage(color, bin int) int {
	used := 0
	for _, a := range e.model.Bin(color, bin).Assignments {
		ba := e.model.Assignments[a]
		if e.interp.Value(ba.Var) == True {
			used += ba.VertexSize
		}
	}
	return used
}
