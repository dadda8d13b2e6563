// Package ordering computes the visiting order of vertices for the decision
// heuristic.
//
// Vertices are ranked by their ordering score (path membership and graph
// boundary roles, see package model). [Engine.CreateOrder] promotes the best
// remaining starting candidate to the front and re-sorts the whole sequence,
// keeping ties in their previous relative order.
package ordering

import (
	"cmp"
	"slices"

	"github.com/gaste/heuristic-ccp/pkg/errors"
	"github.com/gaste/heuristic-ccp/pkg/model"
)

// ErrNoCandidates is returned by CreateOrder when the candidate pool is empty.
var ErrNoCandidates = errors.New(errors.ErrCodeOrderExhausted, "no starting vertex candidate left")

// Engine owns the candidate pool and the visiting order of one model.
// It is not safe for concurrent use.
type Engine struct {
	m          *model.Model
	candidates []int
	order      []int
	valid      bool
}

// New ranks the starting candidates of m, highest score first with ties in
// declaration order. The order starts as the declaration order and is not
// valid until CreateOrder succeeds.
func New(m *model.Model) *Engine {
	e := &Engine{
		m:          m,
		candidates: m.Candidates(),
		order:      make([]int, len(m.Vertices)),
	}
	for i := range e.order {
		e.order[i] = i
	}
	e.sortByScore(e.candidates)
	return e
}

// CreateOrder pops the highest-ranked candidate, places it in front of every
// other vertex and stable-sorts the order by descending score. The promoted
// vertex's score is reset to 0 afterwards.
//
// It returns ErrNoCandidates when the pool is empty and marks the order invalid.
// It may be called again to promote the next candidate.
func (e *Engine) CreateOrder() error {
	if len(e.candidates) == 0 {
		e.valid = false
		return ErrNoCandidates
	}
	start := e.candidates[0]
	e.candidates = e.candidates[1:]

	top := 0
	for i := range e.m.Vertices {
		top = max(top, e.m.Vertices[i].Score)
	}
	e.m.Vertices[start].Score = top + 1
	e.sortByScore(e.order)
	e.m.Vertices[start].Score = 0

	e.valid = true
	return nil
}

func (e *Engine) sortByScore(s []int) {
	slices.SortStableFunc(s, func(a, b int) int {
		return cmp.Compare(e.m.Vertices[b].Score, e.m.Vertices[a].Score)
	})
}

// Order returns the visiting order as vertex indices. The slice is shared and
// must not be modified.
func (e *Engine) Order() []int { return e.order }

// Valid reports whether the last CreateOrder succeeded.
func (e *Engine) Valid() bool { return e.valid }

// Remaining returns the number of candidates left in the pool.
func (e *Engine) Remaining() int { return len(e.candidates) }
