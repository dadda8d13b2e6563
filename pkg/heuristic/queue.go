package heuristic

import (
	"cmp"
	"slices"

	"github.com/gaste/heuristic-ccp/pkg/model"
)

// Queue is the traversal frontier of the active color stage. It holds vertex
// indices; the head is the vertex the decision loop works on.
type Queue struct {
	items []int
}

// Push appends vertex v.
func (q *Queue) Push(v int) { q.items = append(q.items, v) }

// Head returns the first vertex without removing it.
func (q *Queue) Head() (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0], true
}

// Pop removes the first vertex.
func (q *Queue) Pop() {
	if len(q.items) > 0 {
		q.items = q.items[1:]
	}
}

// Len returns the number of queued vertices.
func (q *Queue) Len() int { return len(q.items) }

// Clear empties the queue.
func (q *Queue) Clear() { q.items = q.items[:0] }

// Items returns a copy of the queued vertices, head first.
func (q *Queue) Items() []int { return slices.Clone(q.items) }

// Expand appends the neighbors of v that are not yet considered and whose
// path membership is compatible with v's: either of them is off-path, or both
// share a path. The whole queue is then stable-sorted by path id, descending
// when v is on a path (stay on the path being walked) and ascending otherwise.
func (q *Queue) Expand(m *model.Model, v int, considered []bool) {
	from := m.Vertices[v].InPath
	for _, n := range m.Vertices[v].Neighbors {
		if considered[n] {
			continue
		}
		to := m.Vertices[n].InPath
		if from == model.NoPath || to == model.NoPath || from == to {
			q.items = append(q.items, n)
		}
	}

	path := func(i int) int { return m.Vertices[i].InPath }
	if from > model.NoPath {
		slices.SortStableFunc(q.items, func(a, b int) int { return cmp.Compare(path(b), path(a)) })
	} else {
		slices.SortStableFunc(q.items, func(a, b int) int { return cmp.Compare(path(a), path(b)) })
	}
}
