package heuristic

import (
	"slices"
	"testing"

	"github.com/gaste/heuristic-ccp/pkg/facts"
	"github.com/gaste/heuristic-ccp/pkg/model"
)

// star builds a hub x connected to q, p and r in that order, plus the extra facts.
func star(t *testing.T, extra ...string) *model.Model {
	t.Helper()
	names := []string{
		"vertex(x)", "vertex(q)", "vertex(p)", "vertex(r)",
		"edge(x,q)", "edge(x,p)", "edge(x,r)",
		"size(x,1)", "size(q,1)", "size(p,1)", "size(r,1)",
	}
	c := facts.NewCatalog()
	for i, n := range append(names, extra...) {
		if _, err := c.Add(i+1, n); err != nil {
			t.Fatal(err)
		}
	}
	m, err := model.Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func queued(m *model.Model, q *Queue) []string {
	var out []string
	for _, v := range q.Items() {
		out = append(out, m.Vertices[v].Name)
	}
	return out
}

func TestQueueExpand(t *testing.T) {
	tests := []struct {
		name  string
		facts []string
		want  []string
	}{
		{
			name: "off path ascending",
			// r path 2, p path 1, q none
			facts: []string{"path2(r)", "path1(p)"},
			want:  []string{"q", "p", "r"},
		},
		{
			name:  "on path stays on path",
			facts: []string{"path1(x)", "path1(p)", "path2(r)"},
			want:  []string{"p", "q"},
		},
		{
			name:  "no paths keeps neighbor order",
			facts: nil,
			want:  []string{"q", "p", "r"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := star(t, tt.facts...)
			var q Queue
			q.Expand(m, 0, make([]bool, len(m.Vertices)))
			if got := queued(m, &q); !slices.Equal(got, tt.want) {
				t.Errorf("Expand() queue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueueExpandSkipsConsidered(t *testing.T) {
	m := star(t)
	considered := make([]bool, len(m.Vertices))
	considered[2] = true // p

	var q Queue
	q.Expand(m, 0, considered)
	if got := queued(m, &q); !slices.Equal(got, []string{"q", "r"}) {
		t.Errorf("Expand() queue = %v, want [q r]", got)
	}
}

func TestQueueExpandSortsWholeQueue(t *testing.T) {
	m := star(t, "path1(x)", "path1(p)")
	var q Queue
	q.Push(1) // q, off path, already queued
	q.Expand(m, 0, make([]bool, len(m.Vertices)))

	// p moves ahead of both q entries; ties keep their order.
	if got := queued(m, &q); !slices.Equal(got, []string{"p", "q", "q"}) {
		t.Errorf("queue = %v, want [p q q]", got)
	}
}

func TestQueueBasics(t *testing.T) {
	var q Queue
	if _, ok := q.Head(); ok {
		t.Error("Head() on empty queue reported a vertex")
	}
	q.Pop()

	q.Push(3)
	q.Push(1)
	if h, _ := q.Head(); h != 3 {
		t.Errorf("Head() = %d, want 3", h)
	}
	q.Pop()
	if h, _ := q.Head(); h != 1 || q.Len() != 1 {
		t.Errorf("Head() = %d, Len() = %d, want 1, 1", h, q.Len())
	}
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d", q.Len())
	}
}
