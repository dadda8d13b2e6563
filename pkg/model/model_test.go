package model

import (
	"testing"

	"github.com/gaste/heuristic-ccp/pkg/errors"
	"github.com/gaste/heuristic-ccp/pkg/facts"
)

func catalog(t *testing.T, names ...string) *facts.Catalog {
	t.Helper()
	c := facts.NewCatalog()
	for i, n := range names {
		if _, err := c.Add(i+1, n); err != nil {
			t.Fatalf("Add(%q): %v", n, err)
		}
	}
	return c
}

func chain(extra ...string) []string {
	base := []string{
		"vertex(a)", "vertex(b)", "vertex(c)",
		"edge(a,b)", "edge(b,c)",
		"size(a,2)", "size(b,2)", "size(c,2)",
		"vertex_color(a,1)", "vertex_color(b,1)", "vertex_color(c,1)",
		"vertex_bin(a,1)", "vertex_bin(b,1)", "vertex_bin(c,1)",
		"bin(1,1,a)", "bin(1,1,b)", "bin(1,1,c)",
		"area(x)", "borderelement(e)", "edge_matching_selected(x,e)",
		"maxbinsize(5)", "nrofbins(1)", "nrofcolors(1)",
	}
	return append(base, extra...)
}

func TestBuildChain(t *testing.T) {
	m, err := Build(catalog(t, chain()...))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(m.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d, want 3", len(m.Vertices))
	}
	a, b, c := m.Vertices[0], m.Vertices[1], m.Vertices[2]

	if a.Successors != 1 || a.Predecessors != 0 {
		t.Errorf("a degrees = %d/%d, want 0/1", a.Predecessors, a.Successors)
	}
	if b.Successors != 1 || b.Predecessors != 1 {
		t.Errorf("b degrees = %d/%d, want 1/1", b.Predecessors, b.Successors)
	}
	if len(b.Neighbors) != 2 || b.Neighbors[0] != 0 || b.Neighbors[1] != 2 {
		t.Errorf("b.Neighbors = %v, want [0 2]", b.Neighbors)
	}
	if a.Score != 2 || b.Score != 0 || c.Score != 2 {
		t.Errorf("scores = %d,%d,%d, want 2,0,2", a.Score, b.Score, c.Score)
	}
	if got := m.Candidates(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Candidates() = %v, want [0 2]", got)
	}
	if a.Size != 2 || a.Colors[0].Var != 9 || a.Bins[0].Var != 12 {
		t.Errorf("a = %+v", a)
	}

	slot := m.Bin(0, 0)
	if len(slot.Assignments) != 3 {
		t.Fatalf("slot assignments = %v, want 3", slot.Assignments)
	}
	if as := m.Assignments[slot.Assignments[1]]; as.Vertex != 1 || as.VertexSize != 2 || as.Var != 16 {
		t.Errorf("assignment = %+v", as)
	}
	if i, ok := m.Lookup("c"); !ok || i != 2 {
		t.Errorf("Lookup(c) = %d, %v", i, ok)
	}
}

func TestBuildPaths(t *testing.T) {
	m, err := Build(catalog(t, chain("path1(b)", "path2(c)", "path1(c)", "path1(nowhere)")...))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	b, c := m.Vertices[1], m.Vertices[2]
	if b.InPath != Path1 || b.Score != 1 {
		t.Errorf("b = path %d score %d, want path 1 score 1", b.InPath, b.Score)
	}
	// path2 is applied after path1, boundary bonus on top
	if c.InPath != Path2 || c.Score != 4 {
		t.Errorf("c = path %d score %d, want path 2 score 4", c.InPath, c.Score)
	}
	if got := m.Candidates(); len(got) != 3 {
		t.Errorf("Candidates() = %v, want all three", got)
	}
}

func TestBuildSortsOptions(t *testing.T) {
	c := catalog(t, chain("vertex_color(a,3)", "vertex_color(a,2)", "vertex_bin(a,2)")...)
	c.NumColors, c.NumBins = 3, 2

	m, err := Build(c)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	a := m.Vertices[0]
	for i, want := range []int{1, 2, 3} {
		if a.Colors[i].Color != want {
			t.Errorf("Colors[%d] = %d, want %d", i, a.Colors[i].Color, want)
		}
	}
	if a.Bins[0].Bin != 1 || a.Bins[1].Bin != 2 {
		t.Errorf("Bins = %+v", a.Bins)
	}
	if len(m.Bins) != 3 || len(m.Bins[2]) != 2 || m.Bins[2][1].Color != 3 || m.Bins[2][1].Index != 2 {
		t.Errorf("bin grid malformed: %+v", m.Bins)
	}
}

func TestBuildMatchings(t *testing.T) {
	m, err := Build(catalog(t, chain("area(y)", "borderelement(f)", "edge_matching_selected(x,f)", "edge_matching_selected(z,e)")...))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if m.Areas[0].Total != 2 || len(m.Areas[0].Matchings) != 2 {
		t.Errorf("area x = %+v, want 2 matchings", m.Areas[0])
	}
	if m.Areas[1].Total != 0 {
		t.Errorf("area y total = %d, want 0", m.Areas[1].Total)
	}
	if len(m.BorderElements[0].UsedIn) != 2 {
		t.Errorf("border element e used in %v, want 2", m.BorderElements[0].UsedIn)
	}
	if m.Matchings[2].RelatedArea != -1 {
		t.Errorf("matching on unknown area related to %d, want -1", m.Matchings[2].RelatedArea)
	}
	if m.Matchings[1].RelatedArea != 0 {
		t.Errorf("matching (x,f) related to %d, want 0", m.Matchings[1].RelatedArea)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		code  errors.Code
	}{
		{"dangling edge", chain("edge(a,q)"), errors.ErrCodeDanglingEdge},
		{"missing vertex size", chain("vertex(d)"), errors.ErrCodeMissingSize},
		{"missing assignment size", chain("bin(1,1,q)"), errors.ErrCodeMissingSize},
		{"dangling color", chain("vertex_color(q,1)"), errors.ErrCodeDanglingOption},
		{"dangling bin", chain("vertex_bin(q,1)"), errors.ErrCodeDanglingOption},
		{"duplicate vertex", chain("vertex(a)"), errors.ErrCodeDuplicateVertex},
		{"bin out of range", chain("bin(2,1,a)"), errors.ErrCodeBinOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(catalog(t, tt.names...))
			if m != nil {
				t.Error("Build() returned a model on error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}
