package model

import (
	"cmp"
	"slices"

	"github.com/gaste/heuristic-ccp/pkg/errors"
	"github.com/gaste/heuristic-ccp/pkg/facts"
)

// Path identifiers. A vertex belongs to at most one path; NoPath means none.
const (
	NoPath = 0
	Path1  = 1
	Path2  = 2
)

// ColorOption is the variable deciding that Vertex takes Color (1-based).
type ColorOption struct {
	Vertex int
	Color  int
	Var    int
}

// BinOption is the variable deciding that Vertex goes into Bin (1-based) of its color.
type BinOption struct {
	Vertex int
	Bin    int
	Var    int
}

// Vertex is a vertex of the instance graph.
//
// Neighbors holds indices into [Model.Vertices]; the model owns every vertex
// exactly once. Colors and Bins are sorted ascending by color and bin id.
type Vertex struct {
	Name string
	Var  int

	InPath int // NoPath, Path1 or Path2
	Score  int // ordering priority, mutated only by the ordering engine

	Predecessors int
	Successors   int
	Neighbors    []int

	Colors []ColorOption
	Bins   []BinOption
	Size   int
}

// IsBoundary reports whether the vertex has no incoming or no outgoing edge.
func (v *Vertex) IsBoundary() bool {
	return v.Predecessors == 0 || v.Successors == 0
}

// Edge is a directed edge between two vertex indices.
type Edge struct {
	From, To int
	Var      int
}

// BinAssignment links a vertex to one (color, bin) slot.
type BinAssignment struct {
	Vertex     int
	Color      int // 1-based
	Bin        int // 1-based
	Var        int
	VertexSize int
}

// Bin is one (color, bin) slot. Assignments index into [Model.Assignments].
// Usage is never cached: it depends on which assignments are currently true.
type Bin struct {
	Color       int // 1-based
	Index       int // 1-based
	Assignments []int
}

// Area is an area that edge matchings may pick.
type Area struct {
	Name      string
	Var       int
	Total     int   // number of matchings naming this area
	Matchings []int // indices into Model.Matchings
}

// BorderElement is a border element and the matchings that use it.
type BorderElement struct {
	Name   string
	Var    int
	UsedIn []int // indices into Model.Matchings
}

// EdgeMatching pairs an area with a border element.
type EdgeMatching struct {
	Area          string
	BorderElement string
	Var           int
	RelatedArea   int // index into Model.Areas of the last area with that name, -1 if none
}

// Model is the Entity Model of one instance. It is built once by [Build] and
// not resized afterwards.
type Model struct {
	Vertices       []Vertex
	Edges          []Edge
	Assignments    []BinAssignment
	Bins           [][]Bin // [color-1][bin-1]
	Areas          []Area
	BorderElements []BorderElement
	Matchings      []EdgeMatching

	MaxBinSize int
	NumBins    int
	NumColors  int

	index map[string]int
}

// Lookup returns the index of the named vertex.
func (m *Model) Lookup(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Candidates returns the starting-vertex candidates, vertices with a positive
// score, in declaration order.
func (m *Model) Candidates() []int {
	var out []int
	for i := range m.Vertices {
		if m.Vertices[i].Score > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Bin returns the slot for a 0-based color stage and a 0-based bin index.
func (m *Model) Bin(color, bin int) *Bin {
	return &m.Bins[color][bin]
}

// Build constructs the Entity Model from the catalog.
//
// It fails with DANGLING_EDGE if an edge endpoint is unknown, MISSING_SIZE if a
// vertex or bin assignment has no declared size, DANGLING_OPTION if a color or
// bin option names an unknown vertex, DUPLICATE_VERTEX if a name is declared
// twice, and BIN_OUT_OF_RANGE if a bin assignment falls outside the
// NumColors x NumBins grid.
func Build(c *facts.Catalog) (*Model, error) {
	if c.NumColors < 0 || c.NumBins < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInstance, "negative grid %d colors x %d bins", c.NumColors, c.NumBins)
	}
	m := &Model{
		Vertices:   make([]Vertex, 0, len(c.Vertices)),
		MaxBinSize: c.MaxBinSize,
		NumBins:    c.NumBins,
		NumColors:  c.NumColors,
		index:      make(map[string]int, len(c.Vertices)),
	}

	for _, v := range c.Vertices {
		if _, dup := m.index[v.Name]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateVertex, "vertex %q declared twice", v.Name)
		}
		m.index[v.Name] = len(m.Vertices)
		m.Vertices = append(m.Vertices, Vertex{Name: v.Name, Var: v.Var})
	}

	for _, e := range c.Edges {
		from, okFrom := m.index[e.From]
		to, okTo := m.index[e.To]
		if !okFrom || !okTo {
			return nil, errors.New(errors.ErrCodeDanglingEdge, "edge(%s,%s) references an unknown vertex", e.From, e.To)
		}
		m.Edges = append(m.Edges, Edge{From: from, To: to, Var: e.Var})
		m.Vertices[from].Neighbors = append(m.Vertices[from].Neighbors, to)
		m.Vertices[to].Neighbors = append(m.Vertices[to].Neighbors, from)
		m.Vertices[from].Successors++
		m.Vertices[to].Predecessors++
	}

	for i := range m.Vertices {
		size, ok := c.Sizes[m.Vertices[i].Name]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingSize, "vertex %q has no size", m.Vertices[i].Name)
		}
		m.Vertices[i].Size = size
	}

	if err := m.fileOptions(c); err != nil {
		return nil, err
	}
	if err := m.fileBins(c); err != nil {
		return nil, err
	}
	m.linkMatchings(c)
	m.score(c)

	return m, nil
}

func (m *Model) fileOptions(c *facts.Catalog) error {
	for _, o := range c.Colors {
		i, ok := m.index[o.Vertex]
		if !ok {
			return errors.New(errors.ErrCodeDanglingOption, "vertex_color(%s,%d) references an unknown vertex", o.Vertex, o.Value)
		}
		m.Vertices[i].Colors = append(m.Vertices[i].Colors, ColorOption{Vertex: i, Color: o.Value, Var: o.Var})
	}
	for _, o := range c.Bins {
		i, ok := m.index[o.Vertex]
		if !ok {
			return errors.New(errors.ErrCodeDanglingOption, "vertex_bin(%s,%d) references an unknown vertex", o.Vertex, o.Value)
		}
		m.Vertices[i].Bins = append(m.Vertices[i].Bins, BinOption{Vertex: i, Bin: o.Value, Var: o.Var})
	}
	for i := range m.Vertices {
		v := &m.Vertices[i]
		slices.SortStableFunc(v.Colors, func(a, b ColorOption) int { return cmp.Compare(a.Color, b.Color) })
		slices.SortStableFunc(v.Bins, func(a, b BinOption) int { return cmp.Compare(a.Bin, b.Bin) })
	}
	return nil
}

func (m *Model) fileBins(c *facts.Catalog) error {
	m.Bins = make([][]Bin, m.NumColors)
	for col := range m.Bins {
		m.Bins[col] = make([]Bin, m.NumBins)
		for b := range m.Bins[col] {
			m.Bins[col][b] = Bin{Color: col + 1, Index: b + 1}
		}
	}

	for _, a := range c.Assignments {
		size, ok := c.Sizes[a.Vertex]
		if !ok {
			return errors.New(errors.ErrCodeMissingSize, "bin(%d,%d,%s): vertex has no size", a.Color, a.Bin, a.Vertex)
		}
		if a.Color < 1 || a.Color > m.NumColors || a.Bin < 1 || a.Bin > m.NumBins {
			return errors.New(errors.ErrCodeBinOutOfRange, "bin(%d,%d,%s) outside %d colors x %d bins",
				a.Color, a.Bin, a.Vertex, m.NumColors, m.NumBins)
		}
		v, ok := m.index[a.Vertex]
		if !ok {
			v = -1
		}
		m.Assignments = append(m.Assignments, BinAssignment{
			Vertex:     v,
			Color:      a.Color,
			Bin:        a.Bin,
			Var:        a.Var,
			VertexSize: size,
		})
		slot := &m.Bins[a.Color-1][a.Bin-1]
		slot.Assignments = append(slot.Assignments, len(m.Assignments)-1)
	}
	return nil
}

func (m *Model) linkMatchings(c *facts.Catalog) {
	areas := make(map[string][]int, len(c.Areas))
	for _, a := range c.Areas {
		areas[a.Name] = append(areas[a.Name], len(m.Areas))
		m.Areas = append(m.Areas, Area{Name: a.Name, Var: a.Var})
	}
	elements := make(map[string][]int, len(c.BorderElements))
	for _, b := range c.BorderElements {
		elements[b.Name] = append(elements[b.Name], len(m.BorderElements))
		m.BorderElements = append(m.BorderElements, BorderElement{Name: b.Name, Var: b.Var})
	}

	for _, em := range c.Matchings {
		idx := len(m.Matchings)
		related := -1
		for _, a := range areas[em.Area] {
			m.Areas[a].Total++
			m.Areas[a].Matchings = append(m.Areas[a].Matchings, idx)
			related = a
		}
		for _, b := range elements[em.BorderElement] {
			m.BorderElements[b].UsedIn = append(m.BorderElements[b].UsedIn, idx)
		}
		m.Matchings = append(m.Matchings, EdgeMatching{
			Area:          em.Area,
			BorderElement: em.BorderElement,
			Var:           em.Var,
			RelatedArea:   related,
		})
	}
}

// score marks path membership and sets the initial ordering scores: +1 per
// path occurrence, +2 for graph boundary vertices.
func (m *Model) score(c *facts.Catalog) {
	mark := func(names []string, path int) {
		for _, name := range names {
			if i, ok := m.index[name]; ok {
				m.Vertices[i].InPath = path
				m.Vertices[i].Score++
			}
		}
	}
	mark(c.Path1, Path1)
	mark(c.Path2, Path2)

	for i := range m.Vertices {
		if m.Vertices[i].IsBoundary() {
			m.Vertices[i].Score += 2
		}
	}
}
