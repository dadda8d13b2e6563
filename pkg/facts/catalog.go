package facts

import (
	"strings"

	"github.com/gaste/heuristic-ccp/pkg/errors"
)

// Kind names a fact category recognized in solver variable names.
type Kind string

const (
	KindVertex        Kind = "vertex"
	KindEdge          Kind = "edge"
	KindSize          Kind = "size"
	KindVertexColor   Kind = "vertex_color"
	KindVertexBin     Kind = "vertex_bin"
	KindMatching      Kind = "edge_matching_selected"
	KindArea          Kind = "area"
	KindBorderElement Kind = "borderelement"
	KindPath1         Kind = "path1"
	KindPath2         Kind = "path2"
	KindMaxBinSize    Kind = "maxbinsize"
	KindNumBins       Kind = "nrofbins"
	KindNumColors     Kind = "nrofcolors"
	KindBin           Kind = "bin"
)

var arity = map[Kind]int{
	KindVertex:        1,
	KindEdge:          2,
	KindSize:          2,
	KindVertexColor:   2,
	KindVertexBin:     2,
	KindMatching:      2,
	KindArea:          1,
	KindBorderElement: 1,
	KindPath1:         1,
	KindPath2:         1,
	KindMaxBinSize:    1,
	KindNumBins:       1,
	KindNumColors:     1,
	KindBin:           3,
}

// Named is a fact that carries only a name: vertex, area or border element.
type Named struct {
	Name string
	Var  int
}

// Edge is a directed edge fact.
type Edge struct {
	From, To string
	Var      int
}

// Option is a vertex_color or vertex_bin fact. Value is the 1-based color or bin.
type Option struct {
	Vertex string
	Value  int
	Var    int
}

// Matching is an edge_matching_selected fact.
type Matching struct {
	Area          string
	BorderElement string
	Var           int
}

// Assignment is a bin(color,bin,vertex) fact. Color and Bin are 1-based.
type Assignment struct {
	Vertex     string
	Color, Bin int
	Var        int
}

// Catalog accumulates the facts of one instance in arrival order.
// Facts may arrive in any order; nothing is resolved until the Entity Model is built.
type Catalog struct {
	Vertices       []Named
	Edges          []Edge
	Sizes          map[string]int
	Colors         []Option
	Bins           []Option
	Matchings      []Matching
	Areas          []Named
	BorderElements []Named
	Path1, Path2   []string
	Assignments    []Assignment

	MaxBinSize int
	NumBins    int
	NumColors  int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Sizes: make(map[string]int)}
}

// Add parses name and records it under variable. It reports whether the name
// was a recognized fact. Names that do not parse or have an unknown kind are
// not facts of this instance and are skipped without error.
func (c *Catalog) Add(variable int, name string) (bool, error) {
	t, err := Parse(name)
	if err != nil {
		return false, nil
	}
	return c.AddTerm(variable, t)
}

// AddTerm records an already parsed term. A recognized kind with the wrong
// arity or a malformed integer argument is an INVALID_FACT error.
func (c *Catalog) AddTerm(variable int, t Term) (bool, error) {
	kind := Kind(t.Name)
	want, ok := arity[kind]
	if !ok {
		return false, nil
	}
	if t.Arity() != want {
		return false, errors.New(errors.ErrCodeInvalidFact, "%s: want %d arguments, got %d", t, want, t.Arity())
	}

	switch kind {
	case KindVertex:
		c.Vertices = append(c.Vertices, Named{Name: t.Args[0], Var: variable})
	case KindEdge:
		c.Edges = append(c.Edges, Edge{From: t.Args[0], To: t.Args[1], Var: variable})
	case KindSize:
		n, err := t.Int(1)
		if err != nil {
			return false, err
		}
		c.Sizes[t.Args[0]] = n
	case KindVertexColor, KindVertexBin:
		n, err := t.Int(1)
		if err != nil {
			return false, err
		}
		opt := Option{Vertex: t.Args[0], Value: n, Var: variable}
		if kind == KindVertexColor {
			c.Colors = append(c.Colors, opt)
		} else {
			c.Bins = append(c.Bins, opt)
		}
	case KindMatching:
		c.Matchings = append(c.Matchings, Matching{Area: t.Args[0], BorderElement: t.Args[1], Var: variable})
	case KindArea:
		c.Areas = append(c.Areas, Named{Name: t.Args[0], Var: variable})
	case KindBorderElement:
		c.BorderElements = append(c.BorderElements, Named{Name: t.Args[0], Var: variable})
	case KindPath1:
		c.Path1 = append(c.Path1, t.Args[0])
	case KindPath2:
		c.Path2 = append(c.Path2, t.Args[0])
	case KindMaxBinSize, KindNumBins, KindNumColors:
		n, err := t.Int(0)
		if err != nil {
			return false, err
		}
		switch kind {
		case KindMaxBinSize:
			c.MaxBinSize = n
		case KindNumBins:
			c.NumBins = n
		default:
			c.NumColors = n
		}
	case KindBin:
		color, err := t.Int(0)
		if err != nil {
			return false, err
		}
		bin, err := t.Int(1)
		if err != nil {
			return false, err
		}
		c.Assignments = append(c.Assignments, Assignment{Vertex: t.Args[2], Color: color, Bin: bin, Var: variable})
	}
	return true, nil
}

// Validate checks that the instance is non-degenerate: every required fact
// category is present and the capacity, bin count and color count are non-zero.
func (c *Catalog) Validate() error {
	var missing []string
	check := func(ok bool, what string) {
		if !ok {
			missing = append(missing, what)
		}
	}
	check(len(c.Vertices) > 0, "vertex")
	check(len(c.Edges) > 0, "edge")
	check(len(c.Sizes) > 0, "size")
	check(len(c.Colors) > 0, "vertex_color")
	check(len(c.Bins) > 0, "vertex_bin")
	check(c.MaxBinSize != 0, "maxbinsize")
	check(c.NumBins != 0, "nrofbins")
	check(c.NumColors != 0, "nrofcolors")
	check(len(c.Areas) > 0, "area")
	check(len(c.BorderElements) > 0, "borderelement")
	check(len(c.Matchings) > 0, "edge_matching_selected")

	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidInstance, "missing or zero: %s", strings.Join(missing, ", "))
	}
	return nil
}
