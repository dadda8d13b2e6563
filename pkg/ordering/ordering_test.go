package ordering

import (
	"slices"
	"testing"

	"github.com/gaste/heuristic-ccp/pkg/errors"
	"github.com/gaste/heuristic-ccp/pkg/facts"
	"github.com/gaste/heuristic-ccp/pkg/model"
)

// build declares vertices in the given order and connects them with edges.
func build(t *testing.T, vertices []string, edges [][2]string, extra ...string) *model.Model {
	t.Helper()
	c := facts.NewCatalog()
	v := 1
	add := func(name string) {
		if _, err := c.Add(v, name); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
		v++
	}
	for _, n := range vertices {
		add("vertex(" + n + ")")
		add("size(" + n + ",1)")
	}
	for _, e := range edges {
		add("edge(" + e[0] + "," + e[1] + ")")
	}
	for _, x := range extra {
		add(x)
	}
	m, err := model.Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func names(m *model.Model, order []int) []string {
	out := make([]string, len(order))
	for i, v := range order {
		out[i] = m.Vertices[v].Name
	}
	return out
}

func TestCreateOrderChain(t *testing.T) {
	m := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	e := New(m)

	if e.Valid() {
		t.Error("order valid before CreateOrder")
	}
	if err := e.CreateOrder(); err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}

	want := []string{"a", "c", "b"}
	if got := names(m, e.Order()); !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
	if m.Vertices[0].Score != 0 {
		t.Errorf("promoted score = %d, want 0", m.Vertices[0].Score)
	}
	if e.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", e.Remaining())
	}
}

func TestCreateOrderPrefersHigherScore(t *testing.T) {
	// d is on a path and a boundary vertex (score 3), a is only a boundary (2).
	m := build(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
		"path1(d)", "path1(b)")
	e := New(m)
	if err := e.CreateOrder(); err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}

	want := []string{"d", "a", "b", "c"}
	if got := names(m, e.Order()); !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestCreateOrderIsPermutation(t *testing.T) {
	m := build(t, []string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"c", "d"}, {"d", "e"}, {"e", "c"}},
		"path2(d)")
	e := New(m)
	for e.Remaining() > 0 {
		if err := e.CreateOrder(); err != nil {
			t.Fatalf("CreateOrder() error: %v", err)
		}
		got := slices.Clone(e.Order())
		slices.Sort(got)
		if !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
			t.Fatalf("Order() = %v is not a permutation", e.Order())
		}
	}
}

func TestCreateOrderRepeatedPromotesNextCandidate(t *testing.T) {
	m := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	e := New(m)
	if err := e.CreateOrder(); err != nil {
		t.Fatal(err)
	}
	if err := e.CreateOrder(); err != nil {
		t.Fatal(err)
	}
	if first := e.Order()[0]; first != 2 {
		t.Errorf("second CreateOrder() front = %s, want c", m.Vertices[first].Name)
	}
}

func TestCreateOrderExhausted(t *testing.T) {
	// A cycle has no boundary vertices and no paths: no candidates at all.
	m := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	e := New(m)

	err := e.CreateOrder()
	if err != ErrNoCandidates {
		t.Fatalf("CreateOrder() = %v, want ErrNoCandidates", err)
	}
	if !errors.Is(err, errors.ErrCodeOrderExhausted) {
		t.Errorf("error code = %s, want ORDER_EXHAUSTED", errors.GetCode(err))
	}
	if e.Valid() {
		t.Error("order valid after exhaustion")
	}
	if len(e.Order()) != 2 {
		t.Errorf("Order() length = %d, want 2", len(e.Order()))
	}
}
