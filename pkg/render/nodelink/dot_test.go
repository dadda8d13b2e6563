package nodelink

import (
	"strings"
	"testing"

	"github.com/gaste/heuristic-ccp/pkg/facts"
	"github.com/gaste/heuristic-ccp/pkg/model"
)

func chain(t *testing.T, extra ...string) *model.Model {
	t.Helper()
	names := []string{
		"vertex(a)", "vertex(b)", "vertex(c)",
		"edge(a,b)", "edge(b,c)",
		"size(a,2)", "size(b,3)", "size(c,4)",
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

func TestToDOT(t *testing.T) {
	m := chain(t, "path1(b)")
	dot := ToDOT(m, Options{})

	for _, want := range []string{
		"digraph G {",
		`"a" -> "b";`,
		`"b" -> "c";`,
		`"b" [label="b", color="#1f78b4", penwidth=3];`,
		`"a" [label="a", peripheries=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTOrderAndPlacement(t *testing.T) {
	m := chain(t)
	dot := ToDOT(m, Options{
		Order:     []int{2, 0, 1},
		Placement: map[int][2]int{0: {1, 2}, 2: {12, 1}},
	})

	for _, want := range []string{
		`label="1. c"`,
		`label="2. a"`,
		`label="3. b"`,
		`fillcolor="#8dd3c7", xlabel="c1 b2"`,
		`fillcolor="#ffffb3", xlabel="c12 b1"`, // wraps around the palette
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestFmtLabelDetailed(t *testing.T) {
	m := chain(t, "path2(c)")
	got := fmtLabel(&m.Vertices[2], 0, Options{Detailed: true})
	want := "c\nsize: 4\nscore: 3\npath: 2"
	if got != want {
		t.Errorf("fmtLabel() = %q, want %q", got, want)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed an svg without viewBox: %s", got)
	}
}
