package heuristic_test

import (
	"fmt"

	"github.com/gaste/heuristic-ccp/pkg/heuristic"
)

func ExampleEngine() {
	names := []string{
		"vertex(a)", "vertex(b)", "edge(a,b)",
		"size(a,1)", "size(b,1)",
		"vertex_color(a,1)", "vertex_color(b,1)",
		"vertex_bin(a,1)", "vertex_bin(b,1)",
		"bin(1,1,a)", "bin(1,1,b)",
		"area(x)", "borderelement(e)", "edge_matching_selected(x,e)",
		"maxbinsize(2)", "nrofbins(1)", "nrofcolors(1)",
	}

	e := heuristic.New(heuristic.Options{})
	for i, n := range names {
		_ = e.AddVarName(i+1, n)
	}
	if err := e.OnFinishedParsing(); err != nil {
		fmt.Println(err)
		return
	}
	e.OnStartingSolver(len(names), 0)

	d := e.ChoiceVars()
	fmt.Println(d.Ints(), e.Name(d.Var))
	e.OnLiteralsTrue(d.Var)

	d = e.ChoiceVars()
	fmt.Println(d.Ints(), e.Name(d.Var))
	// Output:
	// [6] vertex_color(a,1)
	// [8] vertex_bin(a,1)
}

func ExampleParseDecision() {
	d, err := heuristic.ParseDecision([]int{1000, 2, 0})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d)
	// Output: fallback 1000
}
