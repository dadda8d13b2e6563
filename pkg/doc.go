// Package pkg provides the libraries behind ccp, a path-aware branching
// heuristic for colored bin placement.
//
// # Overview
//
// A SAT solver encodes an instance (graph vertices that each receive a color
// and, within that color, a capacity-bounded bin) as named boolean variables.
// The heuristic reads the instance back from the variable names and, each
// time the solver needs a branching literal, walks the graph from a boundary
// vertex along its designated paths, first fixing a vertex's color and then a
// bin with room for it.
//
// The data flow:
//
//	variable names ("vertex_color(a,1)", "bin(1,2,a)", ...)
//	         ↓
//	    [facts] package (grammar parser, fact catalog)
//	         ↓
//	    [model] package (entity model, ordering scores)
//	         ↓
//	    [ordering] package (visiting order)
//	         ↓
//	    [heuristic] package (decision loop, fallback window)
//	         ↕
//	    [driver] package (gini-backed solver harness)
//
// # Quick Start
//
// Solve a named CNF file with the heuristic:
//
//	f, _ := os.Open("instance.cnf")
//	p, _ := driver.Load(f)
//
//	eng := heuristic.New(heuristic.Options{})
//	res, err := driver.New(driver.WithTrace()).Run(ctx, p, eng)
//
// # Main Packages
//
// [facts] - Parses variable names with a participle grammar and files the
// recognized atoms into a catalog. Unknown predicates are ignored.
//
// [model] - The entity model: vertices with their options, bins, areas and
// edge matchings, linked by index.
//
// [ordering] - Ranks starting candidates and computes the visiting order.
//
// [heuristic] - The decision engine. It implements the solver callbacks and
// answers every ChoiceVars call with a choice or a fallback.
//
// [driver] - Runs an engine against gini on DIMACS input and records traces.
//
// [render/nodelink] - Draws the instance graph with Graphviz.
//
// [observability] - Hooks for metrics and tracing of decisions and runs.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [facts]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/facts
// [model]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/model
// [ordering]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/ordering
// [heuristic]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/heuristic
// [driver]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/driver
// [render/nodelink]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/render/nodelink
// [observability]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/observability
// [errors]: https://pkg.go.dev/github.com/gaste/heuristic-ccp/pkg/errors
package pkg
