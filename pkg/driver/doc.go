// Package driver runs a decision heuristic against a real SAT solver.
//
// The driver loads a named DIMACS CNF file into gini
// ([github.com/go-air/gini]), reports every variable name to the heuristic
// and then searches by repeatedly asking it for the next branching literal.
// Unit propagation happens in gini's assumption scopes; backtracking and
// restarts are chronological and driven here.
//
// # Input
//
// Names are attached with comment lines before the header:
//
//	c 1 vertex(a)
//	c 2 vertex_color(a,1)
//	p cnf 2 1
//	-2 1 0
//
// Other comments are ignored.
//
// # Decisions
//
// Every directive of the decision protocol is honored: choices are assumed
// in a new scope, restarts and unrolls pop scopes, an abort ends the run as
// INCOHERENT, and a fallback hands the next n decisions to the default
// heuristic, which negates the lowest unassigned variable. Once every
// variable is assigned the model is confirmed with a full gini solve.
//
// # Tracing
//
// [WithTrace] records each decision, conflict and fallback as an [Event] so
// runs can be inspected afterwards.
package driver
