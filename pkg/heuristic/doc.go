// Package heuristic decides which variable an external clause-learning solver
// branches on next, for instances that color the vertices of a graph and pack
// them into capacity-limited bins.
//
// An [Engine] is driven entirely by solver callbacks. It learns the meaning of
// each variable from its name (see package facts), builds the Entity Model and
// a visiting order once parsing is finished, and then answers every
// [Engine.ChoiceVars] call with either a variable to branch on or a signal to
// use the solver's own heuristic for a while.
//
// Decisions walk the graph one color stage at a time. Starting from the next
// unvisited vertex in the order, the engine first picks the vertex's color for
// the active stage, then the first bin of that color with enough room left,
// and then continues with the vertex's neighbors, preferring to stay on the
// path it is walking. When a stage runs dry, or nothing is left to propose, the
// engine emits the fallback signal and stays out of the way until the fallback
// window has passed.
//
// A conflict reported by the solver restarts the walk from the beginning of
// the order. The Entity Model and the order are kept.
package heuristic
