// Package model builds the Entity Model of an instance: vertices with their
// adjacency, color and bin options, the (color, bin) slot grid with its
// assignment records, and the area/border-element matching records.
//
// All vertices live in one slice owned by [Model]. Adjacency, options and
// slots refer to vertices by index, so the cyclic graph never needs shared
// ownership. Name lookups go through a map built once by [Build].
//
// Besides building, Build computes path membership and the initial ordering
// scores used to pick starting vertices (see package ordering).
package model
