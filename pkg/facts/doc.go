// Package facts turns solver variable names into typed instance facts.
//
// The solver announces every variable together with the name of the atom it
// encodes, for example:
//
//	vertex(v1)
//	edge(v1,v2)
//	vertex_color(v1,2)
//	bin(2,1,v1)
//
// [Parse] reads such a name with a small grammar, and [Catalog] files the
// recognized facts by kind. Names of other atoms are ignored, so the catalog
// can be fed every variable of the encoding without filtering.
//
// The catalog resolves nothing: names are matched to vertices later, when the
// Entity Model is built (see package model).
package facts
