// Package render draws instances of the coloring and bin packing problem.
//
// The [nodelink] subpackage turns the instance graph into Graphviz DOT and
// renders it to SVG in process. [ToPDF] and [ToPNG] convert any SVG with the
// external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Order: order})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [nodelink]: github.com/gaste/heuristic-ccp/pkg/render/nodelink
package render
