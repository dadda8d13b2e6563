// Package nodelink renders the instance graph as a node-link diagram.
//
// # Usage
//
// Convert a model to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Order: engine.Order()})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include size, ordering score and path
//   - Order: node labels are prefixed with the visiting position
//   - Placement: placed vertices are filled by color and tagged with their slot
//
// Boundary vertices get a double outline and path members a colored one, so
// the diagram shows at a glance where the decision walk starts and which
// paths it prefers to follow.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
