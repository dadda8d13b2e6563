package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gaste/heuristic-ccp/pkg/model"
	"github.com/gaste/heuristic-ccp/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds size, score and path membership to node labels.
	Detailed bool

	// Order is the visiting order as vertex indices. When set, every label
	// starts with the vertex's position in it.
	Order []int

	// Placement maps vertex indices to their (color, bin) slot, both 1-based.
	// Placed vertices are filled with their color's palette entry.
	Placement map[int][2]int
}

// palette fills placed vertices by color; colors beyond its length wrap.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// pathColor outlines path members.
var pathColor = map[int]string{
	model.Path1: "#1f78b4",
	model.Path2: "#e31a1c",
}

// ToDOT converts the instance graph of m to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Boundary vertices, the starting-vertex candidates of the ordering, are drawn
// with a double outline. Path members are outlined in their path's color.
func ToDOT(m *model.Model, opts Options) string {
	pos := make(map[int]int, len(opts.Order))
	for i, v := range opts.Order {
		pos[v] = i + 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range m.Vertices {
		v := &m.Vertices[i]
		label := fmtLabel(v, pos[i], opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", v.Name, strings.Join(fmtAttrs(v, i, label, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", m.Vertices[e.From].Name, m.Vertices[e.To].Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v *model.Vertex, pos int, opts Options) string {
	label := v.Name
	if pos > 0 {
		label = fmt.Sprintf("%d. %s", pos, v.Name)
	}
	if !opts.Detailed {
		return label
	}

	parts := []string{fmt.Sprintf("size: %d", v.Size), fmt.Sprintf("score: %d", v.Score)}
	if v.InPath != model.NoPath {
		parts = append(parts, fmt.Sprintf("path: %d", v.InPath))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(v *model.Vertex, i int, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if slot, ok := opts.Placement[i]; ok && slot[0] > 0 {
		attrs = append(attrs,
			fmt.Sprintf("fillcolor=%q", palette[(slot[0]-1)%len(palette)]),
			fmt.Sprintf("xlabel=%q", fmt.Sprintf("c%d b%d", slot[0], slot[1])))
	}
	if c, ok := pathColor[v.InPath]; ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", c), "penwidth=3")
	}
	if v.IsBoundary() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
