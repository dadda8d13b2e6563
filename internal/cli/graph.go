package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaste/heuristic-ccp/pkg/driver"
	"github.com/gaste/heuristic-ccp/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string
	formats  []string
	detailed bool
	solve    bool
	scale    float64
}

// graphCommand creates the graph command, which draws the instance graph.
func (c *CLI) graphCommand() *cobra.Command {
	var formatsStr string
	opts := graphOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "graph [file.cnf]",
		Short: "Draw the instance graph as DOT, SVG, PDF or PNG",
		Long: `Draw the instance graph as DOT, SVG, PDF or PNG.

Vertices are labeled with their position in the visiting order. Boundary
vertices have a double outline and path members a colored one. With --solve
the instance is solved first and every placed vertex is filled by its color
and tagged with its bin.

PDF and PNG output need rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add size, score and path to labels")
	cmd.Flags().BoolVar(&opts.solve, "solve", false, "solve first and show the placement")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag. An empty flag means SVG.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case formatDOT, formatSVG, formatPDF, formatPNG:
		default:
			return fmt.Errorf("unknown format %q (want dot, svg, pdf or png)", f)
		}
	}
	return nil
}

func (c *CLI) runGraph(ctx context.Context, input string, opts graphOpts) error {
	logger := loggerFromContext(ctx)
	p, err := loadProblem(input)
	if err != nil {
		return err
	}
	inst, err := buildInstance(ctx, p)
	if err != nil {
		return err
	}

	dopts := nodelink.Options{Detailed: opts.detailed, Order: inst.order.Order()}
	if opts.solve {
		s, err := c.solve(ctx, p, c.config, false)
		if err != nil && !errors.Is(err, driver.ErrIncomplete) {
			return err
		}
		if s.result.Status != driver.StatusSatisfiable {
			printWarning("%s: no placement to show", s.result.Status)
		} else {
			printInfo("Solved in %d decisions", s.result.Decisions)
			dopts.Placement = placement(inst.model, s.result.Model)
			logger.Debug("placement", "placed", len(dopts.Placement), "vertices", len(inst.model.Vertices))
		}
	}
	dot := nodelink.ToDOT(inst.model, dopts)

	paths := outputPaths(input, opts.output, opts.formats)
	for _, f := range opts.formats {
		data, err := renderFormat(dot, f, opts.scale)
		if err != nil {
			return fmt.Errorf("render %s: %w", f, err)
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}

	printSuccess("Graph written")
	for _, f := range opts.formats {
		printFile(paths[f])
	}
	return nil
}

func renderFormat(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPDF:
		return nodelink.RenderPDF(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot, scale)
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// outputPaths maps each format to its file. A single format with an explicit
// output uses it as is; otherwise the output (or the input without its
// extension) is a base path and the format is the extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" || base == stdinPath {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		if input == stdinPath {
			base = "graph"
		}
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
