package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaste/heuristic-ccp/pkg/driver"
	"github.com/gaste/heuristic-ccp/pkg/facts"
	"github.com/gaste/heuristic-ccp/pkg/model"
	"github.com/gaste/heuristic-ccp/pkg/ordering"
)

// inspectCommand creates the inspect command, which shows the instance the
// heuristic reads from the variable names.
func (c *CLI) inspectCommand() *cobra.Command {
	var reorder int

	cmd := &cobra.Command{
		Use:   "inspect [file.cnf]",
		Short: "Show the instance graph and visiting order of a named CNF",
		Long: `Show the instance graph and visiting order of a named CNF.

The variable names are parsed into instance facts, the entity model is built
and the visiting order computed, exactly as the heuristic does before the
first decision. Nothing is solved.

--reorder n promotes the next n starting candidates, the way the order is
recomputed when a candidate is used up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reorder < 0 {
				return fmt.Errorf("--reorder must not be negative")
			}
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], reorder)
		},
	}

	cmd.Flags().IntVar(&reorder, "reorder", 0, "promote this many further starting candidates")

	return cmd
}

// instance is the entity model of a problem with its visiting order.
type instance struct {
	model *model.Model
	order *ordering.Engine
}

// buildInstance parses the problem's names and builds the model and its
// first order.
func buildInstance(ctx context.Context, p *driver.Problem) (*instance, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cat := facts.NewCatalog()
	for _, n := range p.Names {
		if _, err := cat.Add(n.Var, n.Name); err != nil {
			return nil, fmt.Errorf("variable %d: %w", n.Var, err)
		}
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	m, err := model.Build(cat)
	if err != nil {
		return nil, err
	}
	ord := ordering.New(m)
	if err := ord.CreateOrder(); err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Built model: %d vertices, %d edges", len(m.Vertices), len(m.Edges)))
	return &instance{model: m, order: ord}, nil
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, reorder int) error {
	p, err := loadProblem(input)
	if err != nil {
		return err
	}
	inst, err := buildInstance(ctx, p)
	if err != nil {
		return err
	}
	for i := range reorder {
		if err := inst.order.CreateOrder(); err != nil {
			printWarning("No starting candidate left after %d reorders", i)
			break
		}
	}

	m := inst.model
	fmt.Fprintln(w, StyleTitle.Render("Instance"))
	printKeyValue("Vertices", strconv.Itoa(len(m.Vertices)))
	printKeyValue("Edges", strconv.Itoa(len(m.Edges)))
	printKeyValue("Grid", fmt.Sprintf("%d colors x %d bins", m.NumColors, m.NumBins))
	printKeyValue("Max bin size", strconv.Itoa(m.MaxBinSize))
	printKeyValue("Matchings", fmt.Sprintf("%d (%d areas, %d border elements)", len(m.Matchings), len(m.Areas), len(m.BorderElements)))
	printKeyValue("Candidates left", strconv.Itoa(inst.order.Remaining()))
	printNewline()

	printTable(w, []string{"#", "Vertex", "Size", "Score", "Path", "In", "Out", "Colors", "Bins"}, orderRows(m, inst.order.Order()))
	return nil
}

// orderRows lists the vertices in visiting order.
func orderRows(m *model.Model, order []int) [][]string {
	rows := make([][]string, 0, len(order))
	for pos, i := range order {
		v := &m.Vertices[i]
		path := "-"
		if v.InPath != model.NoPath {
			path = strconv.Itoa(v.InPath)
		}
		name := v.Name
		if v.IsBoundary() {
			name += " *"
		}
		rows = append(rows, []string{
			strconv.Itoa(pos + 1),
			name,
			strconv.Itoa(v.Size),
			strconv.Itoa(v.Score),
			path,
			strconv.Itoa(v.Predecessors),
			strconv.Itoa(v.Successors),
			optionList(len(v.Colors), func(k int) int { return v.Colors[k].Color }),
			optionList(len(v.Bins), func(k int) int { return v.Bins[k].Bin }),
		})
	}
	return rows
}

func optionList(n int, at func(int) int) string {
	if n == 0 {
		return "-"
	}
	parts := make([]string, n)
	for k := range n {
		parts[k] = strconv.Itoa(at(k))
	}
	return strings.Join(parts, ",")
}
