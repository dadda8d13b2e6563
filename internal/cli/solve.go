package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaste/heuristic-ccp/pkg/driver"
	"github.com/gaste/heuristic-ccp/pkg/heuristic"
	"github.com/gaste/heuristic-ccp/pkg/model"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	timeout        time.Duration
	maxDecisions   int
	fallbackWindow time.Duration
	fallbackSteps  int
	trace          string // trace output file
	showModel      bool
}

// solveCommand creates the solve command, which runs the heuristic against gini.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file.cnf]",
		Short: "Solve a named CNF instance with the heuristic",
		Long: `Solve a named CNF instance with the heuristic.

The instance is read from a DIMACS CNF file (or "-" for stdin) whose variables
are named by "c <var> <name>" comments. The heuristic picks the branching
literals, and gini propagates them and confirms the final model.

Use --trace to record every decision for 'ccp trace'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			applySolveFlags(cmd, &cfg, opts)
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop after this long (0: no limit)")
	cmd.Flags().IntVar(&opts.maxDecisions, "max-decisions", 0, "stop after this many decisions (0: no limit)")
	cmd.Flags().DurationVar(&opts.fallbackWindow, "fallback-window", heuristic.DefaultFallbackWindow, "how long the solver decides alone after a fallback")
	cmd.Flags().IntVar(&opts.fallbackSteps, "fallback-steps", heuristic.DefaultFallbackSteps, "step count sent with a fallback (negative: always)")
	cmd.Flags().StringVar(&opts.trace, "trace", "", "write the decision trace as JSON to this file")
	cmd.Flags().BoolVar(&opts.showModel, "model", false, "print the model as a DIMACS value line")

	return cmd
}

// applySolveFlags overrides config values with the flags the user set.
func applySolveFlags(cmd *cobra.Command, cfg *Config, opts solveOpts) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Solver.Timeout = Duration{opts.timeout}
	}
	if flags.Changed("max-decisions") {
		cfg.Solver.MaxDecisions = opts.maxDecisions
	}
	if flags.Changed("fallback-window") {
		cfg.Heuristic.FallbackWindow = Duration{opts.fallbackWindow}
	}
	if flags.Changed("fallback-steps") {
		cfg.Heuristic.FallbackSteps = opts.fallbackSteps
	}
}

// solved is the outcome of one heuristic run.
type solved struct {
	result *driver.Result
	engine *heuristic.Engine
}

// solve runs p with a fresh engine. The result is returned even when the run
// stopped early.
func (c *CLI) solve(ctx context.Context, p *driver.Problem, cfg Config, trace bool) (*solved, error) {
	logger := loggerFromContext(ctx)

	if cfg.Solver.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Solver.Timeout.Duration)
		defer cancel()
	}

	opts := cfg.driverOptions(logger)
	if trace {
		opts = append(opts, driver.WithTrace())
	}
	eng := heuristic.New(cfg.heuristicOptions(logger))

	res, err := driver.New(opts...).Run(ctx, p, eng)
	return &solved{result: res, engine: eng}, err
}

// runSolve solves the instance and prints the outcome.
func (c *CLI) runSolve(ctx context.Context, w io.Writer, input string, cfg Config, opts solveOpts) error {
	p, err := loadProblem(input)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("loaded problem", "vars", p.NumVars, "clauses", p.NumClauses, "names", len(p.Names))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s...", input))
	spinner.Start()

	s, err := c.solve(ctx, p, cfg, opts.trace != "")
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	switch {
	case errors.Is(err, driver.ErrIncomplete):
		spinner.Stop()
		printWarning("Stopped before an answer was found")
	case err != nil:
		spinner.StopWithError("Solve failed")
		return err
	default:
		spinner.Stop()
		printStatus(s.result.Status)
	}

	printSummary(s)
	if m := s.engine.Model(); m != nil && s.result.Status == driver.StatusSatisfiable {
		printNewline()
		printTable(w, []string{"Vertex", "Color", "Bin", "Size"}, placementRows(m, placement(m, s.result.Model)))
	} else if herr := s.engine.Err(); herr != nil {
		printDetail("heuristic disabled: %v", herr)
	}

	if opts.showModel && len(s.result.Model) > 0 {
		fmt.Fprintln(w, formatModel(s.result.Model))
	}

	if opts.trace != "" {
		if err := writeTrace(opts.trace, s.result.Trace); err != nil {
			return err
		}
		printFile(opts.trace)
		printNewline()
		printNextStep("Browse", appName+" trace "+opts.trace)
	}
	return nil
}

func printStatus(st driver.Status) {
	switch st {
	case driver.StatusSatisfiable:
		printSuccess("%s", StyleSuccess.Render(string(st)))
	case driver.StatusUnsatisfiable, driver.StatusIncoherent:
		printError("%s", StyleError.Render(string(st)))
	default:
		printWarning("%s", st)
	}
}

func printSummary(s *solved) {
	res := s.result
	stats := s.engine.Stats()
	printKeyValue("Run", res.RunID)
	printKeyValue("Decisions", strconv.Itoa(res.Decisions))
	printKeyValue("Heuristic choices", fmt.Sprintf("%d (%d colors, %d bins)", res.HeuristicChoices, stats.ColorChoices, stats.BinChoices))
	printKeyValue("Default choices", strconv.Itoa(res.DefaultChoices))
	printKeyValue("Fallbacks", strconv.Itoa(stats.Fallbacks))
	printKeyValue("Conflicts", strconv.Itoa(res.Conflicts))
	printKeyValue("Duration", res.Duration.Round(time.Microsecond).String())
}

// placement returns the (color, bin) slot of every vertex whose bin
// assignment is true in the model.
func placement(m *model.Model, lits []int) map[int][2]int {
	truth := make(map[int]bool, len(lits))
	for _, l := range lits {
		if l > 0 {
			truth[l] = true
		}
	}
	out := make(map[int][2]int)
	for _, a := range m.Assignments {
		if a.Vertex >= 0 && truth[a.Var] {
			out[a.Vertex] = [2]int{a.Color, a.Bin}
		}
	}
	return out
}

func placementRows(m *model.Model, placed map[int][2]int) [][]string {
	rows := make([][]string, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		color, bin := "-", "-"
		if slot, ok := placed[i]; ok {
			color, bin = strconv.Itoa(slot[0]), strconv.Itoa(slot[1])
		}
		rows = append(rows, []string{v.Name, color, bin, strconv.Itoa(v.Size)})
	}
	return rows
}

// formatModel renders literals as a DIMACS "v" line.
func formatModel(lits []int) string {
	var b strings.Builder
	b.WriteString("v")
	for _, l := range lits {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(l))
	}
	b.WriteString(" 0")
	return b.String()
}

func writeTrace(path string, events []driver.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace %s: %w", path, err)
	}
	return nil
}

func readTrace(path string) ([]driver.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []driver.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode trace %s: %w", path, err)
	}
	return events, nil
}
