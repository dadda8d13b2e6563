package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gaste/heuristic-ccp/pkg/driver"
)

// traceCommand creates the trace command, which browses a decision trace.
func (c *CLI) traceCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "trace [trace.json | file.cnf]",
		Short: "Browse the decisions of a run",
		Long: `Browse the decisions of a run.

The argument is either a trace written by 'ccp solve --trace' or a named CNF
file, which is solved first with tracing on. The viewer scrolls with the
arrow keys, jumps to the next conflict with n and to the next fallback with f.

--plain prints the trace instead of opening the viewer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := c.loadEvents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if plain {
				printEvents(cmd.OutOrStdout(), events)
				return nil
			}
			_, err = tea.NewProgram(newTraceModel(args[0], events), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the trace without the viewer")

	return cmd
}

// loadEvents reads a JSON trace, or solves a CNF file with tracing on.
func (c *CLI) loadEvents(ctx context.Context, path string) ([]driver.Event, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readTrace(path)
	}
	p, err := loadProblem(path)
	if err != nil {
		return nil, err
	}
	s, err := c.solve(ctx, p, c.config, true)
	if err != nil && !errors.Is(err, driver.ErrIncomplete) {
		return nil, err
	}
	loggerFromContext(ctx).Info("solved", "status", s.result.Status, "events", len(s.result.Trace))
	return s.result.Trace, nil
}

func printEvents(w io.Writer, events []driver.Event) {
	for _, e := range events {
		fmt.Fprintln(w, e.String())
	}
}

// =============================================================================
// traceModel - Interactive trace viewer
// =============================================================================

var traceKindStyles = map[driver.EventKind]lipgloss.Style{
	driver.EventChoice:    lipgloss.NewStyle().Foreground(colorCyan),
	driver.EventDefault:   lipgloss.NewStyle().Foreground(colorGray),
	driver.EventFallback:  lipgloss.NewStyle().Foreground(colorYellow),
	driver.EventConflict:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	driver.EventBacktrack: lipgloss.NewStyle().Foreground(colorRed),
	driver.EventRestart:   lipgloss.NewStyle().Foreground(colorYellow),
	driver.EventUnroll:    lipgloss.NewStyle().Foreground(colorYellow),
	driver.EventModel:     lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
}

// traceModel is the bubbletea model of the trace viewer.
type traceModel struct {
	title  string
	events []driver.Event
	cursor int
	offset int
	height int
	counts map[driver.EventKind]int
}

func newTraceModel(title string, events []driver.Event) traceModel {
	counts := make(map[driver.EventKind]int)
	for _, e := range events {
		counts[e.Kind]++
	}
	return traceModel{title: title, events: events, height: 20, counts: counts}
}

func (m traceModel) Init() tea.Cmd {
	return nil
}

func (m traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.cursor - 1)
		case "down", "j":
			m.moveTo(m.cursor + 1)
		case "pgup":
			m.moveTo(m.cursor - m.height)
		case "pgdown", " ":
			m.moveTo(m.cursor + m.height)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.events) - 1)
		case "n":
			m.moveTo(m.next(driver.EventConflict))
		case "f":
			m.moveTo(m.next(driver.EventFallback))
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-9, 5)
		m.moveTo(m.cursor)
	}
	return m, nil
}

// moveTo puts the cursor on event i, clamped, and scrolls it into view.
func (m *traceModel) moveTo(i int) {
	m.cursor = max(0, min(i, len(m.events)-1))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// next returns the index of the next event of kind after the cursor, or the
// cursor if there is none.
func (m traceModel) next(kind driver.EventKind) int {
	for i := m.cursor + 1; i < len(m.events); i++ {
		if m.events[i].Kind == kind {
			return i
		}
	}
	return m.cursor
}

func (m traceModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Trace " + m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  n next conflict  f next fallback  q quit"))
	b.WriteString("\n\n")

	if len(m.events) == 0 {
		b.WriteString(StyleDim.Render("  no events recorded"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.events))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, eventRow(m.events[i]))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Event", "Level", "Literal", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.offset + row
			base := lipgloss.NewStyle()
			if col == 1 {
				base = traceKindStyles[m.events[idx].Kind]
			}
			if idx == m.cursor {
				return base.Bold(true).Reverse(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %s", m.cursor+1, len(m.events), m.summary())))
	return b.String()
}

func (m traceModel) summary() string {
	var parts []string
	for _, k := range []driver.EventKind{driver.EventChoice, driver.EventDefault, driver.EventFallback, driver.EventConflict} {
		if n := m.counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	return strings.Join(parts, " · ")
}

func eventRow(e driver.Event) []string {
	lit, detail := "", e.Name
	if e.Lit != 0 {
		lit = strconv.Itoa(e.Lit)
	}
	if e.Kind == driver.EventFallback {
		detail = fmt.Sprintf("%d steps", e.Steps)
	}
	return []string{strconv.Itoa(e.Seq), string(e.Kind), strconv.Itoa(e.Level), lit, detail}
}
