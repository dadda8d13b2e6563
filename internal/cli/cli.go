// Package cli implements the ccp command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gaste/heuristic-ccp/pkg/buildinfo"
	"github.com/gaste/heuristic-ccp/pkg/driver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ccp"

	// stdinPath reads the problem from standard input.
	stdinPath = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ccp drives a SAT solver with a path-aware color/bin heuristic",
		Long: `ccp runs the path-aware decision heuristic for colored bin placement against
named CNF instances. Variables are named with "c <var> <name>" comments, and
the heuristic reads the instance graph from those names.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			if cfg.Log.Level != "" {
				level, err := log.ParseLevel(cfg.Log.Level)
				if err != nil {
					return fmt.Errorf("config: log level: %w", err)
				}
				c.SetLogLevel(level)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/ccp/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Input
// =============================================================================

// loadProblem reads a named CNF file, or standard input for "-".
func loadProblem(path string) (*driver.Problem, error) {
	if path == stdinPath {
		p, err := driver.Load(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("load stdin: %w", err)
		}
		return p, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := driver.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}
