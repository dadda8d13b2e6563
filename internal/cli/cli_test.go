package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const abcPath = "testdata/abc.cnf"

// execute runs the root command with an empty config file and returns what
// the command wrote to its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "config.toml", "")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
	for _, name := range []string{"solve", "inspect", "graph", "trace", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRootCommandConfigLogLevel(t *testing.T) {
	dir := t.TempDir()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", writeFile(t, dir, "c.toml", "[log]\nlevel = \"error\"\n"), "inspect", abcPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := c.Logger.GetLevel(); got != log.ErrorLevel {
		t.Errorf("logger level = %v, want error", got)
	}

	root = New(io.Discard, log.InfoLevel).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", writeFile(t, dir, "bad.toml", "[log]\nlevel = \"loud\"\n"), "inspect", abcPath})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("Execute() with an unknown log level should fail")
	}
}

func TestLoadProblem(t *testing.T) {
	p, err := loadProblem(abcPath)
	if err != nil {
		t.Fatalf("loadProblem() error: %v", err)
	}
	if p.NumVars != 23 || len(p.Names) != 23 {
		t.Errorf("loadProblem() = %d vars, %d names, want 23 and 23", p.NumVars, len(p.Names))
	}

	if _, err := loadProblem(filepath.Join(t.TempDir(), "missing.cnf")); err == nil {
		t.Error("loadProblem() of a missing file should fail")
	}

	bad := writeFile(t, t.TempDir(), "bad.cnf", "1 2 0\n")
	if _, err := loadProblem(bad); err == nil || !strings.Contains(err.Error(), "bad.cnf") {
		t.Errorf("loadProblem() error = %v, want one naming the file", err)
	}
}
