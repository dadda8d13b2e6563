package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gaste/heuristic-ccp/pkg/heuristic"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[heuristic]
fallback_window = "2s"
fallback_steps = -1

[solver]
timeout = "1m30s"
max_decisions = 500

[log]
level = "debug"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Heuristic.FallbackWindow.Duration != 2*time.Second {
		t.Errorf("FallbackWindow = %v, want 2s", cfg.Heuristic.FallbackWindow)
	}
	if cfg.Heuristic.FallbackSteps != -1 {
		t.Errorf("FallbackSteps = %d, want -1", cfg.Heuristic.FallbackSteps)
	}
	if cfg.Solver.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %v, want 1m30s", cfg.Solver.Timeout)
	}
	if cfg.Solver.MaxDecisions != 500 {
		t.Errorf("MaxDecisions = %d, want 500", cfg.Solver.MaxDecisions)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[solver]\nmax_decisions = 7\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Heuristic.FallbackWindow.Duration != heuristic.DefaultFallbackWindow {
		t.Errorf("FallbackWindow = %v, want default", cfg.Heuristic.FallbackWindow)
	}
	if cfg.Heuristic.FallbackSteps != heuristic.DefaultFallbackSteps {
		t.Errorf("FallbackSteps = %d, want default", cfg.Heuristic.FallbackSteps)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[solver]\nthreads = 4\n", "unknown keys: solver.threads"},
		{"bad duration", "[solver]\ntimeout = \"soon\"\n", "parse config"},
		{"negative duration", "[heuristic]\nfallback_window = \"-1s\"\n", "negative duration"},
		{"syntax", "[solver\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".toml", tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig() with a missing explicit path should fail")
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() without a file error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}

	writeFile(t, dir, filepath.Join(appName, "config.toml"), "[log]\nlevel = \"warn\"\n")
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName, "config.toml"); path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = configPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", appName, "config.toml")) {
		t.Errorf("configPath() = %q, want under ~/.config", path)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Heuristic.FallbackSteps = 42
	cfg.Solver.MaxDecisions = 3
	logger := log.New(io.Discard)

	hopts := cfg.heuristicOptions(logger)
	if hopts.Logger != logger || hopts.FallbackSteps != 42 || hopts.FallbackWindow != heuristic.DefaultFallbackWindow {
		t.Errorf("heuristicOptions() = %+v", hopts)
	}
	if n := len(cfg.driverOptions(logger)); n != 2 {
		t.Errorf("driverOptions() has %d options, want 2", n)
	}
	cfg.Solver.MaxDecisions = 0
	if n := len(cfg.driverOptions(logger)); n != 1 {
		t.Errorf("driverOptions() without a limit has %d options, want 1", n)
	}
}
