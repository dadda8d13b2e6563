package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/gaste/heuristic-ccp/pkg/driver"
	"github.com/gaste/heuristic-ccp/pkg/heuristic"
)

// Config is the optional TOML configuration file.
//
//	[heuristic]
//	fallback_window = "10s"
//	fallback_steps = 1000
//
//	[solver]
//	timeout = "1m"
//	max_decisions = 0
//
//	[log]
//	level = "info"
//
// Command-line flags override file values.
type Config struct {
	Heuristic HeuristicConfig `toml:"heuristic"`
	Solver    SolverConfig    `toml:"solver"`
	Log       LogConfig       `toml:"log"`
}

// HeuristicConfig configures the decision engine.
type HeuristicConfig struct {
	FallbackWindow Duration `toml:"fallback_window"`
	FallbackSteps  int      `toml:"fallback_steps"`
}

// SolverConfig configures the solver harness.
type SolverConfig struct {
	Timeout      Duration `toml:"timeout"` // zero means no timeout
	MaxDecisions int      `toml:"max_decisions"`
}

// LogConfig sets the default log level. --verbose still wins.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Heuristic: HeuristicConfig{
			FallbackWindow: Duration{heuristic.DefaultFallbackWindow},
			FallbackSteps:  heuristic.DefaultFallbackSteps,
		},
	}
}

// LoadConfig reads the config file at path on top of the defaults. An empty
// path means the default location, which may be missing; an explicit path
// must exist. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// configPath returns the default config file using the XDG standard
// (~/.config/ccp/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// heuristicOptions converts the [heuristic] section into engine options.
func (c Config) heuristicOptions(l *log.Logger) heuristic.Options {
	return heuristic.Options{
		Logger:         l,
		FallbackWindow: c.Heuristic.FallbackWindow.Duration,
		FallbackSteps:  c.Heuristic.FallbackSteps,
	}
}

// driverOptions converts the [solver] section into driver options.
func (c Config) driverOptions(l *log.Logger) []driver.Option {
	opts := []driver.Option{driver.WithLogger(l)}
	if c.Solver.MaxDecisions > 0 {
		opts = append(opts, driver.WithMaxDecisions(c.Solver.MaxDecisions))
	}
	return opts
}
