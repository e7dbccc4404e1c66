package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by the color key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultMaxResults is how many values a file run prints when neither the
// config nor the command line says otherwise.
const DefaultMaxResults = 1

// Config represents a funamb.yaml file. Command-line flags override it.
type Config struct {
	// MaxSteps bounds each evaluation and each retry. Zero means unlimited.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// MaxResults is how many values of a program are printed. Zero
	// means all of them.
	MaxResults int `yaml:"max_results,omitempty"`

	// Color is one of auto, always, never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// History is the REPL history file. Relative paths are resolved
	// against the directory of the config file.
	History string `yaml:"history,omitempty"`

	// Store is the SQLite file in which produced values are recorded.
	// Empty disables recording.
	Store string `yaml:"store,omitempty"`

	// Prelude lists source files evaluated into the global environment
	// before the program runs.
	Prelude []string `yaml:"prelude,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{MaxResults: DefaultMaxResults}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a funamb.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funamb.yaml content from bytes.
// The path argument is used for error messages and to resolve relative paths.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Config{MaxResults: DefaultMaxResults}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	cfg.resolvePaths(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig looks for funamb.yaml in dir. It returns an empty path and a
// nil error if there is none.
func FindConfig(dir string) (string, error) {
	candidate := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking %s: %w", candidate, err)
	}
	return "", nil
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate(path string) error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("%s: max_steps must not be negative, got %d", path, c.MaxSteps)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("%s: max_results must not be negative, got %d", path, c.MaxResults)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never, got %q", path, c.Color)
	}
	for i, p := range c.Prelude {
		if p == "" {
			return fmt.Errorf("%s: prelude[%d]: empty path", path, i)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	}
}

func (c *Config) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || p == ":memory:" {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.History = resolve(c.History)
	c.Store = resolve(c.Store)
	for i, p := range c.Prelude {
		c.Prelude[i] = resolve(p)
	}
}
