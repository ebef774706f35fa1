// Package config holds the run configuration for an indexing run, loaded
// from tsgindex.yml and overridden from the command line.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked up by Load, in order.
var FileNames = []string{"tsgindex.yml", "tsgindex.yaml"}

// Config is the run configuration.
type Config struct {
	// Path is the file or directory to index.
	Path string `yaml:"path,omitempty"`

	// Format is the output format: json or dot.
	Format string `yaml:"format,omitempty"`

	// Output is the destination file; empty writes to stdout.
	Output  string `yaml:"output,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`

	GenerateTSG    bool   `yaml:"generateTsg,omitempty"`
	ForceOverwrite bool   `yaml:"forceOverwrite,omitempty"`
	TSGRoot        string `yaml:"tsgRoot,omitempty"`

	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the indexed directory.
	Exclude         []string `yaml:"exclude,omitempty"`
	Workers         int      `yaml:"workers,omitempty"`
	ContinueOnError bool     `yaml:"continueOnError,omitempty"`

	// DBPath, when set, persists the finished graph to a Kuzu database.
	DBPath   string `yaml:"dbPath,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format:  "json",
		TSGRoot: "languages",
		Workers: 1,
	}
}

// Load reads tsgindex.yml or tsgindex.yaml from dir over the defaults. A
// missing file is not an error.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return Default(), nil
}

// LoadFile reads the config at path over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TSGRoot == "" {
		c.TSGRoot = "languages"
	}
}

// Validate checks the fields a run cannot start without.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	c.normalize()
	return nil
}

// Level returns the slog level for the run: LogLevel when set, otherwise
// Info when Verbose and Warn by default.
func (c *Config) Level() slog.Level {
	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err == nil {
			return lvl
		}
	}
	if c.Verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}
