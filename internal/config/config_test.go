package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	data := `
format: DOT
output: graph.dot
verbose: true
exclude:
  - "vendor/**"
  - "**/*_test.go"
workers: 4
continueOnError: true
dbPath: .tsgindex/graph
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsgindex.yml"), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dot", cfg.Format)
	assert.Equal(t, "graph.dot", cfg.Output)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"vendor/**", "**/*_test.go"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.ContinueOnError)
	assert.Equal(t, ".tsgindex/graph", cfg.DBPath)
	assert.Equal(t, "languages", cfg.TSGRoot, "unset fields keep defaults")
}

func TestLoad_YAMLExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsgindex.yaml"), []byte("workers: 0\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [oops"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())

	cfg.Path = "."
	cfg.Format = " JSON "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Format)
}

func TestLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	cfg.Verbose = true
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	cfg.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}
