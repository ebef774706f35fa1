package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/tsgindex/internal/export"
	"github.com/dusk-indust/tsgindex/internal/indexer"
	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/tsggen"
)

const polyglot = "../../testdata/fixtures/polyglot"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Version(t *testing.T) {
	out, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestRun_RequiresPath(t *testing.T) {
	_, _, err := runCLI(t)
	assert.Error(t, err)
}

func TestRun_PathNotFound(t *testing.T) {
	_, _, err := runCLI(t, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, indexer.ErrPathNotFound)
}

func TestRun_IndexJSON(t *testing.T) {
	out, _, err := runCLI(t, polyglot)
	require.NoError(t, err)

	var got export.GraphExport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.Summary.Files)
	assert.Equal(t, export.Description, got.Summary.Description)
	assert.Len(t, got.Files, 6)
}

func TestRun_IndexSingleFile(t *testing.T) {
	out, _, err := runCLI(t, filepath.Join(polyglot, "util", "helpers.py"))
	require.NoError(t, err)

	var got export.GraphExport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, "helpers.py", got.Files[0].Name)
}

func TestRun_DOTToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "graph.dot")
	out, _, err := runCLI(t, polyglot, "--format", "dot", "-o", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "digraph StackGraph {\n"))
	assert.Equal(t, 6, strings.Count(text, "[label="))
}

func TestRun_UnknownFormatFallsBackToJSON(t *testing.T) {
	out, errOut, err := runCLI(t, polyglot, "--format", "xml")
	require.NoError(t, err)
	assert.Contains(t, errOut, "unknown output format")

	var got export.GraphExport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.Summary.Files)
}

func TestRun_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tsgindex.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: dot\nexclude:\n  - web/**\n"), 0o644))

	out, _, err := runCLI(t, polyglot, "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph StackGraph {"))
	assert.Equal(t, 5, strings.Count(out, "[label="))

	// Flags win over the file.
	out, _, err = runCLI(t, polyglot, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func TestRun_GenerateTSG(t *testing.T) {
	root := t.TempDir()
	_, _, err := runCLI(t, polyglot, "--generate-tsg", "--tsg-root", root)
	require.NoError(t, err)

	assert.True(t, tsggen.HasGenerated(root, lang.Bash))
	assert.True(t, tsggen.HasGenerated(root, lang.CSS))
	assert.True(t, tsggen.HasGenerated(root, lang.YAML))
	assert.False(t, tsggen.HasGenerated(root, lang.Go), "curated languages are not generated")
	assert.False(t, tsggen.HasGenerated(root, lang.Python))
}

func TestRun_StrictAbort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte{0xff, 0xfe, 0x00}, 0o644))

	_, _, err := runCLI(t, dir)
	require.ErrorIs(t, err, indexer.ErrNotUTF8)

	out, _, err := runCLI(t, dir, "--continue-on-error")
	require.NoError(t, err)
	var got export.GraphExport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Summary.Files)
}

func TestLanguagesCmd(t *testing.T) {
	out, _, err := runCLI(t, "languages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(lang.All())+1)
	assert.Contains(t, lines[0], "STRATEGY")
	assert.Contains(t, out, "curated")
	assert.Contains(t, out, "pattern")
}

func TestRun_IndexDirectoryNamedLikeSubcommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "languages", "a.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("package a\n\nfunc A() {}\n"), 0o644))
	t.Chdir(dir)

	out, _, err := runCLI(t, "./languages")
	require.NoError(t, err)
	var got export.GraphExport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Summary.Files)

	help, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "./languages")
}

func TestGenerateCmd(t *testing.T) {
	root := t.TempDir()

	out, _, err := runCLI(t, "generate", "lua", "Kotlin", "--tsg-root", root)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "generated"))

	out, _, err = runCLI(t, "generate", "lua", "--tsg-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "exists")

	_, _, err = runCLI(t, "generate", "cobol", "--tsg-root", root)
	assert.ErrorContains(t, err, `unknown language "cobol"`)
}

func TestPersistAndQuery(t *testing.T) {
	db := filepath.Join(t.TempDir(), "graph")
	_, _, err := runCLI(t, polyglot, "--db", db)
	require.NoError(t, err)

	out, _, err := runCLI(t, "query", "slugify", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "def  util/helpers.py")
	assert.Contains(t, out, "ref  web/app.js")

	out, _, err = runCLI(t, "query", "nothing_here", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
}
