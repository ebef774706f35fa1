// Package tsggen writes skeleton stack-graph rule files for languages that
// have no curated ruleset.
package tsggen

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/syntax"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("tsggen").
	Funcs(template.FuncMap{"comment": comment}).
	ParseFS(templateFS, "templates/*.tmpl"))

// DefaultRoot is the directory generated rule sets are written under.
const DefaultRoot = "languages"

// Generator writes rule skeletons under Root.
type Generator struct {
	Root  string
	Force bool

	log *slog.Logger
}

// New returns a Generator. A nil logger discards logs.
func New(root string, force bool, logger *slog.Logger) *Generator {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{Root: root, Force: force, log: logger}
}

// Dir returns the directory generated for id.
func Dir(root string, id lang.ID) string {
	return filepath.Join(root, "tree-sitter-stack-graphs-"+string(id))
}

// HasGenerated reports whether a rule set directory exists for id.
func HasGenerated(root string, id lang.ID) bool {
	info, err := os.Stat(Dir(root, id))
	return err == nil && info.IsDir()
}

// Generate writes stack-graphs.tsg, builtins.cfg and builtins.<ext> for l.
// It reports false without writing anything when the language directory
// already exists and Force is off.
func (g *Generator) Generate(l *lang.Language) (bool, error) {
	dir := Dir(g.Root, l.ID)
	if HasGenerated(g.Root, l.ID) && !g.Force {
		g.log.Info("tsggen.skip", "language", l.Name, "dir", dir)
		return false, nil
	}

	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", src, err)
	}

	data := newTemplateData(l)
	files := []struct {
		tmpl string
		name string
	}{
		{"stack-graphs.tsg.tmpl", "stack-graphs.tsg"},
		{"builtins.cfg.tmpl", "builtins.cfg"},
		{"builtins.src.tmpl", "builtins." + data.Ext},
	}
	for _, f := range files {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, f.tmpl, data); err != nil {
			return false, fmt.Errorf("render %s for %s: %w", f.name, l.Name, err)
		}
		path := filepath.Join(src, f.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
	}
	g.log.Info("tsggen.generate", "language", l.Name, "dir", dir)
	return true, nil
}

// GenerateAll runs Generate for every language in ids that has no curated
// ruleset. Failures are logged and do not stop the remaining languages.
func (g *Generator) GenerateAll(ids []lang.ID) []lang.ID {
	var generated []lang.ID
	for _, id := range ids {
		l, ok := lang.Lookup(id)
		if !ok || l.Curated {
			continue
		}
		ok, err := g.Generate(l)
		if err != nil {
			g.log.Warn("tsggen.failed", "language", l.Name, "err", err)
			continue
		}
		if ok {
			generated = append(generated, id)
		}
	}
	return generated
}

type stanza struct {
	Kind      string
	Construct string
	Node      string
	Field     string
	Child     string
	Capture   string
	Push      bool
}

type templateData struct {
	Name        string
	ID          lang.ID
	Ext         string
	LineComment string
	Stanzas     []stanza
}

// genericStanzas cover the usual construct shapes for languages without
// pattern rules.
var genericStanzas = []stanza{
	{Kind: "definition", Construct: "function", Node: "function", Field: "name", Child: "_", Capture: "def"},
	{Kind: "definition", Construct: "class", Node: "class", Field: "name", Child: "_", Capture: "def"},
	{Kind: "definition", Construct: "method", Node: "method", Field: "name", Child: "_", Capture: "def"},
	{Kind: "import", Construct: "import", Node: "import", Field: "path", Child: "_", Capture: "def", Push: true},
	{Kind: "definition", Construct: "variable", Node: "variable", Field: "name", Child: "_", Capture: "def"},
}

func newTemplateData(l *lang.Language) templateData {
	ext := l.PrimaryExtension()
	if ext == "" {
		ext = "txt"
	}
	data := templateData{Name: l.Name, ID: l.ID, Ext: ext, LineComment: l.LineComment}
	for _, r := range l.Rules {
		for _, node := range r.Nodes {
			data.Stanzas = append(data.Stanzas, ruleStanza(r, node))
		}
	}
	if len(data.Stanzas) == 0 {
		data.Stanzas = genericStanzas
	}
	return data
}

// ruleStanza derives a stanza from the first step of a rule's first name path.
func ruleStanza(r syntax.Rule, node string) stanza {
	s := stanza{
		Kind:      r.Kind.String(),
		Construct: r.Construct,
		Node:      node,
		Child:     "_",
		Capture:   "def",
		Push:      r.Kind != syntax.Definition,
	}
	if len(r.Names) > 0 && len(r.Names[0]) > 0 {
		first := r.Names[0][0]
		s.Field = first.Field
		if first.Field == "" && len(first.Kinds) > 0 {
			s.Child = first.Kinds[0]
		}
	}
	return s
}

// comment renders text as a single-line comment using the language's comment
// opener, closing block-style openers.
func comment(open, text string) string {
	switch open {
	case "/*":
		return "/* " + text + " */"
	case "(*":
		return "(* " + text + " *)"
	case "<!--":
		return "<!-- " + text + " -->"
	case "":
		return "// " + text
	default:
		return open + " " + strings.TrimSpace(text)
	}
}
