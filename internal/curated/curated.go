// Package curated holds the hand-written query rulesets for the languages
// with rich binding rules. Each ruleset is a tree-sitter query whose capture
// names encode the fact kind and construct:
//
//	@definition.function  @import.module  @reference.call
//
// Captures whose name starts with "_" are guards: the match only counts when
// the captured text is in the ruleset's allow list for that capture.
package curated

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/tsgindex/internal/lang"
	"github.com/dusk-indust/tsgindex/internal/syntax"
)

//go:embed queries/*.scm
var queryFS embed.FS

// importTrim strips quotes and angle brackets from import names so the push
// symbol matches the imported definition's name.
const importTrim = "\"'`<>"

// Ruleset is the curated extraction for one language.
type Ruleset struct {
	Language lang.ID
	Query    string
	Guards   map[string][]string
}

var rulesets = map[lang.ID]*Ruleset{
	lang.Go:         load(lang.Go, "go", nil),
	lang.Python:     load(lang.Python, "python", nil),
	lang.JavaScript: load(lang.JavaScript, "javascript", nil),
	lang.TypeScript: load(lang.TypeScript, "typescript", nil),
	lang.TSX:        load(lang.TSX, "typescript", nil),
	lang.Java:       load(lang.Java, "java", nil),
	lang.Rust:       load(lang.Rust, "rust", nil),
	lang.Ruby:       load(lang.Ruby, "ruby", rubyGuards),
	lang.CSharp:     load(lang.CSharp, "c-sharp", nil),
}

var rubyGuards = map[string][]string{
	"_require": {"require", "require_relative", "load"},
}

func load(id lang.ID, file string, guards map[string][]string) *Ruleset {
	data, err := queryFS.ReadFile("queries/" + file + ".scm")
	if err != nil {
		panic(fmt.Sprintf("curated: missing query for %s: %v", id, err))
	}
	return &Ruleset{Language: id, Query: string(data), Guards: guards}
}

// For returns the curated ruleset for id.
func For(id lang.ID) (*Ruleset, bool) {
	rs, ok := rulesets[id]
	return rs, ok
}

// Languages returns the languages that have a curated ruleset.
func Languages() []lang.ID {
	out := make([]lang.ID, 0, len(rulesets))
	for id := range rulesets {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// compile returns the ruleset's query compiled against its grammar.
func (r *Ruleset) compile() (*tree_sitter.Query, error) {
	l, ok := lang.Lookup(r.Language)
	if !ok || !l.HasGrammar() {
		return nil, fmt.Errorf("curated %s: no grammar", r.Language)
	}
	q, err := syntax.Compile(l.Grammar(), r.Query)
	if err != nil {
		return nil, fmt.Errorf("curated %s: %w", lang.Name(r.Language), err)
	}
	return q, nil
}

// Extract runs the ruleset over the tree rooted at root and returns facts in
// match order.
func (r *Ruleset) Extract(root *tree_sitter.Node, source []byte) ([]syntax.Fact, error) {
	q, err := r.compile()
	if err != nil {
		return nil, err
	}

	var facts []syntax.Fact
	syntax.Matches(q, root, source, func(caps []syntax.Capture) {
		var pending []syntax.Fact
		for i := range caps {
			c := &caps[i]
			if strings.HasPrefix(c.Name, "_") {
				if !slices.Contains(r.Guards[c.Name], c.Node.Utf8Text(source)) {
					return
				}
				continue
			}
			kindName, construct, ok := strings.Cut(c.Name, ".")
			if !ok {
				continue
			}
			kind, ok := syntax.ParseFactKind(kindName)
			if !ok {
				continue
			}
			trim := ""
			if kind == syntax.Import {
				trim = importTrim
			}
			if f, ok := syntax.NewFact(kind, construct, &c.Node, source, trim); ok {
				pending = append(pending, f)
			}
		}
		facts = append(facts, pending...)
	})
	return facts, nil
}
