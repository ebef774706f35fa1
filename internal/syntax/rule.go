package syntax

import (
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Step moves from a node to one of its children.
//
// With Field set, the step follows the named field; Kinds, when non-empty,
// then restricts the kind of the child found. Without Field, the step selects
// the first named child whose kind is in Kinds, or the last one when Last is
// set. A Span step as the last step
// of a path covers the first contiguous run of children carrying Field, so a
// field repeated over several tokens names the whole run.
type Step struct {
	Field string
	Kinds []string
	Last  bool
	Span  bool
}

// Path is a sequence of steps from a construct node to its name node.
// An empty path names the construct node itself.
type Path []Step

// Field is shorthand for a single field step.
func Field(name string, kinds ...string) Step {
	return Step{Field: name, Kinds: kinds}
}

// LastChild is shorthand for a last-named-child-of-kind step.
func LastChild(kinds ...string) Step {
	return Step{Kinds: kinds, Last: true}
}

// FieldSpan is shorthand for a span step over a repeated field, such as the
// segments of a dotted import path.
func FieldSpan(name string) Step {
	return Step{Field: name, Span: true}
}

// Child is shorthand for a first-named-child-of-kind step.
func Child(kinds ...string) Step {
	return Step{Kinds: kinds}
}

// Guard restricts a rule to nodes whose text at Path is one of Equals.
type Guard struct {
	Path   Path
	Equals []string
}

// Rule maps construct node kinds to a fact. Names lists alternative paths to
// the name node; the first that resolves wins. Trim is a cutset removed from
// both ends of the name text (quotes, angle brackets).
type Rule struct {
	Kind      FactKind
	Construct string
	Nodes     []string
	Names     []Path
	When      *Guard
	Trim      string
}

// Resolve follows p from n. It returns nil when any step fails.
func (p Path) Resolve(n *tree_sitter.Node) *tree_sitter.Node {
	first, _ := p.resolveSpan(n)
	return first
}

// resolveSpan follows p from n and returns the first and last node the path
// covers. They are the same node unless the final step is a span.
func (p Path) resolveSpan(n *tree_sitter.Node) (first, last *tree_sitter.Node) {
	cur := n
	for i, st := range p {
		if cur == nil {
			return nil, nil
		}
		if st.Span && i == len(p)-1 {
			return fieldRun(cur, st.Field)
		}
		cur = st.apply(cur)
	}
	return cur, cur
}

func fieldRun(n *tree_sitter.Node, field string) (first, last *tree_sitter.Node) {
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.FieldNameForChild(uint32(i)) != field {
			if first != nil {
				break
			}
			continue
		}
		c := n.Child(i)
		if c == nil {
			continue
		}
		if first == nil {
			first = c
		}
		last = c
	}
	return first, last
}

func (s Step) apply(n *tree_sitter.Node) *tree_sitter.Node {
	if s.Field != "" {
		c := n.ChildByFieldName(s.Field)
		if c == nil {
			return nil
		}
		if len(s.Kinds) > 0 && !slices.Contains(s.Kinds, c.Kind()) {
			return nil
		}
		return c
	}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		j := i
		if s.Last {
			j = count - 1 - i
		}
		c := n.NamedChild(j)
		if c != nil && slices.Contains(s.Kinds, c.Kind()) {
			return c
		}
	}
	return nil
}

// index groups rules by the node kinds they apply to.
type index map[string][]*Rule

func newIndex(rules []Rule) index {
	idx := make(index)
	for i := range rules {
		r := &rules[i]
		for _, kind := range r.Nodes {
			idx[kind] = append(idx[kind], r)
		}
	}
	return idx
}

// Extract walks the tree rooted at root in document order and returns one
// fact per construct that matches a rule and resolves to a non-empty name.
// Constructs that match no rule contribute nothing.
func Extract(root *tree_sitter.Node, source []byte, rules []Rule) []Fact {
	if root == nil || len(rules) == 0 {
		return nil
	}
	idx := newIndex(rules)

	var facts []Fact
	cursor := root.Walk()
	defer cursor.Close()
	walk(cursor, source, idx, &facts)
	return facts
}

func walk(cursor *tree_sitter.TreeCursor, source []byte, idx index, facts *[]Fact) {
	node := cursor.Node()
	if node.IsNamed() {
		for _, r := range idx[node.Kind()] {
			if f, ok := r.match(node, source); ok {
				*facts = append(*facts, f)
			}
		}
	}

	if cursor.GotoFirstChild() {
		walk(cursor, source, idx, facts)
		for cursor.GotoNextSibling() {
			walk(cursor, source, idx, facts)
		}
		cursor.GotoParent()
	}
}

func (r *Rule) match(n *tree_sitter.Node, source []byte) (Fact, bool) {
	if r.When != nil {
		g := r.When.Path.Resolve(n)
		if g == nil || !slices.Contains(r.When.Equals, g.Utf8Text(source)) {
			return Fact{}, false
		}
	}
	for _, p := range r.Names {
		first, last := p.resolveSpan(n)
		if first == nil {
			continue
		}
		if f, ok := newSpanFact(r.Kind, r.Construct, first, last, source, r.Trim); ok {
			return f, true
		}
	}
	return Fact{}, false
}

// NewFact builds a fact from the text of nameNode. It reports false when the
// trimmed text is empty.
func NewFact(kind FactKind, construct string, nameNode *tree_sitter.Node, source []byte, trim string) (Fact, bool) {
	return newSpanFact(kind, construct, nameNode, nameNode, source, trim)
}

// newSpanFact builds a fact from the source text between the start of first
// and the end of last.
func newSpanFact(kind FactKind, construct string, first, last *tree_sitter.Node, source []byte, trim string) (Fact, bool) {
	start, end := first.StartByte(), last.EndByte()
	if end < start || end > uint(len(source)) {
		return Fact{}, false
	}
	name := strings.TrimSpace(string(source[start:end]))
	if trim != "" {
		name = strings.Trim(name, trim)
	}
	if name == "" {
		return Fact{}, false
	}
	pos := first.StartPosition()
	return Fact{
		Kind:      kind,
		Construct: construct,
		Name:      name,
		StartByte: start,
		EndByte:   end,
		Line:      pos.Row + 1,
		Column:    pos.Column,
	}, true
}
