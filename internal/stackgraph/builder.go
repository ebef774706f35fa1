package stackgraph

import "github.com/dusk-indust/tsgindex/internal/syntax"

// ModuleSymbol anchors the placeholder definition emitted for files whose
// language has no extraction rules.
const ModuleSymbol = "module"

// Triple is the set of nodes created by one protocol invocation. Push is
// only set for references and imports.
type Triple struct {
	Pop     NodeHandle
	Scope   NodeHandle
	Push    NodeHandle
	HasPush bool
}

// Builder wires facts for one file into the graph.
type Builder struct {
	g    *Graph
	file FileHandle
}

// NewBuilder returns a builder for file. The file handle must come from g.
func NewBuilder(g *Graph, file FileHandle) *Builder {
	g.checkFile("NewBuilder", file)
	return &Builder{g: g, file: file}
}

// Graph returns the graph being built.
func (b *Builder) Graph() *Graph { return b.g }

// File returns the file the builder writes to.
func (b *Builder) File() FileHandle { return b.file }

// Define runs the definition protocol: an exported pop-symbol node for name
// joined to a fresh exported scope node with a precedence 0 edge.
func (b *Builder) Define(name string) Triple {
	if name == "" {
		violate("Define", "empty symbol")
	}
	sym := b.g.Intern(name)
	pop := b.g.AddPopSymbolNode(b.g.NewNodeID(b.file), sym, true)
	scope := b.g.AddScopeNode(b.g.NewNodeID(b.file), true)
	b.g.AddEdge(pop, scope, 0)
	return Triple{Pop: pop, Scope: scope}
}

// Import runs the reference/import protocol: the definition triple for name
// plus an exported push-symbol node reached from the scope.
func (b *Builder) Import(name string) Triple {
	t := b.Define(name)
	t.Push = b.g.AddPushSymbolNode(b.g.NewNodeID(b.file), b.g.Intern(name), true)
	t.HasPush = true
	b.g.AddEdge(t.Scope, t.Push, 0)
	return t
}

// Reference wires an outward reference. It uses the same protocol as Import.
func (b *Builder) Reference(name string) Triple {
	return b.Import(name)
}

// Placeholder emits the single module-level definition used for files with
// no extracted constructs.
func (b *Builder) Placeholder() Triple {
	return b.Define(ModuleSymbol)
}

// Apply runs the matching protocol for each fact in order and returns the
// number of triples created.
func (b *Builder) Apply(facts []syntax.Fact) int {
	for _, f := range facts {
		switch f.Kind {
		case syntax.Definition:
			b.Define(f.Name)
		case syntax.Import:
			b.Import(f.Name)
		case syntax.Reference:
			b.Reference(f.Name)
		}
	}
	return len(facts)
}
