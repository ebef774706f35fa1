// Package stackgraph holds the binding graph built during an indexing run:
// interned symbols, per-file node namespaces, scope and symbol nodes, and the
// precedence-weighted edges between them.
//
// A Graph has a single writer. It performs no locking; callers that build in
// parallel must serialize mutation.
package stackgraph

import (
	"fmt"
	"strings"
)

// SymbolID identifies an interned symbol. Zero means "no symbol".
type SymbolID uint32

// FileHandle identifies a file in the graph. Zero is never a valid handle.
type FileHandle uint32

// NodeHandle indexes a node in the graph's arena. The root is handle 0.
type NodeHandle uint32

// RootHandle is the handle of the graph-wide root node.
const RootHandle NodeHandle = 0

// NodeID is the global key of a node: its file plus a file-local counter.
// The root node has a zero File.
type NodeID struct {
	File  FileHandle
	Local uint32
}

func (id NodeID) String() string {
	return fmt.Sprintf("%d:%d", id.File, id.Local)
}

// NodeKind classifies nodes.
type NodeKind uint8

const (
	RootNode NodeKind = iota
	ScopeNode
	PopSymbolNode
	PushSymbolNode
)

func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "root"
	case ScopeNode:
		return "scope"
	case PopSymbolNode:
		return "pop_symbol"
	case PushSymbolNode:
		return "push_symbol"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is an immutable graph node. Symbol is zero for root and scope nodes.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Symbol   SymbolID
	Exported bool
}

// Edge is a directed, precedence-weighted connection between two nodes.
type Edge struct {
	Source     NodeHandle
	Sink       NodeHandle
	Precedence int32
}

// File is a file known to the graph.
type File struct {
	Name     string
	Language string
	Digest   uint64 // xxh3 of the file contents, zero when unknown

	next uint32 // next file-local node id
}

// ContractError reports misuse of the graph API: an invalid handle, a
// duplicate node id or an empty symbol. It is raised with panic.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return "stackgraph: " + e.Op + ": " + e.Detail
}

func violate(op, format string, args ...any) {
	panic(&ContractError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// Graph is the binding graph for one indexing run.
type Graph struct {
	symbols   []string // index 0 unused
	symbolIDs map[string]SymbolID

	files   []File // index 0 unused
	fileIDs map[string]FileHandle

	nodes   []Node
	nodeIDs map[NodeID]NodeHandle
	byFile  map[FileHandle][]NodeHandle

	edges []Edge
}

// New returns an empty graph containing only the root node.
func New() *Graph {
	g := &Graph{
		symbols:   []string{""},
		symbolIDs: make(map[string]SymbolID),
		files:     []File{{}},
		fileIDs:   make(map[string]FileHandle),
		nodeIDs:   make(map[NodeID]NodeHandle),
		byFile:    make(map[FileHandle][]NodeHandle),
	}
	root := Node{Kind: RootNode, Exported: true}
	g.nodes = append(g.nodes, root)
	g.nodeIDs[root.ID] = RootHandle
	return g
}

// ---------- Symbols ----------

// Intern returns the symbol for text, adding it on first use. The graph keeps
// its own copy of text. Empty text maps to the reserved id 0 and is never
// added.
func (g *Graph) Intern(text string) SymbolID {
	if text == "" {
		return 0
	}
	if id, ok := g.symbolIDs[text]; ok {
		return id
	}
	owned := strings.Clone(text)
	id := SymbolID(len(g.symbols))
	g.symbols = append(g.symbols, owned)
	g.symbolIDs[owned] = id
	return id
}

// Symbol returns the text of id, or "" for an unknown id.
func (g *Graph) Symbol(id SymbolID) string {
	if id == 0 || int(id) >= len(g.symbols) {
		return ""
	}
	return g.symbols[id]
}

// LookupSymbol returns the id of text if it has been interned.
func (g *Graph) LookupSymbol(text string) (SymbolID, bool) {
	id, ok := g.symbolIDs[text]
	return id, ok
}

// SymbolCount returns the number of interned symbols.
func (g *Graph) SymbolCount() int { return len(g.symbols) - 1 }

// ---------- Files ----------

// GetOrCreateFile returns the handle for name, creating the file if needed.
func (g *Graph) GetOrCreateFile(name string) FileHandle {
	if h, ok := g.fileIDs[name]; ok {
		return h
	}
	name = strings.Clone(name)
	h := FileHandle(len(g.files))
	g.files = append(g.files, File{Name: name})
	g.fileIDs[name] = h
	return h
}

// Annotate records the language and content digest of a file.
func (g *Graph) Annotate(h FileHandle, language string, digest uint64) {
	g.checkFile("Annotate", h)
	g.files[h].Language = language
	g.files[h].Digest = digest
}

// File returns a copy of the file record for h.
func (g *Graph) File(h FileHandle) (File, bool) {
	if !g.validFile(h) {
		return File{}, false
	}
	return g.files[h], true
}

// Files returns all file handles in creation order.
func (g *Graph) Files() []FileHandle {
	out := make([]FileHandle, 0, len(g.files)-1)
	for h := 1; h < len(g.files); h++ {
		out = append(out, FileHandle(h))
	}
	return out
}

// FileCount returns the number of files in the graph.
func (g *Graph) FileCount() int { return len(g.files) - 1 }

func (g *Graph) validFile(h FileHandle) bool {
	return h != 0 && int(h) < len(g.files)
}

func (g *Graph) checkFile(op string, h FileHandle) {
	if !g.validFile(h) {
		violate(op, "invalid file handle %d", h)
	}
}

// ---------- Nodes ----------

// NewNodeID mints the next file-local node id for file.
func (g *Graph) NewNodeID(file FileHandle) NodeID {
	g.checkFile("NewNodeID", file)
	f := &g.files[file]
	id := NodeID{File: file, Local: f.next}
	f.next++
	return id
}

// AddScopeNode creates a scope node at id.
func (g *Graph) AddScopeNode(id NodeID, exported bool) NodeHandle {
	return g.addNode("AddScopeNode", Node{ID: id, Kind: ScopeNode, Exported: exported})
}

// AddPopSymbolNode creates a pop-symbol node at id carrying sym.
func (g *Graph) AddPopSymbolNode(id NodeID, sym SymbolID, exported bool) NodeHandle {
	g.checkSymbol("AddPopSymbolNode", sym)
	return g.addNode("AddPopSymbolNode", Node{ID: id, Kind: PopSymbolNode, Symbol: sym, Exported: exported})
}

// AddPushSymbolNode creates a push-symbol node at id carrying sym.
func (g *Graph) AddPushSymbolNode(id NodeID, sym SymbolID, exported bool) NodeHandle {
	g.checkSymbol("AddPushSymbolNode", sym)
	return g.addNode("AddPushSymbolNode", Node{ID: id, Kind: PushSymbolNode, Symbol: sym, Exported: exported})
}

func (g *Graph) checkSymbol(op string, sym SymbolID) {
	if g.Symbol(sym) == "" {
		violate(op, "empty or unknown symbol %d", sym)
	}
}

func (g *Graph) addNode(op string, n Node) NodeHandle {
	g.checkFile(op, n.ID.File)
	if n.ID.Local >= g.files[n.ID.File].next {
		violate(op, "node id %s was not minted", n.ID)
	}
	if _, dup := g.nodeIDs[n.ID]; dup {
		violate(op, "duplicate node id %s", n.ID)
	}
	h := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.nodeIDs[n.ID] = h
	g.byFile[n.ID.File] = append(g.byFile[n.ID.File], h)
	return h
}

// Node returns the node at h.
func (g *Graph) Node(h NodeHandle) (Node, bool) {
	if int(h) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[h], true
}

// NodeForID returns the handle of the node with the given id.
func (g *Graph) NodeForID(id NodeID) (NodeHandle, bool) {
	h, ok := g.nodeIDs[id]
	return h, ok
}

// NodeCount returns the number of nodes including the root.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// NodesInFile returns the handles of the nodes belonging to file, in
// creation order.
func (g *Graph) NodesInFile(file FileHandle) []NodeHandle {
	return append([]NodeHandle(nil), g.byFile[file]...)
}

// Each calls fn for every node, root included, in creation order.
func (g *Graph) Each(fn func(NodeHandle, Node)) {
	for i, n := range g.nodes {
		fn(NodeHandle(i), n)
	}
}

// ---------- Edges ----------

// AddEdge connects source to sink. Duplicate edges are kept.
func (g *Graph) AddEdge(source, sink NodeHandle, precedence int32) {
	if int(source) >= len(g.nodes) || int(sink) >= len(g.nodes) {
		violate("AddEdge", "invalid node handle %d -> %d", source, sink)
	}
	g.edges = append(g.edges, Edge{Source: source, Sink: sink, Precedence: precedence})
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// OutgoingEdges returns the edges leaving h.
func (g *Graph) OutgoingEdges(h NodeHandle) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == h {
			out = append(out, e)
		}
	}
	return out
}

// ---------- Stats ----------

// Stats summarizes the graph's contents.
type Stats struct {
	Files      int `json:"files"`
	Symbols    int `json:"symbols"`
	Nodes      int `json:"nodes"` // excluding root
	ScopeNodes int `json:"scopeNodes"`
	PopNodes   int `json:"popNodes"`
	PushNodes  int `json:"pushNodes"`
	Edges      int `json:"edges"`
}

// Stats counts files, symbols, nodes by kind and edges.
func (g *Graph) Stats() Stats {
	s := Stats{
		Files:   g.FileCount(),
		Symbols: g.SymbolCount(),
		Nodes:   len(g.nodes) - 1,
		Edges:   len(g.edges),
	}
	for _, n := range g.nodes {
		switch n.Kind {
		case ScopeNode:
			s.ScopeNodes++
		case PopSymbolNode:
			s.PopNodes++
		case PushSymbolNode:
			s.PushNodes++
		}
	}
	return s
}
