package store

import (
	"context"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	files map[string]FileRecord
	nodes map[string]NodeRecord
	order []string // node ids in insertion order
	edges []EdgeRecord
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		files: make(map[string]FileRecord),
		nodes: make(map[string]NodeRecord),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// Reset drops every stored file, node and edge.
func (m *MemStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string]FileRecord)
	m.nodes = make(map[string]NodeRecord)
	m.order = nil
	m.edges = nil
	return nil
}

// AddFile stores a file keyed by its name.
func (m *MemStore) AddFile(_ context.Context, f FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[f.Name] = f
	return nil
}

// AddNode stores a node keyed by its id.
func (m *MemStore) AddNode(_ context.Context, n NodeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[n.ID]; !ok {
		m.order = append(m.order, n.ID)
	}
	m.nodes[n.ID] = n
	return nil
}

// AddEdge appends an edge.
func (m *MemStore) AddEdge(_ context.Context, e EdgeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, e)
	return nil
}

func (m *MemStore) FindDefinitions(_ context.Context, symbol string) ([]NodeRecord, error) {
	return m.match(func(n NodeRecord) bool {
		return n.Kind == "pop_symbol" && n.Exported && n.Symbol == symbol
	}), nil
}

func (m *MemStore) FindReferences(_ context.Context, symbol string) ([]NodeRecord, error) {
	return m.match(func(n NodeRecord) bool {
		return n.Kind == "push_symbol" && n.Symbol == symbol
	}), nil
}

func (m *MemStore) match(keep func(NodeRecord) bool) []NodeRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []NodeRecord
	for _, id := range m.order {
		if n := m.nodes[id]; keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// Stats returns row counts. The root node is not counted.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	nodes := len(m.nodes)
	if _, ok := m.nodes[RootID]; ok {
		nodes--
	}
	return &Stats{Files: len(m.files), Nodes: nodes, Edges: len(m.edges)}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
