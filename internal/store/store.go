// Package store persists stack graphs to a queryable backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dusk-indust/tsgindex/internal/stackgraph"
)

// ErrUnavailable is returned when a backend was not compiled in.
var ErrUnavailable = errors.New("store: backend unavailable")

// Store is the interface for persisted graph backends.
// Implementations: KuzuStore (cgo builds), MemStore (testing, MCP sessions).
type Store interface {
	io.Closer

	// InitSchema is called once before any data is inserted. It is idempotent.
	InitSchema(ctx context.Context) error
	// Reset removes all stored rows, keeping the schema.
	Reset(ctx context.Context) error

	AddFile(ctx context.Context, f FileRecord) error
	AddNode(ctx context.Context, n NodeRecord) error
	AddEdge(ctx context.Context, e EdgeRecord) error

	// FindDefinitions returns the exported pop nodes for symbol.
	FindDefinitions(ctx context.Context, symbol string) ([]NodeRecord, error)
	// FindReferences returns the push nodes for symbol.
	FindReferences(ctx context.Context, symbol string) ([]NodeRecord, error)

	Stats(ctx context.Context) (*Stats, error)
}

// FileRecord is a persisted file.
type FileRecord struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Digest   string `json:"digest"`
}

// NodeRecord is a persisted graph node. ID is "root" for the root node and
// "<file>:<local>" otherwise.
type NodeRecord struct {
	ID       string `json:"id"`
	File     string `json:"file,omitempty"`
	Kind     string `json:"kind"`
	Symbol   string `json:"symbol,omitempty"`
	Exported bool   `json:"exported"`
}

// EdgeRecord is a persisted edge between two node IDs.
type EdgeRecord struct {
	Source     string `json:"source"`
	Sink       string `json:"sink"`
	Precedence int    `json:"precedence"`
}

// Stats holds row counts for a store.
type Stats struct {
	Files int `json:"files"`
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// RootID is the persisted id of the root node.
const RootID = "root"

// Persist replaces the contents of s with every file, node and edge of g.
// Persisting the same graph twice leaves the store as after the first call.
func Persist(ctx context.Context, s Store, g *stackgraph.Graph) error {
	if err := s.InitSchema(ctx); err != nil {
		return err
	}
	if err := s.Reset(ctx); err != nil {
		return fmt.Errorf("persist reset: %w", err)
	}

	names := make(map[stackgraph.FileHandle]string, g.FileCount())
	for _, h := range g.Files() {
		f, _ := g.File(h)
		names[h] = f.Name
		rec := FileRecord{Name: f.Name, Language: f.Language, Digest: strconv.FormatUint(f.Digest, 16)}
		if err := s.AddFile(ctx, rec); err != nil {
			return fmt.Errorf("persist file %s: %w", f.Name, err)
		}
	}

	ids := make([]string, 0, g.NodeCount())
	var err error
	g.Each(func(_ stackgraph.NodeHandle, n stackgraph.Node) {
		rec := nodeRecord(g, names, n)
		ids = append(ids, rec.ID)
		if err != nil {
			return
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			return
		}
		if addErr := s.AddNode(ctx, rec); addErr != nil {
			err = fmt.Errorf("persist node %s: %w", rec.ID, addErr)
		}
	})
	if err != nil {
		return err
	}

	for _, e := range g.Edges() {
		rec := EdgeRecord{Source: ids[e.Source], Sink: ids[e.Sink], Precedence: int(e.Precedence)}
		if err := s.AddEdge(ctx, rec); err != nil {
			return fmt.Errorf("persist edge %s -> %s: %w", rec.Source, rec.Sink, err)
		}
	}
	return nil
}

func nodeRecord(g *stackgraph.Graph, names map[stackgraph.FileHandle]string, n stackgraph.Node) NodeRecord {
	if n.Kind == stackgraph.RootNode {
		return NodeRecord{ID: RootID, Kind: n.Kind.String(), Exported: n.Exported}
	}
	file := names[n.ID.File]
	rec := NodeRecord{
		ID:       file + ":" + strconv.FormatUint(uint64(n.ID.Local), 10),
		File:     file,
		Kind:     n.Kind.String(),
		Exported: n.Exported,
	}
	if n.Symbol != 0 {
		rec.Symbol = g.Symbol(n.Symbol)
	}
	return rec
}
