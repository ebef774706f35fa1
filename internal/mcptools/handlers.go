package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/tsgindex/internal/indexer"
	"github.com/dusk-indust/tsgindex/internal/store"
)

// ErrNotIndexed is returned by queries issued before any index_path call.
var ErrNotIndexed = errors.New("no graph indexed yet; call index_path first")

// StoreFactory opens an empty store for a fresh index.
type StoreFactory func() (store.Store, error)

// CodeIntelService holds the indexed graph store used by MCP tool handlers.
type CodeIntelService struct {
	mu       sync.RWMutex
	newStore StoreFactory
	workers  int
	log      *slog.Logger

	store store.Store
	path  string
}

// NewCodeIntelService creates a CodeIntelService. A nil factory keeps each
// index in memory; a nil logger discards logs.
func NewCodeIntelService(newStore StoreFactory, workers int, logger *slog.Logger) *CodeIntelService {
	if newStore == nil {
		newStore = func() (store.Store, error) { return store.NewMemStore(), nil }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CodeIntelService{newStore: newStore, workers: workers, log: logger}
}

// Close releases the current store.
func (s *CodeIntelService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// IndexPath indexes a file or directory and replaces the queryable graph.
func (s *CodeIntelService) IndexPath(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexPathInput,
) (*mcp.CallToolResult, IndexPathOutput, error) {
	if input.Path == "" {
		return nil, IndexPathOutput{}, fmt.Errorf("path is required")
	}

	ix, err := indexer.New(indexer.Options{
		Exclude:         input.Exclude,
		Workers:         s.workers,
		ContinueOnError: input.ContinueOnError,
	}, s.log)
	if err != nil {
		return nil, IndexPathOutput{}, err
	}
	res, err := ix.Index(ctx, input.Path)
	if err != nil {
		return nil, IndexPathOutput{}, fmt.Errorf("index %s: %w", input.Path, err)
	}

	dst, err := s.newStore()
	if err != nil {
		return nil, IndexPathOutput{}, fmt.Errorf("open store: %w", err)
	}
	if err := store.Persist(ctx, dst, res.Graph); err != nil {
		dst.Close()
		return nil, IndexPathOutput{}, fmt.Errorf("persist: %w", err)
	}

	s.mu.Lock()
	old := s.store
	s.store, s.path = dst, input.Path
	s.mu.Unlock()
	if old != nil {
		if err := old.Close(); err != nil {
			s.log.Warn("mcp.store_close", "err", err)
		}
	}

	return nil, IndexPathOutput{
		Stats:   res.Graph.Stats(),
		Built:   res.Count(indexer.Built),
		Skipped: res.Count(indexer.Skipped),
		Failed:  res.Count(indexer.Failed),
	}, nil
}

// FindDefinitions looks up the exported definitions of a symbol.
func (s *CodeIntelService) FindDefinitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindDefinitionsInput,
) (*mcp.CallToolResult, FindDefinitionsOutput, error) {
	if input.Symbol == "" {
		return nil, FindDefinitionsOutput{}, fmt.Errorf("symbol is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, FindDefinitionsOutput{}, ErrNotIndexed
	}

	defs, err := s.store.FindDefinitions(ctx, input.Symbol)
	if err != nil {
		return nil, FindDefinitionsOutput{}, fmt.Errorf("find definitions: %w", err)
	}
	out := FindDefinitionsOutput{Definitions: defs}
	if input.References {
		if out.References, err = s.store.FindReferences(ctx, input.Symbol); err != nil {
			return nil, FindDefinitionsOutput{}, fmt.Errorf("find references: %w", err)
		}
	}
	if out.Definitions == nil {
		out.Definitions = []store.NodeRecord{}
	}
	return nil, out, nil
}

// GraphStats reports the size of the indexed graph.
func (s *CodeIntelService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, GraphStatsOutput{}, nil
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, fmt.Errorf("stats: %w", err)
	}
	return nil, GraphStatsOutput{Indexed: true, Path: s.path, Stats: *stats}, nil
}
