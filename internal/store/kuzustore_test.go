//go:build cgo

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(context.Background()), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestKuzuStore_Persist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, Persist(ctx, s, sampleGraph()))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Files: 2, Nodes: 7, Edges: 4}, stats)

	defs, err := s.FindDefinitions(ctx, "fmt")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "a.go", defs[0].File)
	assert.Equal(t, "b.go", defs[1].File)

	refs, err := s.FindReferences(ctx, "fmt")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "push_symbol", refs[0].Kind)
}

func TestKuzuStore_FileStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "graph.kuzu")

	s, err := NewKuzuFileStore(path)
	require.NoError(t, err)
	require.NoError(t, Persist(ctx, s, sampleGraph()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	stats, err := reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
}

func TestKuzuStore_PersistTwiceKeepsCounts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.kuzu")
	g := sampleGraph()
	want := &Stats{Files: 2, Nodes: 7, Edges: 4}

	s, err := NewKuzuFileStore(path)
	require.NoError(t, err)
	require.NoError(t, Persist(ctx, s, g))
	require.NoError(t, Persist(ctx, s, g))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stats)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, Persist(ctx, reopened, g))

	stats, err = reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stats)
}

func TestKuzuStore_Reset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, Persist(ctx, s, sampleGraph()))
	require.NoError(t, s.Reset(ctx))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}
