//go:build cgo

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements Store using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at
// dbPath. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

// Open opens the file-backed store at dbPath.
func Open(dbPath string) (Store, error) {
	return NewKuzuFileStore(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements is executed by InitSchema. Node tables precede the
// relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS File(
		name STRING,
		language STRING,
		digest STRING,
		PRIMARY KEY(name)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS GraphNode(
		id STRING,
		file STRING,
		kind STRING,
		symbol STRING,
		exported BOOLEAN,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS LINK(FROM GraphNode TO GraphNode, precedence INT64)`,
}

// InitSchema creates all tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// resetStatements empty the tables. Relationships go before the nodes they
// connect.
var resetStatements = []string{
	`MATCH ()-[e:LINK]->() DELETE e`,
	`MATCH (n:GraphNode) DELETE n`,
	`MATCH (f:File) DELETE f`,
}

// Reset deletes every row while keeping the schema.
func (s *KuzuStore) Reset(_ context.Context) error {
	for _, stmt := range resetStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: reset: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddFile upserts a File row.
func (s *KuzuStore) AddFile(_ context.Context, f FileRecord) error {
	return s.exec(
		"MERGE (f:File {name: $name}) SET f.language = $lang, f.digest = $digest",
		map[string]any{
			"name":   f.Name,
			"lang":   f.Language,
			"digest": f.Digest,
		},
	)
}

// AddNode upserts a GraphNode row.
func (s *KuzuStore) AddNode(_ context.Context, n NodeRecord) error {
	return s.exec(
		`MERGE (n:GraphNode {id: $id})
		 SET n.file = $file, n.kind = $kind, n.symbol = $symbol, n.exported = $exported`,
		map[string]any{
			"id":       n.ID,
			"file":     n.File,
			"kind":     n.Kind,
			"symbol":   n.Symbol,
			"exported": n.Exported,
		},
	)
}

// AddEdge inserts a LINK between two existing nodes.
func (s *KuzuStore) AddEdge(_ context.Context, e EdgeRecord) error {
	return s.exec(
		`MATCH (a:GraphNode {id: $src}), (b:GraphNode {id: $dst})
		 CREATE (a)-[:LINK {precedence: $prec}]->(b)`,
		map[string]any{
			"src":  e.Source,
			"dst":  e.Sink,
			"prec": int64(e.Precedence),
		},
	)
}

// ---------- Read operations ----------

func (s *KuzuStore) FindDefinitions(_ context.Context, symbol string) ([]NodeRecord, error) {
	return s.nodes(
		`MATCH (n:GraphNode)
		 WHERE n.symbol = $symbol AND n.kind = 'pop_symbol' AND n.exported
		 RETURN n.id, n.file, n.kind, n.symbol, n.exported ORDER BY n.id`,
		symbol,
	)
}

func (s *KuzuStore) FindReferences(_ context.Context, symbol string) ([]NodeRecord, error) {
	return s.nodes(
		`MATCH (n:GraphNode)
		 WHERE n.symbol = $symbol AND n.kind = 'push_symbol'
		 RETURN n.id, n.file, n.kind, n.symbol, n.exported ORDER BY n.id`,
		symbol,
	)
}

func (s *KuzuStore) nodes(cypher, symbol string) ([]NodeRecord, error) {
	rows, err := s.query(cypher, map[string]any{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	out := make([]NodeRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToNode(r))
	}
	return out, nil
}

// Stats returns row counts. The root node is not counted.
func (s *KuzuStore) Stats(_ context.Context) (*Stats, error) {
	files, err := s.count("MATCH (f:File) RETURN count(f)")
	if err != nil {
		return nil, err
	}
	nodes, err := s.count("MATCH (n:GraphNode) WHERE n.id <> 'root' RETURN count(n)")
	if err != nil {
		return nil, err
	}
	edges, err := s.count("MATCH ()-[e:LINK]->() RETURN count(e)")
	if err != nil {
		return nil, err
	}
	return &Stats{Files: files, Nodes: nodes, Edges: edges}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a Cypher statement and collects all result rows. Each row is a
// []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func (s *KuzuStore) count(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// rowToNode converts a 5-column row: id, file, kind, symbol, exported.
func rowToNode(r []any) NodeRecord {
	return NodeRecord{
		ID:       toString(r[0]),
		File:     toString(r[1]),
		Kind:     toString(r[2]),
		Symbol:   toString(r[3]),
		Exported: toBool(r[4]),
	}
}

// ---------- Type coercion helpers ----------

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
