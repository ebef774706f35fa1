package syntax

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

type queryKey struct {
	grammar *tree_sitter.Language
	source  string
}

var (
	queriesMu sync.RWMutex
	queries   = make(map[queryKey]*tree_sitter.Query)
)

// Compile returns the compiled query for (grammar, source), compiling it on
// first use. Compiled queries are shared and never closed.
func Compile(grammar *tree_sitter.Language, source string) (*tree_sitter.Query, error) {
	key := queryKey{grammar: grammar, source: source}

	queriesMu.RLock()
	q, ok := queries[key]
	queriesMu.RUnlock()
	if ok {
		return q, nil
	}

	queriesMu.Lock()
	defer queriesMu.Unlock()
	if q, ok := queries[key]; ok {
		return q, nil
	}
	q, qerr := tree_sitter.NewQuery(grammar, source)
	if qerr != nil {
		return nil, fmt.Errorf("compile query: %s", qerr.Error())
	}
	queries[key] = q
	return q, nil
}

// Capture is one named capture of a query match.
type Capture struct {
	Name string
	Node tree_sitter.Node
}

// Matches runs q over root and calls fn once per match with its captures in
// pattern order. Captures are only valid for the duration of fn.
func Matches(q *tree_sitter.Query, root *tree_sitter.Node, source []byte, fn func(captures []Capture)) {
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	it := cursor.Matches(q, root, source)
	var buf []Capture
	for m := it.Next(); m != nil; m = it.Next() {
		buf = buf[:0]
		for _, c := range m.Captures {
			name := ""
			if int(c.Index) < len(names) {
				name = names[c.Index]
			}
			buf = append(buf, Capture{Name: name, Node: c.Node})
		}
		fn(buf)
	}
}
