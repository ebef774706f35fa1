package syntax

import (
	"context"
	"errors"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrNoTree is returned when the parser produces no tree for a source.
var ErrNoTree = errors.New("parser returned no tree")

// pools holds one parser pool per grammar.
var pools sync.Map // *tree_sitter.Language -> *sync.Pool

func poolFor(grammar *tree_sitter.Language) *sync.Pool {
	if p, ok := pools.Load(grammar); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(grammar, &sync.Pool{
		New: func() any {
			parser := tree_sitter.NewParser()
			if err := parser.SetLanguage(grammar); err != nil {
				parser.Close()
				return nil
			}
			return parser
		},
	})
	return p.(*sync.Pool)
}

// Parse parses source with the given grammar. The caller must Close the
// returned tree. Parsers are pooled per grammar and safe to use from
// multiple goroutines.
func Parse(ctx context.Context, grammar *tree_sitter.Language, source []byte) (*tree_sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if grammar == nil {
		return nil, errors.New("nil grammar")
	}

	pool := poolFor(grammar)
	parser, _ := pool.Get().(*tree_sitter.Parser)
	if parser == nil {
		return nil, errors.New("grammar rejected by parser (ABI mismatch)")
	}
	tree := parser.Parse(source, nil)
	pool.Put(parser)

	if tree == nil {
		return nil, ErrNoTree
	}
	return tree, nil
}
