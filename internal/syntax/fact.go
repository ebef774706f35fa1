// Package syntax turns tree-sitter syntax trees into construct facts.
//
// A fact is a named definition, reference, or import found in a file.
// Facts are produced either by declarative rules (Rule) evaluated over the
// tree shape, or by curated query files compiled through Compile.
package syntax

import "fmt"

// FactKind classifies a construct fact.
type FactKind int

const (
	Definition FactKind = iota
	Reference
	Import
)

func (k FactKind) String() string {
	switch k {
	case Definition:
		return "definition"
	case Reference:
		return "reference"
	case Import:
		return "import"
	default:
		return fmt.Sprintf("FactKind(%d)", int(k))
	}
}

// ParseFactKind maps "definition", "reference", or "import" to a FactKind.
func ParseFactKind(s string) (FactKind, bool) {
	switch s {
	case "definition":
		return Definition, true
	case "reference":
		return Reference, true
	case "import":
		return Import, true
	}
	return 0, false
}

// Fact is one extracted construct. Name is never empty.
type Fact struct {
	Kind      FactKind
	Construct string // function, class, method, module, ...
	Name      string
	StartByte uint
	EndByte   uint
	Line      uint // 1-based
	Column    uint
}
