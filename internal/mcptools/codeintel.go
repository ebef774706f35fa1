package mcptools

import (
	"github.com/dusk-indust/tsgindex/internal/stackgraph"
	"github.com/dusk-indust/tsgindex/internal/store"
)

// --- MCP Tool Input Types ---
// The MCP Go SDK generates JSON schemas from these struct tags.

// IndexPathInput is the input for the index_path MCP tool.
type IndexPathInput struct {
	Path            string   `json:"path" jsonschema:"file or directory to index"`
	Exclude         []string `json:"exclude,omitempty" jsonschema:"glob patterns of relative paths to leave out (e.g. vendor/**)"`
	ContinueOnError bool     `json:"continueOnError,omitempty" jsonschema:"record unreadable or unparseable files and keep going"`
}

// IndexPathOutput is the result of the index_path MCP tool.
type IndexPathOutput struct {
	Stats   stackgraph.Stats `json:"stats"`
	Built   int              `json:"built"`
	Skipped int              `json:"skipped"`
	Failed  int              `json:"failed"`
}

// FindDefinitionsInput is the input for the find_definitions MCP tool.
type FindDefinitionsInput struct {
	Symbol     string `json:"symbol" jsonschema:"exact symbol name to look up"`
	References bool   `json:"references,omitempty" jsonschema:"also return push nodes that reference the symbol"`
}

// FindDefinitionsOutput is the result of the find_definitions MCP tool.
type FindDefinitionsOutput struct {
	Definitions []store.NodeRecord `json:"definitions"`
	References  []store.NodeRecord `json:"references,omitempty"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Indexed bool        `json:"indexed"`
	Path    string      `json:"path,omitempty"`
	Stats   store.Stats `json:"stats"`
}
