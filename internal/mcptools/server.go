package mcptools

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCodeIntelMCPServer creates an MCP server with the indexing tools registered.
func NewCodeIntelMCPServer(svc *CodeIntelService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tsgindex",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_path",
		Description: "Index a file or directory into a stack graph. Walks the tree, parses every file with a known language and records definitions, imports and references.",
	}, svc.IndexPath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_definitions",
		Description: "Find the exported definition nodes for an exact symbol name in the last indexed graph. Optionally include the nodes that reference it.",
	}, svc.FindDefinitions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Return file, node and edge counts for the last indexed graph.",
	}, svc.GraphStats)

	return server
}

// RunStdio serves the MCP tools on stdio until stdin is closed or ctx is
// cancelled.
func RunStdio(ctx context.Context, svc *CodeIntelService) error {
	return NewCodeIntelMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP tools over streamable HTTP on addr.
func RunHTTP(ctx context.Context, svc *CodeIntelService, addr string) error {
	server := NewCodeIntelMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
