// Package export renders a finished stack graph for output.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dusk-indust/tsgindex/internal/stackgraph"
)

// Format is an output format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatDOT, FormatMermaid}

// ParseFormat maps a format name to a Format. Unrecognized names yield JSON
// and false so the caller can warn.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatDOT, FormatMermaid:
		return f, true
	default:
		return FormatJSON, false
	}
}

// Render writes g to w in format f.
func Render(w io.Writer, f Format, g *stackgraph.Graph) error {
	switch f {
	case FormatDOT:
		return WriteDOT(w, g)
	case FormatMermaid:
		return WriteMermaid(w, g)
	default:
		return WriteJSON(w, g)
	}
}

// Write renders g to the file at dest, or to stdout when dest is empty.
func Write(dest string, f Format, g *stackgraph.Graph) error {
	if dest == "" {
		return Render(os.Stdout, f, g)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Render(out, f, g); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}

// fileNames returns the graph's file names in handle order.
func fileNames(g *stackgraph.Graph) []string {
	handles := g.Files()
	names := make([]string, 0, len(handles))
	for _, h := range handles {
		f, _ := g.File(h)
		names = append(names, f.Name)
	}
	return names
}
