package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/tsgindex/internal/stackgraph"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// WriteDOT writes a Graphviz digraph with one labeled node per file.
func WriteDOT(w io.Writer, g *stackgraph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph StackGraph {")
	for _, h := range g.Files() {
		f, _ := g.File(h)
		fmt.Fprintf(bw, "  file_%d [label=\"%s\"];\n", h, dotEscaper.Replace(f.Name))
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
