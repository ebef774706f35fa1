package export

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/dusk-indust/tsgindex/internal/stackgraph"
)

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;")

// WriteMermaid writes a Mermaid graph TD diagram. Files are grouped into one
// subgraph per directory and labeled with their pop-symbol count.
func WriteMermaid(w io.Writer, g *stackgraph.Graph) error {
	groups := make(map[string][]stackgraph.FileHandle)
	for _, h := range g.Files() {
		f, _ := g.File(h)
		dir := path.Dir(f.Name)
		groups[dir] = append(groups[dir], h)
	}
	dirs := make([]string, 0, len(groups))
	for d := range groups {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "graph TD")
	for i, dir := range dirs {
		fmt.Fprintf(bw, "  subgraph D%d[\"%.40s\"]\n", i, mermaidEscaper.Replace(dir))
		for _, h := range groups[dir] {
			f, _ := g.File(h)
			fmt.Fprintf(bw, "    F%d[\"%s (%d)\"]\n", h, mermaidEscaper.Replace(path.Base(f.Name)), definitions(g, h))
		}
		fmt.Fprintln(bw, "  end")
	}
	return bw.Flush()
}

// definitions counts the pop-symbol nodes of a file: definitions plus the
// dependency half of each import.
func definitions(g *stackgraph.Graph, h stackgraph.FileHandle) int {
	n := 0
	for _, nh := range g.NodesInFile(h) {
		if node, _ := g.Node(nh); node.Kind == stackgraph.PopSymbolNode {
			n++
		}
	}
	return n
}
