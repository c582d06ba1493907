package dot

import (
	"bufio"
	"io"
	"strings"
)

// Write serializes g as a DOT digraph.
func Write(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	name := g.Name
	if name == "" {
		name = "G"
	}
	bw.WriteString("digraph " + name + " {\n")
	for _, n := range g.Nodes {
		bw.WriteString(n.ID)
		writeAttrs(bw, n.Attrs)
		bw.WriteString(";\n")
	}
	for _, e := range g.Edges {
		bw.WriteString(e.From + " -> " + e.To)
		writeAttrs(bw, e.Attrs)
		bw.WriteString(";\n")
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

// String returns the DOT text of g.
func (g *Graph) String() string {
	var sb strings.Builder
	_ = Write(&sb, g)
	return sb.String()
}

func writeAttrs(bw *bufio.Writer, attrs []Attr) {
	if len(attrs) == 0 {
		return
	}
	bw.WriteString(" [")
	for i, a := range attrs {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(a.Key + "=" + quote(a.Value))
	}
	bw.WriteString("]")
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
