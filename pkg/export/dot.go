package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/model"
)

// DOT renders g as a Graphviz digraph named AEP_Architecture, left to
// right. Nodes and edges appear in graph order. Ingest sources are
// hexagons, datasets cylinders, schemas ellipses (gold when profile
// enabled) and the Unified Profile a double circle.
func DOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph AEP_Architecture {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Arial\", shape=box, style=filled];\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %s [%s];\n", dotQuote(n.ID), strings.Join(dotNodeAttrs(n), ", "))
	}
	for _, e := range g.Edges {
		attrs := dotEdgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(e.Source), dotQuote(e.Target))
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", dotQuote(e.Source), dotQuote(e.Target), strings.Join(attrs, ", "))
	}

	b.WriteString("}\n")
	return b.String()
}

func dotNodeAttrs(n graph.Node) []string {
	switch n.Kind {
	case graph.KindIngest:
		label := n.Label
		if in, ok := n.Details.(model.IngestNode); ok {
			label = in.Name + "\n(" + string(in.Type) + ")"
		}
		return []string{"label=" + dotQuote(label), `fillcolor="#e0e7ff"`, `color="#6366f1"`, "shape=hexagon"}
	case graph.KindDataset:
		return []string{"label=" + dotQuote(n.Label), `fillcolor="#dcfce7"`, `color="#22c55e"`, "shape=cylinder"}
	case graph.KindSchema:
		fill, border := "#f3e8ff", "#a855f7"
		if profileEnabled(n) {
			fill, border = "#fef3c7", "#eab308"
		}
		return []string{"label=" + dotQuote(n.Label), "fillcolor=" + dotQuote(fill), "color=" + dotQuote(border), "shape=ellipse"}
	case graph.KindProfile:
		return []string{"label=" + dotQuote(n.Label), `fillcolor="#fef3c7"`, `color="#f59e0b"`, "shape=doublecircle", `style="filled,bold"`}
	}
	return []string{"label=" + dotQuote(n.Label)}
}

func dotEdgeAttrs(e graph.Edge) []string {
	switch {
	case e.Target == model.UnifiedProfileID:
		return []string{`color="#f59e0b"`, "penwidth=2"}
	case e.Style == graph.StyleDefinedBy:
		return []string{"style=dashed", "label=" + dotQuote(e.Label)}
	}
	return nil
}

// dotQuote returns s as a DOT quoted string. Newlines become the \n escape
// Graphviz understands in labels.
func dotQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
