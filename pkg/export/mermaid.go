package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/model"
)

const mermaidClassDefs = `  classDef ingest fill:#e0e7ff,stroke:#6366f1,stroke-width:2px;
  classDef dataset fill:#dcfce7,stroke:#22c55e,stroke-width:2px;
  classDef schema fill:#f3e8ff,stroke:#a855f7,stroke-width:2px;
  classDef profileSchema fill:#fef3c7,stroke:#eab308,stroke-width:2px;
  classDef profile fill:#fef3c7,stroke:#f59e0b,stroke-width:4px;
`

// Mermaid renders g as a left-to-right Mermaid flowchart. Nodes and edges
// appear in graph order: ingest sources as boxes, datasets as cylinders,
// schemas as stadiums and the Unified Profile as a circle. Dataset→Schema
// edges are dotted and edges into the profile are thick.
func Mermaid(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("graph LR;\n")

	for _, n := range g.Nodes {
		label := mermaidText(n.Label)
		switch n.Kind {
		case graph.KindIngest:
			fmt.Fprintf(&b, "  %s[\"%s\"]:::ingest;\n", n.ID, label)
		case graph.KindDataset:
			fmt.Fprintf(&b, "  %s[(\"%s\")]:::dataset;\n", n.ID, label)
		case graph.KindSchema:
			fmt.Fprintf(&b, "  %s([\"%s\"]):::%s;\n", n.ID, label, schemaClass(n))
		case graph.KindProfile:
			fmt.Fprintf(&b, "  %s((\"%s\")):::profile;\n", n.ID, label)
		}
	}

	b.WriteString("\n")
	b.WriteString(mermaidClassDefs)
	b.WriteString("\n")

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s %s %s;\n", e.Source, mermaidArrow(e), e.Target)
	}
	return b.String()
}

func mermaidArrow(e graph.Edge) string {
	switch {
	case e.Target == model.UnifiedProfileID:
		return "==>"
	case e.Style == graph.StyleDefinedBy:
		return "-.->"
	default:
		return "-->"
	}
}

func schemaClass(n graph.Node) string {
	if profileEnabled(n) {
		return "profileSchema"
	}
	return "schema"
}

func profileEnabled(n graph.Node) bool {
	switch s := n.Details.(type) {
	case model.Schema:
		return s.IsProfileEnabled
	case *model.Schema:
		return s != nil && s.IsProfileEnabled
	}
	return false
}

// mermaidText escapes a quoted Mermaid label.
func mermaidText(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
