package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/model"
)

// =============================================================================
// Constants
// =============================================================================

// Kind is the entity kind of a node.
type Kind string

// Node kinds.
const (
	KindIngest  Kind = "ingest"
	KindDataset Kind = "dataset"
	KindSchema  Kind = "schema"
	KindProfile Kind = "profile"
)

// EdgeStyle is a cosmetic hint for renderers. It never changes what an edge
// means.
type EdgeStyle string

// Edge styles.
const (
	StyleDefault   EdgeStyle = "default"   // ingest into a non-profile dataset
	StyleProfile   EdgeStyle = "profile"   // data feeding the Unified Profile
	StyleDefinedBy EdgeStyle = "definedBy" // dataset to its schema
)

// LabelDefinedBy labels Dataset→Schema edges.
const LabelDefinedBy = "defined by"

// EdgeID derives the stable id of the edge from source to target.
func EdgeID(source, target string) string {
	return "e-" + source + "-" + target
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the architecture graph: nodes in emission order, then edges in
// emission order. Edges may reference ids that are not nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// CountKind returns the number of nodes of kind k.
func (g *Graph) CountKind(k Kind) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Kind == k {
			n++
		}
	}
	return n
}

// DanglingEdges returns the edges whose source or target is not a node.
func (g *Graph) DanglingEdges() []Edge {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	var out []Edge
	for _, e := range g.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

// WithNodes returns a copy of g holding nodes instead of g.Nodes. Layout
// engines use it to attach positions.
func (g *Graph) WithNodes(nodes []Node) *Graph {
	return &Graph{Nodes: nodes, Edges: append([]Edge(nil), g.Edges...)}
}

// =============================================================================
// Node
// =============================================================================

// Position is the top-left corner of a node's box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one entity in the graph.
//
// Details holds the entity itself: a [model.IngestNode], [model.Dataset],
// [model.Schema] or [model.ProfileStore], matching Kind.
type Node struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Label    string    `json:"label"`
	Details  any       `json:"details,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// UnmarshalJSON decodes Details into the entity type named by Kind.
func (n *Node) UnmarshalJSON(data []byte) error {
	type wire struct {
		ID       string          `json:"id"`
		Kind     Kind            `json:"kind"`
		Label    string          `json:"label"`
		Details  json.RawMessage `json:"details"`
		Position *Position       `json:"position"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Node{ID: w.ID, Kind: w.Kind, Label: w.Label, Position: w.Position}
	if len(w.Details) == 0 || string(w.Details) == "null" {
		return nil
	}
	var err error
	switch w.Kind {
	case KindIngest:
		n.Details, err = decode[model.IngestNode](w.Details)
	case KindDataset:
		n.Details, err = decode[model.Dataset](w.Details)
	case KindSchema:
		n.Details, err = decode[model.Schema](w.Details)
	case KindProfile:
		n.Details, err = decode[model.ProfileStore](w.Details)
	default:
		var v any
		err = json.Unmarshal(w.Details, &v)
		n.Details = v
	}
	if err != nil {
		return fmt.Errorf("node %s details: %w", w.ID, err)
	}
	return nil
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed edge. Label and Style are display hints.
type Edge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Style  EdgeStyle `json:"style"`
	Label  string    `json:"label,omitempty"`
}
