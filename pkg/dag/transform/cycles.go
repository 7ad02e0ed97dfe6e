package transform

import "github.com/matzehuels/aepplanner/pkg/dag"

// BreakCycles removes the back edges found by a depth-first search that
// starts from the sources and then from any node not yet visited, both in
// insertion order. It returns the removed edges so callers can re-insert
// them reversed.
func BreakCycles(g *dag.Graph) []dag.Edge {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, g.NodeCount())
	var back []dag.Edge

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, c := range g.Children(id) {
			switch color[c] {
			case white:
				visit(c)
			case gray:
				back = append(back, dag.Edge{From: id, To: c})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}

	for _, e := range back {
		g.RemoveEdge(e.From, e.To)
	}
	return back
}

// Reverse re-inserts edges with their direction flipped.
func Reverse(g *dag.Graph, edges []dag.Edge) {
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e.To, To: e.From})
	}
}
