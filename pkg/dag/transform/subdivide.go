package transform

import (
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/dag"
)

// Subdivide replaces every edge spanning more than one row with a chain of
// virtual nodes, one per intermediate row, so all edges join consecutive
// rows. Virtual ids have the form "from~to~row" with a numeric suffix on
// collision. Each virtual node records the edge's source as Origin.
//
// Subdivide returns the number of virtual nodes added.
func Subdivide(g *dag.Graph) int {
	used := make(map[string]bool, g.NodeCount())
	for _, n := range g.Nodes() {
		used[n.ID] = true
	}
	nextID := func(e dag.Edge, row int) string {
		base := fmt.Sprintf("%s~%s~%d", e.From, e.To, row)
		id := base
		for i := 2; used[id]; i++ {
			id = fmt.Sprintf("%s#%d", base, i)
		}
		used[id] = true
		return id
	}

	added := 0
	for _, e := range g.Edges() {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Row <= src.Row+1 {
			continue
		}
		g.RemoveEdge(e.From, e.To)
		prev := e.From
		for row := src.Row + 1; row < dst.Row; row++ {
			id := nextID(e, row)
			if err := g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual, Origin: e.From}); err != nil {
				panic(err)
			}
			if err := g.AddEdge(dag.Edge{From: prev, To: id}); err != nil {
				panic(err)
			}
			prev = id
			added++
		}
		if err := g.AddEdge(dag.Edge{From: prev, To: e.To}); err != nil {
			panic(err)
		}
	}
	return added
}
