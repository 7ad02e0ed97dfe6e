package transform

import "github.com/matzehuels/aepplanner/pkg/dag"

// AssignLayers puts every node one row below its deepest parent, so sources
// sit on row 0 (longest-path layering via Kahn's algorithm). Existing rows
// are overwritten. Nodes on a cycle keep row 0; run [BreakCycles] first.
func AssignLayers(g *dag.Graph) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		inDegree[n.ID] = g.InDegree(n.ID)
		rows[n.ID] = 0
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range g.Children(cur) {
			rows[c] = max(rows[c], rows[cur]+1)
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}

	g.SetRows(rows)
}
