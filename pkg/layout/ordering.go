package layout

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/aepplanner/pkg/dag"
)

// orderRows returns the left-to-right order of every row. It starts from
// insertion order, alternates downward and upward barycenter sweeps keeping
// the ordering with the fewest crossings, then applies adjacent swaps while
// they reduce crossings.
func orderRows(ctx context.Context, g *dag.Graph, sweeps int) ([][]string, error) {
	rows := g.Rows()
	best := cloneRows(rows)
	bestCross := dag.CountCrossings(g, best)

	for i := 0; i < sweeps && bestCross > 0; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, down := range []bool{true, false} {
			sweep(g, rows, down)
			if c := dag.CountCrossings(g, rows); c < bestCross {
				best, bestCross = cloneRows(rows), c
			}
		}
	}

	transpose(g, best)
	return best, nil
}

func sweep(g *dag.Graph, rows [][]string, down bool) {
	if down {
		for i := 1; i < len(rows); i++ {
			reorder(rows[i], dag.PosMap(rows[i-1]), g.Parents)
		}
		return
	}
	for i := len(rows) - 2; i >= 0; i-- {
		reorder(rows[i], dag.PosMap(rows[i+1]), g.Children)
	}
}

// reorder sorts row by the mean position of each node's neighbours in the
// adjacent row. Nodes without neighbours keep their index as key.
func reorder(row []string, adj map[string]int, neighbours func(string) []string) {
	type keyed struct {
		id  string
		key float64
	}
	items := make([]keyed, len(row))
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := adj[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		key := float64(i)
		if n > 0 {
			key = sum / float64(n)
		}
		items[i] = keyed{id, key}
	}
	slices.SortStableFunc(items, func(a, b keyed) int { return cmp.Compare(a.key, b.key) })
	for i, it := range items {
		row[i] = it.id
	}
}

// transpose swaps adjacent nodes while a swap strictly lowers the crossings
// with both neighbouring rows.
func transpose(g *dag.Graph, rows [][]string) {
	for improved := true; improved; {
		improved = false
		for r, row := range rows {
			var above, below map[string]int
			if r > 0 {
				above = dag.PosMap(rows[r-1])
			}
			if r+1 < len(rows) {
				below = dag.PosMap(rows[r+1])
			}
			for i := 0; i+1 < len(row); i++ {
				a, b := row[i], row[i+1]
				before := dag.CountPairCrossings(g, a, b, above, true) + dag.CountPairCrossings(g, a, b, below, false)
				after := dag.CountPairCrossings(g, b, a, above, true) + dag.CountPairCrossings(g, b, a, below, false)
				if after < before {
					row[i], row[i+1] = b, a
					improved = true
				}
			}
		}
	}
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
