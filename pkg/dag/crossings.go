package dag

import "slices"

// CountCrossings sums [CountLayerCrossings] over every pair of consecutive
// rows. rows[i] holds the left-to-right order of row i.
func CountCrossings(g *Graph, rows [][]string) int {
	total := 0
	for i := 0; i+1 < len(rows); i++ {
		total += CountLayerCrossings(g, rows[i], rows[i+1])
	}
	return total
}

// CountLayerCrossings counts crossings between edges running from upper to
// lower. Edges (u1,v1) and (u2,v2) cross when u1 is left of u2 and v1 is
// right of v2, so the count is the number of inversions among target
// positions once edges are sorted by source position. A Fenwick tree keeps
// this at O(E log V).
func CountLayerCrossings(g *Graph, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := PosMap(lower)

	type span struct{ from, to int }
	var spans []span
	for i, id := range upper {
		for _, c := range g.Children(id) {
			if p, ok := lowerPos[c]; ok {
				spans = append(spans, span{i, p})
			}
		}
	}
	if len(spans) < 2 {
		return 0
	}
	slices.SortFunc(spans, func(a, b span) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})

	tree := make([]int, len(lower)+1)
	crossings := 0
	for seen, s := range spans {
		atOrLeft := 0
		for q := s.to + 1; q > 0; q -= q & -q {
			atOrLeft += tree[q]
		}
		crossings += seen - atOrLeft
		for q := s.to + 1; q < len(tree); q += q & -q {
			tree[q]++
		}
	}
	return crossings
}

// CountPairCrossings counts crossings between the edges of left and right
// when left sits immediately before right. adjPos gives positions in the
// neighbouring row; parents selects the row above instead of below.
func CountPairCrossings(g *Graph, left, right string, adjPos map[string]int, parents bool) int {
	ln, rn := g.Children(left), g.Children(right)
	if parents {
		ln, rn = g.Parents(left), g.Parents(right)
	}
	n := 0
	for _, a := range ln {
		pa, ok := adjPos[a]
		if !ok {
			continue
		}
		for _, b := range rn {
			if pb, ok := adjPos[b]; ok && pa > pb {
				n++
			}
		}
	}
	return n
}
