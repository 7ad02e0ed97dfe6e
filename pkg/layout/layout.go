package layout

import (
	"context"
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/dag"
	"github.com/matzehuels/aepplanner/pkg/dag/transform"
	"github.com/matzehuels/aepplanner/pkg/graph"
)

// Layouter assigns positions to graph nodes. Implementations return a new
// node slice in input order with Position set, and must be deterministic
// for a fixed input.
type Layouter interface {
	Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error)
}

// Options controls box sizes and spacing.
type Options struct {
	NodeWidth  float64 // box width of an entity node
	NodeHeight float64 // box height of an entity node
	NodeSep    float64 // horizontal gap between neighbours in a row
	RankSep    float64 // vertical gap between rows
	Sweeps     int     // barycenter sweeps (each one down and one up)
}

// DefaultOptions returns 220×150 boxes separated by 100 in both directions.
func DefaultOptions() Options {
	return Options{NodeWidth: 220, NodeHeight: 150, NodeSep: 100, RankSep: 100, Sweeps: 8}
}

// Layered is a top-to-bottom layered layout: rows by longest path, row order
// by barycenter sweeps refined with adjacent swaps, then fixed-size boxes
// centred on the widest row. Edges whose endpoints are not both nodes are
// ignored for placement. Cycles are broken by reversing back edges.
type Layered struct {
	Options Options
}

// NewLayered returns a Layered engine with [DefaultOptions].
func NewLayered() *Layered { return &Layered{Options: DefaultOptions()} }

// Layout implements [Layouter].
func (l *Layered) Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge) ([]graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := l.Options
	if opts == (Options{}) {
		opts = DefaultOptions()
	}

	g, err := buildLayerGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	transform.Reverse(g, transform.BreakCycles(g))
	transform.AssignLayers(g)
	transform.Subdivide(g)

	rows, err := orderRows(ctx, g, opts.Sweeps)
	if err != nil {
		return nil, err
	}
	pos := place(g, rows, opts)

	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		p := pos[n.ID]
		n.Position = &p
		out[i] = n
	}
	return out, nil
}

func buildLayerGraph(nodes []graph.Node, edges []graph.Edge) (*dag.Graph, error) {
	g := dag.New()
	for _, n := range nodes {
		if err := g.AddNode(dag.Node{ID: n.ID}); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		// Dangling and self edges do not affect placement.
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
	return g, nil
}

// place converts row orders into top-left box positions.
func place(g *dag.Graph, rows [][]string, opts Options) map[string]graph.Position {
	width := func(id string) float64 {
		if n, ok := g.Node(id); ok && n.IsVirtual() {
			return 0
		}
		return opts.NodeWidth
	}
	rowWidth := make([]float64, len(rows))
	widest := 0.0
	for r, row := range rows {
		for i, id := range row {
			if i > 0 {
				rowWidth[r] += opts.NodeSep
			}
			rowWidth[r] += width(id)
		}
		widest = max(widest, rowWidth[r])
	}

	pos := make(map[string]graph.Position, g.NodeCount())
	for r, row := range rows {
		x := (widest - rowWidth[r]) / 2
		y := float64(r) * (opts.NodeHeight + opts.RankSep)
		for _, id := range row {
			pos[id] = graph.Position{X: x, Y: y}
			x += width(id) + opts.NodeSep
		}
	}
	return pos
}
