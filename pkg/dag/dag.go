package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] for an empty id.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when the id is taken.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when From is not a node.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when To is not a node.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] for an edge from a node to itself.
	ErrSelfLoop = errors.New("self loop")

	// ErrNonConsecutiveRows is returned by [Graph.Validate] when an edge skips
	// or climbs rows. Run transform.Subdivide first.
	ErrNonConsecutiveRows = errors.New("edges must connect consecutive rows")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a directed cycle exists.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes entity nodes from nodes added by the layout.
type NodeKind int

const (
	// NodeKindEntity is a node taken from the architecture graph.
	NodeKindEntity NodeKind = iota
	// NodeKindVirtual is a bend point inserted on an edge that spans rows.
	NodeKindVirtual
)

// Node is a vertex with a row (layer) assignment.
type Node struct {
	ID   string
	Row  int
	Kind NodeKind

	// Origin is the source node of the edge a virtual node was inserted on.
	Origin string
}

// IsVirtual reports whether the node was inserted by the layout.
func (n Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Edge is a directed edge.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph laid out in rows.
//
// Every enumeration (Nodes, Edges, Children, Parents, NodesInRow, Sources)
// follows insertion order, so algorithms built on it are deterministic.
// The zero value is not usable; call [New].
type Graph struct {
	order    []*Node
	index    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.index[n.ID]; ok {
		return ErrDuplicateNodeID
	}
	node := &n
	g.index[n.ID] = node
	g.order = append(g.order, node)
	return nil
}

// AddEdge adds a directed edge between existing nodes. Repeated edges are
// ignored.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.index[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	if slices.Contains(g.outgoing[e.From], e.To) {
		return nil
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the edge from→to if present.
func (g *Graph) RemoveEdge(from, to string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// Node returns the node with the given id. The pointer refers to the node
// stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of id's outgoing edges. Read only.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of id's incoming edges. Read only.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges of id.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges of id.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns nodes without incoming edges.
func (g *Graph) Sources() []*Node {
	var out []*Node
	for _, n := range g.order {
		if len(g.incoming[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// SetRows assigns rows. Nodes missing from rows keep their current row.
func (g *Graph) SetRows(rows map[string]int) {
	for _, n := range g.order {
		if r, ok := rows[n.ID]; ok {
			n.Row = r
		}
	}
}

// NodesInRow returns the nodes of row r in insertion order.
func (g *Graph) NodesInRow(r int) []*Node {
	var out []*Node
	for _, n := range g.order {
		if n.Row == r {
			out = append(out, n)
		}
	}
	return out
}

// MaxRow returns the highest row, or 0 for an empty graph.
func (g *Graph) MaxRow() int {
	maxRow := 0
	for _, n := range g.order {
		maxRow = max(maxRow, n.Row)
	}
	return maxRow
}

// Rows returns node ids grouped by row, from row 0 to [Graph.MaxRow].
// Empty rows are kept so that index i is row i.
func (g *Graph) Rows() [][]string {
	if len(g.order) == 0 {
		return nil
	}
	rows := make([][]string, g.MaxRow()+1)
	for _, n := range g.order {
		rows[n.Row] = append(rows[n.Row], n.ID)
	}
	return rows
}

// Validate reports [ErrGraphHasCycle] for cyclic graphs and
// [ErrNonConsecutiveRows] when an edge does not go exactly one row down.
func (g *Graph) Validate() error {
	if g.hasCycle() {
		return ErrGraphHasCycle
	}
	for _, e := range g.edges {
		if g.index[e.To].Row != g.index[e.From].Row+1 {
			return ErrNonConsecutiveRows
		}
	}
	return nil
}

func (g *Graph) hasCycle() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.order))
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, c := range g.outgoing[id] {
			switch color[c] {
			case gray:
				return true
			case white:
				if visit(c) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}
	for _, n := range g.order {
		if color[n.ID] == white && visit(n.ID) {
			return true
		}
	}
	return false
}

// PosMap maps each id to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
