package transform

import (
	"errors"
	"testing"

	"github.com/matzehuels/aepplanner/pkg/dag"
)

func build(ids []string, edges [][2]string) *dag.Graph {
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		edges     [][2]string
		removed   int
		remaining int
	}{
		{"no cycles", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0, 2},
		{"two node cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1, 2},
		{"two cycles", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}}, 2, 2},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, 0, 4},
		{"empty", nil, nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(tt.ids, tt.edges)
			back := BreakCycles(g)
			if len(back) != tt.removed {
				t.Errorf("BreakCycles() removed %d edges, want %d", len(back), tt.removed)
			}
			if g.EdgeCount() != tt.remaining {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.remaining)
			}
			if len(BreakCycles(g)) != 0 {
				t.Error("graph still cyclic after BreakCycles()")
			}
		})
	}
}

func TestReverseKeepsEdgesAcyclic(t *testing.T) {
	g := build([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}})
	Reverse(g, BreakCycles(g))
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
	AssignLayers(g)
	Subdivide(g)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestAssignLayersLongestPath(t *testing.T) {
	g := build([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"d", "c"}})
	AssignLayers(g)
	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 0}
	for id, row := range want {
		n, _ := g.Node(id)
		if n.Row != row {
			t.Errorf("row(%s) = %d, want %d", id, n.Row, row)
		}
	}
}

func TestSubdivideMakesEdgesConsecutive(t *testing.T) {
	g := build([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "d"}})
	AssignLayers(g)
	if err := g.Validate(); !errors.Is(err, dag.ErrNonConsecutiveRows) {
		t.Fatalf("Validate() before = %v, want ErrNonConsecutiveRows", err)
	}
	if added := Subdivide(g); added != 2 {
		t.Errorf("Subdivide() = %d, want 2", added)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after = %v", err)
	}
	for _, n := range g.Nodes() {
		if n.IsVirtual() && n.Origin != "a" {
			t.Errorf("virtual %s origin = %q, want a", n.ID, n.Origin)
		}
	}
}
