package transform_test

import (
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/dag"
	"github.com/matzehuels/aepplanner/pkg/dag/transform"
)

func ExampleAssignLayers() {
	g := dag.New()
	for _, id := range []string{"stream", "dataset", "schema", "profile"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "stream", To: "dataset"})
	_ = g.AddEdge(dag.Edge{From: "dataset", To: "schema"})
	_ = g.AddEdge(dag.Edge{From: "dataset", To: "profile"})

	transform.AssignLayers(g)
	fmt.Println(g.Rows())
	// Output:
	// [[stream] [dataset] [schema profile]]
}

func ExampleSubdivide() {
	g := dag.New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "c"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "c"})

	transform.AssignLayers(g)
	added := transform.Subdivide(g)
	fmt.Println("virtual nodes:", added)
	fmt.Println(g.Rows())
	fmt.Println("valid:", g.Validate() == nil)
	// Output:
	// virtual nodes: 1
	// [[a] [b a~c~1] [c]]
	// valid: true
}

func ExampleBreakCycles() {
	g := dag.New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "c"})
	_ = g.AddEdge(dag.Edge{From: "c", To: "a"})

	back := transform.BreakCycles(g)
	fmt.Println("removed:", back)
	fmt.Println("acyclic:", g.Validate() != dag.ErrGraphHasCycle)
	// Output:
	// removed: [{c a}]
	// acyclic: true
}
