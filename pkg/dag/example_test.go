package dag_test

import (
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/dag"
)

func ExampleGraph() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "dstr_web", Row: 0})
	_ = g.AddNode(dag.Node{ID: "ds_web_stream", Row: 1})
	_ = g.AddNode(dag.Node{ID: "schema_web_events", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "dstr_web", To: "ds_web_stream"})
	_ = g.AddEdge(dag.Edge{From: "ds_web_stream", To: "schema_web_events"})

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	fmt.Println("rows:", g.Rows())
	fmt.Println("valid:", g.Validate() == nil)
	// Output:
	// nodes: 3
	// edges: 2
	// rows: [[dstr_web] [ds_web_stream] [schema_web_events]]
	// valid: true
}

func ExampleCountLayerCrossings() {
	g := dag.New()
	for _, id := range []string{"web", "mobile", "ds_web", "ds_mobile"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "web", To: "ds_web"})
	_ = g.AddEdge(dag.Edge{From: "mobile", To: "ds_mobile"})

	fmt.Println(dag.CountLayerCrossings(g, []string{"web", "mobile"}, []string{"ds_mobile", "ds_web"}))
	fmt.Println(dag.CountLayerCrossings(g, []string{"web", "mobile"}, []string{"ds_web", "ds_mobile"}))
	// Output:
	// 1
	// 0
}
