// Package dag provides the layered graph used to lay out architecture
// diagrams.
//
// # Overview
//
// The layout engine places every node of an architecture graph on a
// horizontal row so that edges flow top to bottom. This package holds that
// intermediate structure: nodes with a row assignment, directed edges, and
// the crossing counts that the ordering heuristics minimise.
//
// Unlike the architecture graph itself, a [Graph] only accepts edges between
// known nodes. Dangling references are dropped before a layout graph is
// built.
//
// # Basic Usage
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "dstr_web"})
//	_ = g.AddNode(dag.Node{ID: "ds_web_stream"})
//	_ = g.AddEdge(dag.Edge{From: "dstr_web", To: "ds_web_stream"})
//
// # Node Kinds
//
//   - [NodeKindEntity]: a node from the architecture graph
//   - [NodeKindVirtual]: a bend point inserted on an edge spanning several
//     rows, so that every edge joins consecutive rows
//
// # Determinism
//
// All enumerations follow insertion order. Given the same sequence of
// AddNode and AddEdge calls, every algorithm in this package and in
// [transform] produces the same result.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between
// consecutive rows with a Fenwick tree in O(E log V). [CountPairCrossings]
// scores a single adjacent swap.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation.
//
// [transform]: github.com/matzehuels/aepplanner/pkg/dag/transform
package dag
