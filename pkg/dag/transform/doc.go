// Package transform prepares a [dag.Graph] for layered layout.
//
// The layout engine applies the steps in this order:
//
//	back := transform.BreakCycles(g) // drop back edges
//	transform.Reverse(g, back)       // keep them, pointing down
//	transform.AssignLayers(g)        // longest-path rows
//	transform.Subdivide(g)           // virtual nodes on long edges
//
// After these steps the graph passes [dag.Graph.Validate].
//
// # Cycle Breaking
//
// Architecture models are not supposed to be cyclic, but nothing prevents a
// user from wiring one. [BreakCycles] removes the back edges found by a
// depth-first search so layering always terminates.
//
// # Layer Assignment
//
// [AssignLayers] places each node one row below its deepest parent. Ingest
// sources therefore sit above the datasets they feed, which sit above their
// schemas and the Unified Profile.
//
// # Edge Subdivision
//
// [Subdivide] splits an edge spanning several rows into single-row hops
// through virtual nodes, which the crossing counters need.
package transform
