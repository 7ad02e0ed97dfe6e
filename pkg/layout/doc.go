// Package layout positions architecture graph nodes for display.
//
// The graph pipeline only needs the [Layouter] contract: nodes and edges in,
// the same nodes with a [graph.Position] out. [Layered] is the built-in
// engine:
//
//  1. Known nodes and the edges between them go into a [dag.Graph];
//     dangling edges are skipped.
//  2. Back edges are reversed so the graph is acyclic.
//  3. Rows are assigned by longest path, so edges point downwards.
//  4. Long edges get virtual nodes; row order is improved by barycenter
//     sweeps and adjacent swaps, scored with [dag.CountCrossings].
//  5. Every entity gets a fixed 220×150 box, 100 apart horizontally and
//     vertically, each row centred on the widest one.
//
// The result depends only on the node and edge order it is given.
//
// [dag.Graph]: github.com/matzehuels/aepplanner/pkg/dag
// [dag.CountCrossings]: github.com/matzehuels/aepplanner/pkg/dag
package layout
