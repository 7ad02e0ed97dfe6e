// Package graph derives the architecture graph from a project's entities and
// defines its JSON wire format.
//
// # Derivation
//
// [Build] turns schemas, datasets and ingest nodes into an ordered node list
// and an ordered edge list:
//
//	ingest ──▶ dataset ──defined by──▶ schema
//	              │
//	              └──▶ unified_profile   (only for profile-enabled schemas)
//
// Nodes are emitted ingest first, then datasets, then schemas, then the
// synthetic Unified Profile. Edge ids have the form "e-<source>-<target>",
// so repeated builds of the same project produce identical ids and a layout
// cache keyed by ids stays valid.
//
// References are resolved at build time by linear lookup and never cached.
// A dataset naming a schema that does not exist still yields its
// Dataset→Schema edge; such edges are reported by [Graph.DanglingEdges].
//
// # Wire Format
//
//	{
//	  "nodes": [{"id": "dstr_web", "kind": "ingest", "label": "Main Website Stream (Datastream)",
//	             "details": {...}, "position": {"x": 0, "y": 0}}],
//	  "edges": [{"id": "e-dstr_web-ds_web_stream", "source": "dstr_web",
//	             "target": "ds_web_stream", "style": "profile"}]
//	}
//
// Details decode back into the entity type named by kind. Positions are
// present only after layout.
//
//	data, _ := graph.MarshalGraph(g)
//	g2, _ := graph.UnmarshalGraph(data)
//
// # Concurrency
//
// Build is a pure function. A Graph is a plain value and safe for concurrent
// reads.
package graph
