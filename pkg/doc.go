// Package pkg provides the core libraries of aepplanner, a planner for
// Adobe Experience Platform data architectures.
//
// # Overview
//
// aepplanner does two things. It reviews XDM schema exports by rebuilding
// their field tree, and it draws how data flows from ingestion sources
// through datasets and schemas into the Unified Profile. The pkg directory
// is organized by stage:
//
//  1. [xdm] - schema analysis (field extraction, identity descriptors, tree reconstruction)
//  2. [model], [project] - planner entities and immutable project snapshots
//  3. [graph], [layout], [dag] - graph derivation and layered positioning
//  4. [export] - Mermaid, DOT, SVG, PNG, PDF and JSON output
//  5. [aep] - Schema Registry and Catalog payload import
//  6. [pipeline] - orchestration with caching, shared by CLI and server
//  7. [cache], [observability], [errors], [httputil], [server] - infrastructure
//
// # Architecture
//
// Schema review:
//
//	schema export (single object or mixin array)
//	         ↓
//	    [xdm.Analyze] (extract fields, apply descriptors, reconstruct)
//	         ↓
//	    field tree → text, JSON or interactive viewer
//
// Architecture graph:
//
//	project file or AEP payloads ([project], [aep])
//	         ↓
//	    [graph.Build] (nodes and edges in flow order)
//	         ↓
//	    [layout.Layered] (rows by longest path, crossing reduction)
//	         ↓
//	    [export] (Mermaid, DOT, SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	res, err := xdm.Analyze(schemaJSON)
//	if err != nil {
//	    return err // code INVALID_SCHEMA, message "invalid schema format"
//	}
//	xdm.Render(os.Stdout, res.Root, nil)
//
//	st, _ := project.ReadFile("retail.yaml")
//	runner := pipeline.NewRunner(nil, nil, logger)
//	out, _ := runner.Visualize(ctx, st, pipeline.Options{})
//	mermaid := export.Mermaid(out.Graph)
//
// # Caching
//
// [pipeline.Runner] caches layouts keyed by graph topology, and rendered
// images keyed by graph content. Backends are files ([cache.FileCache]),
// Redis ([cache.RedisCache]) or none ([cache.NullCache]).
package pkg
