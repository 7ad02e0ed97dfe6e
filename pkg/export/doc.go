// Package export serializes architecture graphs into shareable notations.
//
// # Text Notations
//
// [Mermaid] and [DOT] are pure functions of a [graph.Graph]. Both enumerate
// nodes and edges in the graph's own order, so the text matches the drawn
// graph line for line:
//
//	g := graph.FromProject(st)
//	fmt.Print(export.Mermaid(g))
//
// # Images
//
// [RenderSVG] lays out DOT with the embedded Graphviz (WASM) engine, so no
// system Graphviz is needed. [ToPNG] and [ToPDF] convert that SVG with
// rsvg-convert from librsvg.
//
// # Formats
//
// [Export] dispatches on a [Format]: mermaid, dot, svg, png, pdf or json
// (the graph wire format).
package export
