// Package xdm reconstructs annotated field trees from XDM schema documents.
//
// # Overview
//
// Schema exports come in two shapes. A single JSON-Schema-like object carries
// its fields under "properties". An array export carries "mixin" fragments,
// each contributing custom fields under tenant-namespaced paths
// (definitions.customFields.properties.<tenant>.properties), alongside
// descriptor records that mark some of those paths as identities.
//
// [Analyze] turns either shape into one canonical tree:
//
//	res, err := xdm.Analyze(text)
//	if err != nil {
//	    // errors.Is(err, xdm.ErrParse) or errors.Is(err, xdm.ErrUnrecognizedShape)
//	}
//	fmt.Println(res.Root.Properties.Len())
//
// The pipeline has four stages, each usable on its own:
//
//   - [Classify] decides the input shape once ([SingleSchema] or [MixinArray])
//   - [Extract] flattens the document into ordered [Field] records
//   - [Annotate] applies identity descriptors to the extracted fields
//   - [Reconstruct] rebuilds a nested [Node] tree from the field paths
//
// # Ordering
//
// Object keys are visited in document order, not alphabetically. Parsing goes
// through gjson, which iterates objects as written, and tree properties are
// kept in ordered maps so sibling order follows first occurrence.
//
// # Rendering
//
// [KindOf], [Children], [Enum], [IsIdentity] and [ExpansionState] describe
// how a tree is traversed for display. [Render] writes a plain-text view.
package xdm
