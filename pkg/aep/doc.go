// Package aep imports entities from Adobe Experience Platform API payloads.
//
// Schema Registry responses become [model.Schema] values and Catalog
// responses become [model.Dataset] values. Classification is heuristic, the
// same rules the planner UI applies to pasted JSON:
//
//   - a document with "title" and either "$id" or "meta" is a schema
//   - a document with "name" and "schemaRef" is a dataset
//
// Schemas take their id from "$id" (or "id"), are profile enabled when
// meta.immutableTags contains "union" or the title mentions "profile", and
// keep at most [MaxFields] flattened fields. Datasets point at schemaRef.id,
// a string schemaRef, or "unknown".
//
// Attribute lookups use ojg JSONPath expressions; field flattening reuses
// the xdm extractor so key order follows the document.
//
//	b, err := aep.MapBundle(data)
//	if err != nil {
//	    return err
//	}
//	st = aep.Apply(st, b)
package aep
