// Package model defines the entity model shared by the graph and
// schema-reviewer pipelines.
//
// # Entities
//
//   - [Schema]: a named record definition with a class tag and a
//     profile-enablement flag
//   - [Dataset]: a named storage target referencing at most one Schema
//   - [IngestNode]: a data-entry source writing into zero or more Datasets
//   - [ProfileStore]: the synthetic Unified Profile, materialized by the
//     graph builder only when a Dataset resolves to a profile-enabled Schema
//
// # References
//
// Entities never own each other. Every relationship is an opaque id that is
// resolved at graph-build time with linear lookups such as [FindSchema].
// Unresolved ids are legal: deleting a Schema that a Dataset still points at
// leaves a dangling reference rather than an error.
package model
