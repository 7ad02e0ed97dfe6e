package project

import (
	"slices"

	"github.com/matzehuels/aepplanner/pkg/model"
)

// State is an immutable snapshot of a project. The zero value is an empty
// project.
type State struct {
	Schemas     []model.Schema     `json:"schemas" toml:"schemas" yaml:"schemas"`
	Datasets    []model.Dataset    `json:"datasets" toml:"datasets" yaml:"datasets"`
	IngestNodes []model.IngestNode `json:"ingestNodes" toml:"ingestNodes" yaml:"ingestNodes"`
}

// Load returns a state holding the given collections. Nil collections become
// empty ones. The slices are copied.
func Load(st State) State {
	return State{
		Schemas:     cloneOrEmpty(st.Schemas),
		Datasets:    cloneOrEmpty(st.Datasets),
		IngestNodes: cloneOrEmpty(st.IngestNodes),
	}
}

// Empty reports whether the project has no entities.
func (s State) Empty() bool {
	return len(s.Schemas) == 0 && len(s.Datasets) == 0 && len(s.IngestNodes) == 0
}

// =============================================================================
// Schema commands
// =============================================================================

// AddSchema appends a schema.
func (s State) AddSchema(v model.Schema) State {
	s.Schemas = appendCopy(s.Schemas, v)
	return s
}

// UpdateSchema replaces the schema with v's id. Unknown ids are ignored.
func (s State) UpdateSchema(v model.Schema) State {
	s.Schemas = replace(s.Schemas, v, func(x model.Schema) bool { return x.ID == v.ID })
	return s
}

// DeleteSchema removes the schema with the given id. Datasets that use it
// keep their reference.
func (s State) DeleteSchema(id string) State {
	s.Schemas = remove(s.Schemas, func(x model.Schema) bool { return x.ID == id })
	return s
}

// =============================================================================
// Dataset commands
// =============================================================================

// AddDataset appends a dataset.
func (s State) AddDataset(v model.Dataset) State {
	s.Datasets = appendCopy(s.Datasets, v)
	return s
}

// UpdateDataset replaces the dataset with v's id. Unknown ids are ignored.
func (s State) UpdateDataset(v model.Dataset) State {
	s.Datasets = replace(s.Datasets, v, func(x model.Dataset) bool { return x.ID == v.ID })
	return s
}

// DeleteDataset removes the dataset with the given id. Ingest nodes that
// target it keep their reference.
func (s State) DeleteDataset(id string) State {
	s.Datasets = remove(s.Datasets, func(x model.Dataset) bool { return x.ID == id })
	return s
}

// =============================================================================
// Ingest node commands
// =============================================================================

// AddIngestNode appends an ingestion source.
func (s State) AddIngestNode(v model.IngestNode) State {
	s.IngestNodes = appendCopy(s.IngestNodes, v)
	return s
}

// UpdateIngestNode replaces the ingest node with v's id. Unknown ids are ignored.
func (s State) UpdateIngestNode(v model.IngestNode) State {
	s.IngestNodes = replace(s.IngestNodes, v, func(x model.IngestNode) bool { return x.ID == v.ID })
	return s
}

// DeleteIngestNode removes the ingest node with the given id.
func (s State) DeleteIngestNode(id string) State {
	s.IngestNodes = remove(s.IngestNodes, func(x model.IngestNode) bool { return x.ID == id })
	return s
}

// Delete removes the entity with the given id from whichever collection
// holds it and reports whether anything was removed.
func (s State) Delete(id string) (State, bool) {
	switch {
	case slices.ContainsFunc(s.Schemas, func(x model.Schema) bool { return x.ID == id }):
		return s.DeleteSchema(id), true
	case slices.ContainsFunc(s.Datasets, func(x model.Dataset) bool { return x.ID == id }):
		return s.DeleteDataset(id), true
	case slices.ContainsFunc(s.IngestNodes, func(x model.IngestNode) bool { return x.ID == id }):
		return s.DeleteIngestNode(id), true
	}
	return s, false
}

// =============================================================================
// Copy-on-write helpers
// =============================================================================

func appendCopy[T any](xs []T, v T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, v)
}

func replace[T any](xs []T, v T, match func(T) bool) []T {
	out := slices.Clone(xs)
	for i := range out {
		if match(out[i]) {
			out[i] = v
		}
	}
	return out
}

func remove[T any](xs []T, match func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if !match(x) {
			out = append(out, x)
		}
	}
	return out
}

func cloneOrEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return slices.Clone(xs)
}
