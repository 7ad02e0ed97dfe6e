package project

import (
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/model"
)

// Reference is an id reference that does not resolve.
type Reference struct {
	From string `json:"from"` // id of the referring entity
	To   string `json:"to"`   // id that was not found
	Kind string `json:"kind"` // "schema" or "dataset"
}

func (r Reference) String() string {
	return fmt.Sprintf("%s -> %s (unknown %s)", r.From, r.To, r.Kind)
}

// Dangling lists unresolved Dataset→Schema, IngestNode→Schema and
// IngestNode→Dataset references, in entity order. Empty schema ids are not
// references and are skipped.
func Dangling(s State) []Reference {
	var out []Reference
	for _, d := range s.Datasets {
		if d.SchemaID == "" {
			continue
		}
		if _, ok := model.FindSchema(s.Schemas, d.SchemaID); !ok {
			out = append(out, Reference{From: d.ID, To: d.SchemaID, Kind: "schema"})
		}
	}
	for _, n := range s.IngestNodes {
		if n.SchemaID != "" {
			if _, ok := model.FindSchema(s.Schemas, n.SchemaID); !ok {
				out = append(out, Reference{From: n.ID, To: n.SchemaID, Kind: "schema"})
			}
		}
		for _, id := range n.TargetDatasetIDs {
			if _, ok := model.FindDataset(s.Datasets, id); !ok {
				out = append(out, Reference{From: n.ID, To: id, Kind: "dataset"})
			}
		}
	}
	return out
}

// Usage lists the ids of entities that reference id: datasets using a schema
// and ingest nodes using a schema or targeting a dataset.
func Usage(s State, id string) []string {
	var out []string
	for _, d := range s.Datasets {
		if d.SchemaID == id {
			out = append(out, d.ID)
		}
	}
	for _, n := range s.IngestNodes {
		if n.SchemaID == id || n.Targets(id) {
			out = append(out, n.ID)
		}
	}
	return out
}
