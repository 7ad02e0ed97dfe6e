package graph

import (
	"fmt"

	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/project"
)

// Build derives the architecture graph from the three entity collections.
//
// Nodes are emitted as all ingest nodes, then all datasets, then all
// schemas, then the Unified Profile when at least one dataset resolves to a
// profile-enabled schema. While datasets are emitted their edges follow:
// one IngestNode→Dataset edge per ingest node targeting the dataset, then a
// Dataset→Schema edge when the dataset names a schema. Profile edges come
// last, one per qualifying dataset.
//
// Ids derive from entity ids only, so equal input yields equal output.
// Dangling schema ids still produce their edge. Build never fails and does
// not modify its arguments.
func Build(schemas []model.Schema, datasets []model.Dataset, ingest []model.IngestNode) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(ingest)+len(datasets)+len(schemas)+1),
		Edges: []Edge{},
	}

	for _, in := range ingest {
		g.Nodes = append(g.Nodes, Node{
			ID:      in.ID,
			Kind:    KindIngest,
			Label:   fmt.Sprintf("%s (%s)", in.Name, in.Type),
			Details: in,
		})
	}

	var profiled []model.Dataset
	for _, d := range datasets {
		g.Nodes = append(g.Nodes, Node{ID: d.ID, Kind: KindDataset, Label: d.Name, Details: d})

		enabled := model.ProfileEnabled(schemas, d)
		if enabled {
			profiled = append(profiled, d)
		}
		style := StyleDefault
		if enabled {
			style = StyleProfile
		}
		for _, in := range ingest {
			if in.Targets(d.ID) {
				g.Edges = append(g.Edges, Edge{ID: EdgeID(in.ID, d.ID), Source: in.ID, Target: d.ID, Style: style})
			}
		}
		if d.SchemaID != "" {
			g.Edges = append(g.Edges, Edge{
				ID:     EdgeID(d.ID, d.SchemaID),
				Source: d.ID,
				Target: d.SchemaID,
				Style:  StyleDefinedBy,
				Label:  LabelDefinedBy,
			})
		}
	}

	for _, s := range schemas {
		g.Nodes = append(g.Nodes, Node{ID: s.ID, Kind: KindSchema, Label: s.Name, Details: s})
	}

	if len(profiled) > 0 {
		p := model.UnifiedProfile()
		g.Nodes = append(g.Nodes, Node{ID: p.ID, Kind: KindProfile, Label: p.Name, Details: p})
		for _, d := range profiled {
			g.Edges = append(g.Edges, Edge{ID: EdgeID(d.ID, p.ID), Source: d.ID, Target: p.ID, Style: StyleProfile})
		}
	}
	return g
}

// FromProject is [Build] over a project snapshot.
func FromProject(st project.State) *Graph {
	return Build(st.Schemas, st.Datasets, st.IngestNodes)
}
