// Package pipeline ties the planner stages together for the CLI and the API
// server.
//
// A [Runner] owns the cache, keyer and logger and runs three stages:
//
//  1. Analyze: reconstruct the field tree of a schema document
//  2. Visualize: derive the architecture graph of a project and lay it out
//  3. Export: serialize a graph as Mermaid, DOT, SVG, PNG, PDF or JSON
//
// Layouts and rendered images are cached under content-addressed keys, so
// editing the project invalidates them without explicit eviction. Every
// stage reports to the observability hooks.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Visualize(ctx, st, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	svg, err := runner.Export(ctx, res.Graph, export.FormatSVG, pipeline.Options{})
package pipeline

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/matzehuels/aepplanner/pkg/cache"
	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/layout"
)

// EngineLayered names the built-in layout engine in cache keys.
const EngineLayered = "layered"

// Options configures a pipeline run. The zero value uses layout defaults
// and [cache.DefaultTTL].
type Options struct {
	Layout layout.Options `json:"layout"`

	// Refresh recomputes results even when cached; fresh results are
	// still written back.
	Refresh bool `json:"refresh,omitempty"`

	// TTL is how long results stay cached.
	TTL time.Duration `json:"-"`
}

func (o Options) withDefaults() Options {
	if o.Layout == (layout.Options{}) {
		o.Layout = layout.DefaultOptions()
	}
	if o.TTL <= 0 {
		o.TTL = cache.DefaultTTL
	}
	return o
}

// LayoutKeyOpts returns the layout options that enter the cache key.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l := o.withDefaults().Layout
	return cache.LayoutKeyOpts{
		Engine:     EngineLayered,
		NodeWidth:  l.NodeWidth,
		NodeHeight: l.NodeHeight,
		NodeSep:    l.NodeSep,
		RankSep:    l.RankSep,
		Sweeps:     l.Sweeps,
	}
}

// Result is the outcome of [Runner.Visualize].
type Result struct {
	// Graph carries the derived nodes with positions set.
	Graph *graph.Graph

	// Topology is the hash of node ids and edge endpoints, the only inputs
	// that change positions.
	Topology string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Dangling   int
	BuildTime  time.Duration
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	LayoutHit bool
}

// Topology hashes the parts of g that determine a layout: node ids in
// order and edge endpoints sorted. Labels and details do not enter.
func Topology(g *graph.Graph) string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	edges := make([][2]string, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = [2]string{e.Source, e.Target}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	data, _ := json.Marshal(struct {
		Nodes []string    `json:"nodes"`
		Edges [][2]string `json:"edges"`
	}{ids, edges})
	return cache.Hash(data)
}

// positions is the cached layout payload.
type positions map[string]graph.Position

func positionsOf(nodes []graph.Node) positions {
	p := make(positions, len(nodes))
	for _, n := range nodes {
		if n.Position != nil {
			p[n.ID] = *n.Position
		}
	}
	return p
}

// apply returns nodes with positions from p. It reports false when any
// node is missing, which happens only for corrupt entries.
func (p positions) apply(nodes []graph.Node) ([]graph.Node, bool) {
	out := make([]graph.Node, len(nodes))
	for i, n := range nodes {
		pos, ok := p[n.ID]
		if !ok {
			return nil, false
		}
		n.Position = &pos
		out[i] = n
	}
	return out, true
}
