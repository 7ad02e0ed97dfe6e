package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aepplanner/pkg/cache"
	"github.com/matzehuels/aepplanner/pkg/export"
	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/layout"
	"github.com/matzehuels/aepplanner/pkg/observability"
	"github.com/matzehuels/aepplanner/pkg/project"
	"github.com/matzehuels/aepplanner/pkg/xdm"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no results; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// NewLayouter builds the engine for a run. Nil uses [layout.Layered].
	NewLayouter func(layout.Options) layout.Layouter
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Analyze reconstructs the field tree of a schema document. Failures carry
// code INVALID_SCHEMA.
func (r *Runner) Analyze(ctx context.Context, data []byte) (*xdm.Result, error) {
	hooks := observability.Analysis()
	hooks.OnAnalyzeStart(ctx, len(data))
	start := time.Now()

	res, err := xdm.AnalyzeBytes(data)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, "", 0, 0, time.Since(start), err)
		r.Logger.Debug("analysis failed", "err", err)
		return nil, err
	}
	hooks.OnAnalyzeComplete(ctx, res.Shape, len(res.Fields), len(res.Conflicts), time.Since(start), nil)

	r.Logger.Info("analyzed schema",
		"shape", res.Shape,
		"fields", len(res.Fields),
		"identities", res.Identities)
	for _, c := range res.Conflicts {
		r.Logger.Warn("shape conflict", "path", c.Path, "field", c.Field)
	}
	return res, nil
}

// Build derives the architecture graph of a project.
func (r *Runner) Build(ctx context.Context, st project.State) *graph.Graph {
	start := time.Now()
	g := graph.FromProject(st)
	observability.Graph().OnBuild(ctx, len(g.Nodes), len(g.Edges), time.Since(start))

	for _, ref := range project.Dangling(st) {
		r.Logger.Warn("dangling reference", "from", ref.From, "to", ref.To, "kind", ref.Kind)
	}
	return g
}

// Visualize builds the graph of a project and lays it out.
func (r *Runner) Visualize(ctx context.Context, st project.State, opts Options) (*Result, error) {
	start := time.Now()
	g := r.Build(ctx, st)
	res := &Result{
		Stats: Stats{
			NodeCount: len(g.Nodes),
			EdgeCount: len(g.Edges),
			Dangling:  len(g.DanglingEdges()),
			BuildTime: time.Since(start),
		},
	}

	start = time.Now()
	laid, hit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Graph = laid
	res.Topology = Topology(g)
	res.Stats.LayoutTime = time.Since(start)
	res.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"cached", hit,
		"duration", res.Stats.LayoutTime)
	return res, nil
}

// LayoutWithCacheInfo positions the nodes of g, consulting the cache first.
// It returns a copy of g; the input is not modified.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, bool, error) {
	opts = opts.withDefaults()
	key := r.Keyer.LayoutKey(Topology(g), opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var p positions
			if json.Unmarshal(data, &p) == nil {
				if nodes, ok := p.apply(g.Nodes); ok {
					cacheHooks.OnCacheHit(ctx, "layout")
					return g.WithNodes(nodes), true, nil
				}
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Graph()
	hooks.OnLayoutStart(ctx, EngineLayered, len(g.Nodes))
	start := time.Now()
	nodes, err := r.layouter(opts.Layout).Layout(ctx, g.Nodes, g.Edges)
	hooks.OnLayoutComplete(ctx, EngineLayered, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(positionsOf(nodes)); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return g.WithNodes(nodes), false, nil
}

// Layout is [Runner.LayoutWithCacheInfo] without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, error) {
	out, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return out, err
}

// Export serializes g. Image formats go through Graphviz and are cached by
// the full graph content; text formats are cheap and computed directly.
func (r *Runner) Export(ctx context.Context, g *graph.Graph, f export.Format, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	hooks := observability.Graph()
	hooks.OnExportStart(ctx, string(f))
	start := time.Now()

	data, err := r.export(ctx, g, f, opts)
	hooks.OnExportComplete(ctx, string(f), len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", f, err)
	}
	r.Logger.Debug("exported graph", "format", f, "bytes", len(data))
	return data, nil
}

func (r *Runner) export(ctx context.Context, g *graph.Graph, f export.Format, opts Options) ([]byte, error) {
	switch f {
	case export.FormatSVG, export.FormatPNG, export.FormatPDF:
	default:
		return export.Export(ctx, g, f)
	}

	content, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ExportKey(cache.Hash(content), string(f))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "export")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "export")
	}

	data, err := export.Export(ctx, g, f)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) layouter(opts layout.Options) layout.Layouter {
	if r.NewLayouter != nil {
		return r.NewLayouter(opts)
	}
	return &layout.Layered{Options: opts}
}
