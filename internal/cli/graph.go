package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/pipeline"
	"github.com/matzehuels/aepplanner/pkg/project"
)

// graphCommand creates the graph command for deriving the architecture graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "graph [project]",
		Short: "Derive and lay out the architecture graph of a project",
		Long: `Derive and lay out the architecture graph of a project.

Ingestion sources, datasets and schemas become nodes connected in flow
order. Datasets bound to a profile-enabled schema also feed the Unified
Profile. The positioned graph is written as JSON; positions are cached by
graph topology so renames reuse the previous layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), c.projectPath(args), output, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <project>.graph.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the layout even if cached")

	return cmd
}

// runGraph builds the graph for the project at path and writes it.
func (c *CLI) runGraph(ctx context.Context, path, output string, refresh bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.visualize(ctx, runner, path, refresh)
	if err != nil {
		return err
	}

	if output == "" {
		output = derivedPath(path, ".graph.json")
	}
	if err := graph.WriteGraphFile(res.Graph, output); err != nil {
		return err
	}

	printSuccess("Graph built")
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.LayoutHit)
	if res.Graph.CountKind(graph.KindProfile) > 0 {
		printDetail("%s fed by %d profile-enabled dataset(s)", model.UnifiedProfileName, countProfileEdges(res.Graph))
	}
	if res.Stats.Dangling > 0 {
		printWarning("%d edge(s) point to missing entities", res.Stats.Dangling)
	}
	printFile(output)
	printNewline()
	printNextStep("Export as Mermaid", fmt.Sprintf("%s export %s -f mermaid", appName, path))
	return nil
}

// visualize loads the project and runs the build and layout stages.
func (c *CLI) visualize(ctx context.Context, runner *pipeline.Runner, path string, refresh bool) (*pipeline.Result, error) {
	st, err := project.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := project.Validate(st); err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)
	res, err := runner.Visualize(ctx, st, c.pipelineOptions(refresh))
	if err != nil {
		return nil, fmt.Errorf("visualize: %w", err)
	}
	prog.done(fmt.Sprintf("Built graph with %d nodes", res.Stats.NodeCount))
	return res, nil
}

func countProfileEdges(g *graph.Graph) int {
	n := 0
	for _, e := range g.Edges {
		if e.Target == model.UnifiedProfileID {
			n++
		}
	}
	return n
}
