package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/export"
)

// exportCommand creates the export command for writing the graph in a
// diagram or interchange format.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatStr string
		output    string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Export the architecture graph as Mermaid, DOT, SVG, PNG, PDF or JSON",
		Long: `Export the architecture graph as Mermaid, DOT, SVG, PNG, PDF or JSON.

Mermaid and DOT list nodes and edges in flow order. SVG is rendered from
DOT with Graphviz; PNG and PDF additionally need rsvg-convert on PATH.
Text formats print to stdout unless --output is given; images are written
next to the project file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatStr == "" {
				formatStr = c.Config.Export.Format
			}
			f, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), c.projectPath(args), f, output, refresh)
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format: mermaid (default), dot, svg, png, pdf, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the layout even if cached")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(export.Formats))
		for i, f := range export.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runExport builds the graph of the project and writes it in format f.
func (c *CLI) runExport(ctx context.Context, path string, f export.Format, output string, refresh bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.visualize(ctx, runner, path, refresh)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if f.IsBinary() || f == export.FormatSVG {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", f))
		spinner.Start()
	}

	data, err := runner.Export(ctx, res.Graph, f, c.pipelineOptions(refresh))
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Export failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}

	if output == "" && !f.IsBinary() && f != export.FormatSVG {
		_, err := os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = derivedPath(path, f.Ext())
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Exported %s", f)
	printFile(output)
	return nil
}

// derivedPath replaces the extension of the project path with ext.
func derivedPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
