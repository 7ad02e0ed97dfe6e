package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/xdm"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	interactive bool // browse the tree in a terminal viewer
	jsonOut     bool // print the reconstructed tree as JSON
	expand      bool // expand every node in the text output
	output      string
}

// analyzeCommand creates the analyze command for reviewing schema exports.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Reconstruct the field tree of an XDM schema export",
		Long: `Reconstruct the field tree of an XDM schema export.

The input is either a single schema object with a "properties" tree or a
Schema Registry export array of mixins and descriptors. Fields are
extracted, identity descriptors are applied and the tree is rebuilt from
the dotted field paths. Reads stdin when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) > 0 {
				input = args[0]
			}
			return c.runAnalyze(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the tree interactively")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&opts.expand, "expand", false, "expand all nodes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to file instead of stdout")

	return cmd
}

// runAnalyze reads the schema, analyzes it and prints the result.
func (c *CLI) runAnalyze(ctx context.Context, input string, opts analyzeOpts) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Analyze(ctx, data)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %s: %d fields, %d identities", res.Shape, len(res.Fields), res.Identities))

	for _, cf := range res.Conflicts {
		printWarning("%s", cf)
	}

	if opts.interactive {
		_, err := tea.NewProgram(newTreeModel(res.Root), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	}

	w, closeFn, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeFn()

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Root)
	}

	state := &xdm.ExpansionState{}
	if opts.expand {
		state.ExpandAll(res.Root)
	}
	return xdm.Render(w, res.Root, state)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// openOutput returns a writer for path, or stdout when path is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
