package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/aep"
	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/project"
)

// importCommand creates the import command for merging AEP API payloads
// into a project.
func (c *CLI) importCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <aep.json|->",
		Short: "Merge Schema Registry and Catalog payloads into a project",
		Long: `Merge Schema Registry and Catalog payloads into a project.

Accepts a single schema or dataset document, an array of them, a
{"schemas": [...], "datasets": [...]} bundle or a Catalog listing keyed by
dataset id. Entities replace existing ones with the same id; documents
that are neither schemas nor datasets are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			b, err := aep.MapBundle(data)
			if err != nil {
				return err
			}
			if b.Skipped > 0 {
				printWarning("skipped %d unrecognized document(s)", b.Skipped)
			}
			if b.Len() == 0 {
				printInfo("Nothing to import")
				return nil
			}

			path := c.projectPath(nil)
			if dryRun {
				printSuccess("Would import %d schemas and %d datasets into %s", len(b.Schemas), len(b.Datasets), path)
				return nil
			}
			err = c.editProject(nil, func(st project.State) (project.State, error) {
				return aep.Apply(st, b), nil
			})
			if err != nil {
				return err
			}
			printSuccess("Imported %d schemas and %d datasets", len(b.Schemas), len(b.Datasets))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "map the payload without writing the project")
	return cmd
}
