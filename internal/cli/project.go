package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/project"
	"github.com/matzehuels/aepplanner/pkg/xdm"
)

// projectCommand creates the project command with its editing subcommands.
// Every edit reads the project file, applies one command and writes it back.
func (c *CLI) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, inspect, validate and edit project files",
	}

	cmd.AddCommand(c.projectSampleCommand())
	cmd.AddCommand(c.projectShowCommand())
	cmd.AddCommand(c.projectValidateCommand())
	cmd.AddCommand(c.projectAddSchemaCommand())
	cmd.AddCommand(c.projectAddDatasetCommand())
	cmd.AddCommand(c.projectAddIngestCommand())
	cmd.AddCommand(c.projectRemoveCommand())
	cmd.AddCommand(c.projectConvertCommand())

	return cmd
}

// =============================================================================
// Inspection
// =============================================================================

func (c *CLI) projectSampleCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "sample [project]",
		Short: "Write the demo project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.projectPath(args)
			if !force && fileExists(path) {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := project.WriteFile(project.Sample(), path); err != nil {
				return err
			}
			printSuccess("Sample project written")
			printFile(path)
			printNewline()
			printNextStep("Build its graph", fmt.Sprintf("%s graph %s", appName, path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) projectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project]",
		Short: "List the entities of a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := project.ReadFile(c.projectPath(args))
			if err != nil {
				return err
			}
			printProject(st)
			return nil
		},
	}
}

func (c *CLI) projectValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project]",
		Short: "Check ids, names and references",
		Long: `Check ids, names and references.

Invalid ids or names, duplicate ids and unknown ingest types are errors.
References to missing schemas or datasets are reported as warnings; they
are drawn as edges to nowhere.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.projectPath(args)
			st, err := project.ReadFile(path)
			if err != nil {
				return err
			}
			if err := project.Validate(st); err != nil {
				return err
			}
			refs := project.Dangling(st)
			for _, ref := range refs {
				printWarning("%s", ref)
			}
			printSuccess("%s is valid", path)
			printKeyValue("Schemas", fmt.Sprint(len(st.Schemas)))
			printKeyValue("Datasets", fmt.Sprint(len(st.Datasets)))
			printKeyValue("Ingest", fmt.Sprint(len(st.IngestNodes)))
			printKeyValue("Dangling", fmt.Sprint(len(refs)))
			return nil
		},
	}
}

// =============================================================================
// Editing
// =============================================================================

func (c *CLI) projectAddSchemaCommand() *cobra.Command {
	var (
		v    model.Schema
		from string
	)
	cmd := &cobra.Command{
		Use:   "add-schema [project]",
		Short: "Add a schema, optionally with fields from a schema export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.ID == "" {
				v.ID = newEntityID("schema")
			}
			if from != "" {
				data, err := readInput(from)
				if err != nil {
					return err
				}
				res, err := xdm.AnalyzeBytes(data)
				if err != nil {
					return err
				}
				v.Fields = xdm.ModelFields(res.Fields)
			}
			err := c.editProject(args, func(st project.State) (project.State, error) {
				return st.AddSchema(v), nil
			})
			if err == nil {
				printSuccess("Added schema %s (%d fields)", StyleHighlight.Render(v.ID), len(v.Fields))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&v.ID, "id", "", "schema id (default: generated)")
	cmd.Flags().StringVar(&v.Name, "name", "", "display name")
	cmd.Flags().StringVar(&v.Class, "class", "XDM Individual Profile", "XDM class")
	cmd.Flags().BoolVar(&v.IsProfileEnabled, "profile", false, "enable for the Unified Profile")
	cmd.Flags().StringVar(&from, "from", "", "read fields from a schema export (file or -)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *CLI) projectAddDatasetCommand() *cobra.Command {
	var v model.Dataset
	cmd := &cobra.Command{
		Use:   "add-dataset [project]",
		Short: "Add a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.ID == "" {
				v.ID = newEntityID("ds")
			}
			if v.Created == "" {
				v.Created = time.Now().Format(time.DateOnly)
			}
			err := c.editProject(args, func(st project.State) (project.State, error) {
				if v.SchemaID != "" {
					if _, ok := model.FindSchema(st.Schemas, v.SchemaID); !ok {
						printWarning("schema %s does not exist", v.SchemaID)
					}
				}
				return st.AddDataset(v), nil
			})
			if err == nil {
				printSuccess("Added dataset %s", StyleHighlight.Render(v.ID))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&v.ID, "id", "", "dataset id (default: generated)")
	cmd.Flags().StringVar(&v.Name, "name", "", "display name")
	cmd.Flags().StringVar(&v.SchemaID, "schema", "", "id of the schema defining the dataset")
	cmd.Flags().StringVar(&v.Created, "created", "", "creation date (default: today)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *CLI) projectAddIngestCommand() *cobra.Command {
	var (
		v        model.IngestNode
		typeName string
	)
	cmd := &cobra.Command{
		Use:   "add-ingest [project]",
		Short: "Add an ingestion source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseIngestType(typeName)
			if err != nil {
				return err
			}
			v.Type = t
			if v.ID == "" {
				v.ID = newEntityID("dstr")
			}
			err = c.editProject(args, func(st project.State) (project.State, error) {
				for _, id := range v.TargetDatasetIDs {
					if _, ok := model.FindDataset(st.Datasets, id); !ok {
						printWarning("dataset %s does not exist", id)
					}
				}
				return st.AddIngestNode(v), nil
			})
			if err == nil {
				printSuccess("Added ingest node %s", StyleHighlight.Render(v.ID))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&v.ID, "id", "", "ingest node id (default: generated)")
	cmd.Flags().StringVar(&v.Name, "name", "", "display name")
	cmd.Flags().StringVar(&typeName, "type", string(model.IngestDatastream), "source type: "+ingestTypeList())
	cmd.Flags().StringVar(&v.SchemaID, "schema", "", "id of the schema the source sends")
	cmd.Flags().StringSliceVarP(&v.TargetDatasetIDs, "target", "t", nil, "target dataset id (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *CLI) projectRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an entity by id from the --project file",
		Long: `Remove an entity by id.

References to the removed entity are kept and show up as dangling edges
until they are edited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var users []string
			err := c.editProject(nil, func(st project.State) (project.State, error) {
				next, ok := st.Delete(id)
				if !ok {
					return st, apperrors.New(apperrors.ErrCodeNotFound, "no entity with id %q", id)
				}
				users = project.Usage(st, id)
				return next, nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %s", StyleHighlight.Render(id))
			if len(users) > 0 {
				printWarning("still referenced by %s", strings.Join(users, ", "))
			}
			return nil
		},
	}
}

func (c *CLI) projectConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <output> [project]",
		Short: "Rewrite a project in the format of the output extension",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := project.ReadFile(c.projectPath(args[1:]))
			if err != nil {
				return err
			}
			if err := project.WriteFile(st, args[0]); err != nil {
				return err
			}
			printSuccess("Converted project")
			printFile(args[0])
			return nil
		},
	}
}

// editProject loads the project (or starts an empty one when the file does
// not exist yet), applies edit and writes the result back.
func (c *CLI) editProject(args []string, edit func(project.State) (project.State, error)) error {
	path := c.projectPath(args)
	st, err := project.ReadFile(path)
	if err != nil && !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		return err
	}
	st = project.Load(st)

	next, err := edit(st)
	if err != nil {
		return err
	}
	if err := project.Validate(next); err != nil {
		return err
	}
	return project.WriteFile(next, path)
}

// =============================================================================
// Helpers
// =============================================================================

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newEntityID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

func parseIngestType(s string) (model.IngestType, error) {
	for _, t := range model.IngestTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, strings.ReplaceAll(string(t), " ", "")) {
			return t, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput, "unknown ingest type %q (must be %s)", s, ingestTypeList())
}

func ingestTypeList() string {
	names := make([]string, len(model.IngestTypes))
	for i, t := range model.IngestTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// printProject prints one table per entity collection.
func printProject(st project.State) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	render := func(title string, headers []string, rows [][]string) {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("%s (%d)", title, len(rows))))
		if len(rows) == 0 {
			printDetail("none")
			return
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col == 0 {
					return lipgloss.NewStyle().Foreground(colorCyan)
				}
				return lipgloss.NewStyle()
			})
		fmt.Println(t.Render())
	}

	var rows [][]string
	for _, s := range st.Schemas {
		profile := ""
		if s.IsProfileEnabled {
			profile = "✓"
		}
		rows = append(rows, []string{s.ID, s.Name, s.Class, profile, fmt.Sprint(len(s.Fields)), fmt.Sprint(len(s.Identities()))})
	}
	render("Schemas", []string{"ID", "Name", "Class", "Profile", "Fields", "Identities"}, rows)

	rows = nil
	for _, d := range st.Datasets {
		rows = append(rows, []string{d.ID, d.Name, orDash(d.SchemaID), d.Created})
	}
	render("Datasets", []string{"ID", "Name", "Schema", "Created"}, rows)

	rows = nil
	for _, n := range st.IngestNodes {
		rows = append(rows, []string{n.ID, n.Name, string(n.Type), orDash(n.SchemaID), orDash(strings.Join(n.TargetDatasetIDs, ", "))})
	}
	render("Ingest nodes", []string{"ID", "Name", "Type", "Schema", "Targets"}, rows)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
