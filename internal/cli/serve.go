package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aepplanner/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  POST /api/analyze          schema export in, field tree out
  POST /api/graph            project in, positioned graph out
  POST /api/export/{format}  project in, diagram out
  POST /api/import           AEP payload in, project out
  POST /api/validate         project in, validation report out

The layout cache is shared with the CLI. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printInfo("Listening on %s", StyleLink.Render("http://"+addr))
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", fmt.Sprintf("listen address (default %s)", server.DefaultAddr))
	return cmd
}
