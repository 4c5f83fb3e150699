package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/racklabs/rackplan/internal/api"
	"github.com/racklabs/rackplan/internal/config"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning and catalog HTTP API",
		Long: `Serve the JSON API: plan arrangement at POST /api/v1/plans and spec
lookups at GET /api/v1/catalog/specs. The listen address comes from
--addr, the server.addr config key, or ` + config.DefaultAddr + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+config.DefaultAddr+")")

	return cmd
}

// runServe blocks until the context is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = c.cfg.Addr()
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return api.NewServer(runner, c.Logger).Serve(ctx, addr)
}
