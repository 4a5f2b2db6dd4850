package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigo/pkg/mcptools"
	"github.com/matzehuels/bigo/pkg/observability"
	"github.com/matzehuels/bigo/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Endpoints:
  GET  /health                 liveness probe
  GET  /version                build information
  POST /api/v1/analyze         {"input": "..."}
  POST /api/v1/batch           {"inputs": ["...", "..."]}
  GET  /api/v1/normalize       ?input=...
  GET  /api/v1/tree            ?input=...&format=dot|svg
  GET  /api/v1/history         ?limit=N
  GET  /api/v1/history/{id}

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()

			runner, err := c.newRunner(ctx, runnerOpts{})
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetAnalysisHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServerHooks(hooks)
			defer observability.Reset()

			sc := server.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
			}
			if addr != "" {
				sc.Addr = addr
			}
			return server.New(runner, sc, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analysis tools over MCP on stdio",
		Long: `Serve analysis tools to an MCP client over stdin/stdout.

Tools: bigo_analyze, bigo_normalize, bigo_batch, bigo_tree.
Logs go to stderr so they never interleave with the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, runnerOpts{})
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			c.Logger.Debug("serving mcp tools on stdio")
			return mcptools.Serve(ctx, runner)
		},
	}
}
