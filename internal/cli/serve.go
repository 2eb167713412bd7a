package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/internal/api"
	"github.com/matzehuels/treelayout/pkg/observability"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		entries int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Routes:
  GET  /health
  GET  /api/algorithms
  POST /api/layout/{algorithm}     body: {"tree": {...}, "options": {...}}
  POST /api/render/{algorithm}?format=svg

The [layout] and [render] sections of the config file seed every request's
options. The listen address comes from --addr, TREELAYOUT_ADDR or [server].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("cache-entries") {
				cfg.CacheEntries = entries
			}

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			runner := c.newRunner(cfg.CacheEntries)
			defer runner.Close()

			srv := api.NewServer(runner, c.Logger, cfg, c.Config.Options())
			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			printDetail("cache: %d entries, request timeout %s", cfg.CacheEntries, cfg.RequestTimeout)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().IntVar(&entries, "cache-entries", 0, "layouts and artifacts kept in memory (default 1024)")

	return cmd
}
