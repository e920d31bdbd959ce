package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		noCache      bool
		contextHosts []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Routes:
  POST /v1/render   {"input": "...", "base_url": "...", "target": {"type": "entity", "uri": "..."}, "formats": ["html"]}
  GET  /healthz
  GET  /version

Set PRETTYMARKUP_REDIS_ADDR (or cache.redis.addr in the config file) to share
the cache between instances.

Documents may only use the embedded schema.org context unless the host of a
remote context is listed with --context-host or server.context_hosts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if len(contextHosts) == 0 {
				contextHosts = c.Config.Server.ContextHosts
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithDefaults(c.Config.Apply),
				server.WithContextHosts(contextHosts...))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringSliceVar(&contextHosts, "context-host", nil, "host allowed to serve remote JSON-LD contexts (repeatable)")
	return cmd
}
