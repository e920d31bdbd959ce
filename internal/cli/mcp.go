package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/internal/mcp"
)

// mcpCommand creates the MCP stdio server command.
func (c *CLI) mcpCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdio exposing render_jsonld",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; keep it free of log lines.
			c.Logger.SetOutput(io.Discard)

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return mcp.New(runner, mcp.Config{
				Fetcher:  newFetcher(runner),
				Defaults: c.Config.Apply,
			}).ServeStdio()
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
