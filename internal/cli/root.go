package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/buildinfo"
	"github.com/matzehuels/prettymarkup/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded and log hooks are registered before any
// subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "prettymarkup renders JSON-LD as color-coded triple trees",
		Long: `prettymarkup converts a JSON-LD document, or the JSON-LD block embedded in an
HTML page, to RDF triples and prints them as an indented tree: one row per
property, one color per entity, nested entities expanded in place.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := newLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/prettymarkup/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
