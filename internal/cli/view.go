package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/pipeline"
	"github.com/matzehuels/prettymarkup/pkg/render"
)

// viewCommand creates the interactive pager command.
func (c *CLI) viewCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "view [file|url|-]",
		Short: "Browse a JSON-LD document's triple tree in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := c.applyFlags(cmd, &opts, &f); err != nil {
				return err
			}
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}

			runner, err := c.newRunner(cmd.Context(), f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			src, err := readSource(cmd.Context(), arg, cmd.InOrStdin(), newFetcher(runner))
			if err != nil {
				return err
			}
			opts.Input = src.Text
			if opts.BaseURL == "" && src.URL != "" {
				opts.BaseURL = src.URL
			}

			rows, doc, err := runner.Rows(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var termOpts []render.TerminalOption
			if opts.FullIRIs {
				termOpts = append(termOpts, render.WithTerminalFullIRIs())
			}
			title := fmt.Sprintf("%s  ·  %d shapes  ·  base %s", src.Name, len(doc.Shapes), doc.Base)
			model := NewPagerModel(title, render.TerminalLines(rows, termOpts...))

			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	f.addVisitFlags(cmd)
	return cmd
}
