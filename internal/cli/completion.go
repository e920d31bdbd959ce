package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/render"
)

// completionCommand prints a shell completion script for prettymarkup.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for prettymarkup.

Besides commands and flags, the script completes output formats for
--format, including comma-separated lists such as "html,dot".

  bash        source <(prettymarkup completion bash)
  zsh         prettymarkup completion zsh > "${fpath[1]}/_prettymarkup"
  fish        prettymarkup completion fish > ~/.config/fish/completions/prettymarkup.fish
  powershell  prettymarkup completion powershell | Out-String | Invoke-Expression

Start a new shell after installing the script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return root.GenBashCompletionV2(os.Stdout, true)
			}
		},
	}
}

// completeFormats completes the last element of a comma-separated --format
// value, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, partial := "", toComplete
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		prefix, partial = toComplete[:i+1], toComplete[i+1:]
	}
	chosen := strings.Split(strings.TrimSuffix(prefix, ","), ",")

	var out []string
	for _, f := range render.Formats {
		if strings.HasPrefix(f, partial) && !slices.Contains(chosen, f) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
