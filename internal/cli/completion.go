package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script for cardsheet.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for your shell.

Besides subcommands and flags, the script completes scenario files for
"cardsheet run" and "cardsheet clusters" and config files for --config,
offering only *.toml paths.

Try it in the current session:

  bash:        source <(cardsheet completion bash)
  zsh:         source <(cardsheet completion zsh)
  fish:        cardsheet completion fish | source
  powershell:  cardsheet completion powershell | Out-String | Invoke-Expression

To keep it, write the script where your shell looks for completions, e.g.

  cardsheet completion bash > ~/.local/share/bash-completion/completions/cardsheet
  cardsheet completion zsh > "${fpath[1]}/_cardsheet"
  cardsheet completion fish > ~/.config/fish/completions/cardsheet.fish

zsh needs compinit enabled, and a new shell picks the script up.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeScenarioFile offers *.toml paths for a command's single scenario
// argument.
func completeScenarioFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}
