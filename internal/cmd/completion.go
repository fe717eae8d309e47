// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:     "completion [bash|zsh|fish|powershell]",
	GroupID: "utility",
	Short:   "Generate completion script for your shell",
	Long: `To load completions:

Bash:

  $ source <(sunfee completion bash)

  # To load completions for each session, add to your .bashrc:
  # (on macOS, you may need to install bash-completion)
  $ sunfee completion bash > /usr/local/etc/bash_completion.d/sunfee

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, add to your .zshrc:
  $ source <(sunfee completion zsh)

  # Alternatively, you can add the completion script to your fpath:
  $ sunfee completion zsh > "${fpath[1]}/_sunfee"

Fish:

  $ sunfee completion fish | source

  # To load completions for each session, add to your fish configuration file:
  $ sunfee completion fish > ~/.config/fish/completions/sunfee.fish

PowerShell:

  PS> sunfee completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sunfee completion powershell > sunfee.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout) //nolint:errcheck
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout) //nolint:errcheck
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true) //nolint:errcheck
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout) //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
