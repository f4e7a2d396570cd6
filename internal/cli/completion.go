package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/ui"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for runcompose.

To load completions:

Bash:
  $ source <(runcompose completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ runcompose completion bash > /etc/bash_completion.d/runcompose
  # macOS:
  $ runcompose completion bash > $(brew --prefix)/etc/bash_completion.d/runcompose

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ runcompose completion zsh > "${fpath[1]}/_runcompose"

  # You may need to start a new shell for this setup to take effect.

Fish:
  $ runcompose completion fish | source

  # To load completions for each session, execute once:
  $ runcompose completion fish > ~/.config/fish/completions/runcompose.fish

PowerShell:
  PS> runcompose completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> runcompose completion powershell > runcompose.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCompletion(cmd.Root(), args[0], ui.Writer())
	},
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell: %s", shell)
}
