package tv

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInitCmd implements the init <shell> subcommand (SPEC_FULL.md
// §4.12): emit a shell integration script. bash/zsh/fish/powershell
// delegate to cobra's own completion generators; cmd and nu have no
// cobra generator, so their scripts are hand-rolled, grounded on the
// same completion/fallback split the teacher's own shell integration
// uses.
//
// Grounded on duboisf-linear/cmd/completion.go's shell-switch pattern,
// extended to the full set of shells spec.md §6 names.
func newInitCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init [bash|zsh|fish|powershell|cmd|nu]",
		Short:     "Generate shell integration / completion script",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell", "cmd", "nu"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			case "cmd":
				fmt.Fprint(out, cmdIntegrationScript)
				return nil
			case "nu":
				fmt.Fprint(out, nuIntegrationScript)
				return nil
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}

// cmdIntegrationScript wires `tv` into a cmd.exe doskey macro; cmd has no
// completion model so this only gives the user a launcher alias.
const cmdIntegrationScript = `@echo off
doskey tv=tv.exe $*
`

// nuIntegrationScript defines a nushell wrapper that widens the binary's
// output into the shell's structured pipeline.
const nuIntegrationScript = `def --env tv [] {
  ^tv | lines
}
`
