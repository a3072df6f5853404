package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the repository root",
		Long:  `Print the main worktree directory. The answer is the same from any worktree or subdirectory.`,
		Args:  cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := deps.client().RepoRoot()
			if err != nil {
				return repoError(deps.workDir(), err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), root)
			return err
		},
	}
}
