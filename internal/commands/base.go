package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqve/gw/internal/logger"
)

func NewBaseCmd(deps Deps) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "base",
		Short: "Print the base branch for new worktrees",
		Long: `Resolve the branch new worktrees start from.

Resolution order: --base, the configured default base, origin's HEAD,
main, master, then the branch checked out in the main worktree.`,
		Args: cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.openRepo()
			if err != nil {
				return err
			}

			override := base
			if override == "" {
				if configured, ok := r.cfg.DefaultBase(); ok {
					logger.WithComponent("base_branch").Debug("using configured default base", "base", configured)
					override = configured
				}
			}

			resolved, err := r.client.ResolveBase(r.root, override)
			if err != nil {
				return gitError("base resolution", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return err
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Explicit base branch")
	_ = cmd.RegisterFlagCompletionFunc("base", completeBranches(deps))

	return cmd
}
