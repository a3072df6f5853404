package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

type completionFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeBranches suggests local branches. Failures yield no suggestions
// rather than an error, so shells fall back quietly.
func completeBranches(deps Deps) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		branches, err := deps.client().LocalBranches()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var matches []string
		for _, b := range branches {
			if strings.HasPrefix(b, toComplete) {
				matches = append(matches, b)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}
