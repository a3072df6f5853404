package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sqve/gw/internal/git"
	"github.com/sqve/gw/internal/logger"
	"github.com/sqve/gw/internal/styles"
)

func NewListCmd(deps Deps) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all worktrees",
		Long:  `Show every worktree of the repository with its branch and HEAD. The main worktree is listed first.`,
		Args:  cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), deps, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type worktreeJSON struct {
	Path     string `json:"path"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head,omitempty"`
	Detached bool   `json:"detached,omitempty"`
	Primary  bool   `json:"primary"`
	Current  bool   `json:"current"`
}

func runList(w io.Writer, deps Deps, jsonOutput bool) error {
	client := deps.client()

	worktrees, err := client.Worktrees()
	if err != nil {
		return repoError(deps.workDir(), err)
	}

	// Not fatal: the marker is cosmetic.
	current, err := client.CurrentToplevel()
	if err != nil {
		logger.WithComponent("list").WithError(err).Debug("current worktree unknown")
	}

	if jsonOutput {
		out := make([]worktreeJSON, 0, len(worktrees))
		for i, wt := range worktrees {
			out = append(out, worktreeJSON{
				Path:     wt.Path,
				Branch:   wt.BranchName(),
				Head:     wt.Head,
				Detached: wt.IsDetached(),
				Primary:  i == 0,
				Current:  wt.Path == current,
			})
		}
		return writeJSON(w, out)
	}

	names := make([]string, len(worktrees))
	for i, wt := range worktrees {
		names[i] = displayName(wt)
	}
	width := maxWidth(names)

	for i, wt := range worktrees {
		marker := " "
		style := &styles.Info
		if wt.Path == current {
			marker = styles.Render(&styles.Success, "*")
			style = &styles.Success
		}

		suffix := ""
		if i == 0 {
			suffix = styles.Render(&styles.Dimmed, "(primary)")
		}

		writeRow(w, marker, column(style, names[i], width), column(&styles.Dimmed, wt.ShortHead(), 7), wt.Path, suffix)
	}
	return nil
}

func displayName(wt git.Worktree) string {
	if wt.IsDetached() {
		return "(detached)"
	}
	return wt.BranchName()
}
