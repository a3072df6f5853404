package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/git"
	"github.com/sqve/gw/internal/styles"
)

func NewStaleCmd(deps Deps) *cobra.Command {
	var days int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List worktrees without recent commits",
		Long: `List linked worktrees whose last commit is at least --days old.
Defaults to gc.stale_days. The main worktree is never listed. Nothing is removed.`,
		Args: cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.openRepo()
			if err != nil {
				return err
			}

			threshold := r.cfg.StaleDays()
			if cmd.Flags().Changed("days") {
				if days < 0 {
					return gwerrors.ErrInvalidArgument("--days", "must not be negative")
				}
				threshold = days
			}

			worktrees, err := r.client.Worktrees()
			if err != nil {
				return gitError("worktree list", err)
			}

			stale := r.client.FindStale(worktrees, deps.now(), threshold)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), stale)
			}
			return printStale(cmd.OutOrStdout(), stale, threshold)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Age threshold in days (default from gc.stale_days)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func printStale(w io.Writer, stale []git.StaleWorktree, threshold int) error {
	if len(stale) == 0 {
		_, err := fmt.Fprintln(w, styles.Render(&styles.Dimmed, fmt.Sprintf("No stale worktrees (threshold %d days)", threshold)))
		return err
	}

	names := make([]string, len(stale))
	ages := make([]string, len(stale))
	for i, s := range stale {
		names[i] = displayName(s.Worktree)
		ages[i] = fmt.Sprintf("%dd", s.AgeDays)
	}
	nameWidth := maxWidth(names)
	ageWidth := maxWidth(ages)

	for i, s := range stale {
		writeRow(w, column(&styles.Warning, names[i], nameWidth), column(&styles.Dimmed, ages[i], ageWidth), s.Path)
	}
	return nil
}
