package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqve/gw/internal/config"
	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/styles"
)

func NewPathCmd(deps Deps) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "path NAME",
		Short: "Show where a worktree for NAME would be created",
		Long: `Print the branch name and directory gw plans for a new worktree called NAME.
The branch prefix is added unless NAME already carries it. Nothing is created.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := validateName(name); err != nil {
				return err
			}

			r, err := deps.openRepo()
			if err != nil {
				return err
			}

			branch := r.cfg.BranchName(name)
			plan := pathPlan{
				Branch: branch,
				Path:   r.cfg.WorktreePath(r.root, branch),
				Exists: r.client.BranchExists(branch),
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			return printPlan(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type pathPlan struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
	Exists bool   `json:"branch_exists"`
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return gwerrors.ErrInvalidArgument("name", "must not be empty")
	case strings.ContainsAny(name, " \t\n"):
		return gwerrors.ErrInvalidArgument("name", "must not contain whitespace")
	case strings.HasPrefix(name, "-"):
		return gwerrors.ErrInvalidArgument("name", "must not start with '-'")
	case strings.Contains(name, ".."):
		return gwerrors.ErrInvalidArgument("name", "must not contain '..'")
	case config.DirectoryName(name) == "":
		return gwerrors.ErrInvalidArgument("name", "has no characters usable in a directory name")
	}
	return nil
}

func printPlan(w io.Writer, plan pathPlan) error {
	branchLine := plan.Branch
	if plan.Exists {
		branchLine += " " + styles.Render(&styles.Warning, "(exists)")
	}
	writeRow(w, styles.Render(&styles.Dimmed, "branch"), branchLine)
	writeRow(w, styles.Render(&styles.Dimmed, "path  "), plan.Path)
	return nil
}
