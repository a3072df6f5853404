package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/styles"
	"github.com/sqve/gw/internal/verify"
)

func NewVerifyCmd(deps Deps) *cobra.Command {
	var dryRun bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the test suite of the current worktree",
		Long: `Detect the ecosystems in the current worktree (Cargo.toml, package.json,
pyproject.toml and friends) and run the configured verify command for each.
Stops at the first failing command.`,
		Args: cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && !dryRun {
				return gwerrors.ErrInvalidArgument("--json", "only supported with --dry-run")
			}

			r, err := deps.openRepo()
			if err != nil {
				return err
			}

			dir, err := r.client.CurrentToplevel()
			if err != nil {
				return gitError("rev-parse", err)
			}

			steps := verify.Plan(dir, r.cfg)
			w := cmd.OutOrStdout()

			if jsonOutput {
				return writeJSON(w, steps)
			}
			if len(steps) == 0 {
				_, err := fmt.Fprintln(w, styles.Render(&styles.Dimmed, "No recognized project in "+dir))
				return err
			}
			if dryRun {
				return printSteps(w, steps)
			}

			result := verify.Run(cmd.Context(), dir, steps, w)
			for _, step := range result.Succeeded {
				fmt.Fprintln(w, styles.Render(&styles.Success, fmt.Sprintf("✓ %s: %s", step.Ecosystem, step.Command)))
			}
			if result.Failed != nil {
				return gwerrors.ErrVerifyFailed(dir, result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands without running them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "With --dry-run, output the plan as JSON")

	return cmd
}

func printSteps(w io.Writer, steps []verify.Step) error {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = string(s.Ecosystem)
	}
	width := maxWidth(names)

	for i, s := range steps {
		writeRow(w, column(&styles.Info, names[i], width), s.Command)
	}
	return nil
}
