package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/sqve/gw/internal/config"
	gwerrors "github.com/sqve/gw/internal/errors"
)

func NewConfigCmd(deps Deps) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration gw uses in this repository after merging defaults,
the global file, the project file and GW_* environment overrides.`,
		Args: cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.openRepo()
			if err != nil {
				return err
			}

			eff := r.cfg.Effective()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), eff)
			}

			w := cmd.OutOrStdout()
			if path, ok := config.GlobalConfigPath(deps.Env); ok {
				fmt.Fprintf(w, "# global:  %s\n", path)
			}
			fmt.Fprintf(w, "# project: %s\n", config.ProjectConfigPath(r.root))

			data, err := toml.Marshal(eff)
			if err != nil {
				return gwerrors.Wrap(err, "failed to encode config")
			}
			_, err = w.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
