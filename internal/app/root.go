package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqve/gw/internal/commands"
	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/logger"
	"github.com/sqve/gw/internal/styles"
)

const Version = "v0.1.0"

// Setting keys. Each is also read from GW_<KEY> with dots as underscores,
// e.g. GW_LOG_LEVEL.
const (
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
	keyDebug     = "debug"
	keyPlain     = "plain"
)

// NewRootCommand creates the gw root command with every subcommand wired to
// deps.
func NewRootCommand(deps commands.Deps) *cobra.Command {
	settings := newSettings()

	rootCmd := &cobra.Command{
		Use:     "gw",
		Short:   "Git worktree manager",
		Version: Version,
		Long: `gw keeps one worktree per task next to your main checkout.
It finds the repository root from any worktree, lists and inspects
worktrees, and picks the base branch new work should start from.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(cmd, settings)
		},
	}

	setupRootCommand(rootCmd, settings, deps)
	return rootCmd
}

func setupRootCommand(rootCmd *cobra.Command, settings *viper.Viper, deps commands.Deps) {
	// Errors are printed once by main.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	setupFlags(rootCmd)
	bindFlags(rootCmd, settings)

	if err := commands.DefaultRegistry().AttachToRoot(rootCmd, deps); err != nil {
		panic(err)
	}
}

func setupFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (shorthand for --log-level=debug)")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colors and styling")
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func bindFlags(rootCmd *cobra.Command, settings *viper.Viper) {
	flags := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		keyLogLevel:  "log-level",
		keyLogFormat: "log-format",
		keyDebug:     "debug",
		keyPlain:     "plain",
	} {
		// The flags were just defined, so Lookup cannot return nil.
		_ = settings.BindPFlag(key, flags.Lookup(flag))
	}
}

// initialize applies process-wide settings before any subcommand runs.
func initialize(cmd *cobra.Command, settings *viper.Viper) error {
	level := strings.ToLower(settings.GetString(keyLogLevel))
	if settings.GetBool(keyDebug) {
		level = "debug"
	}
	switch level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return gwerrors.ErrInvalidArgument("log level", level)
	}

	format := strings.ToLower(settings.GetString(keyLogFormat))
	if format != "text" && format != "json" {
		return gwerrors.ErrInvalidArgument("log format", format)
	}

	logger.Configure(logger.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	styles.SetPlain(settings.GetBool(keyPlain))

	logger.WithComponent("cli").Debug("initialized",
		"command", cmd.Name(),
		"log_level", level,
		"plain", styles.IsPlain(),
	)
	return nil
}
