package main

import (
	"fmt"
	"os"

	"github.com/sqve/gw/internal/app"
	"github.com/sqve/gw/internal/commands"
	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/logger"
	"github.com/sqve/gw/internal/styles"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd := app.NewRootCommand(commands.DefaultDeps())
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		logger.Debug("command failed", "code", gwerrors.GetErrorCode(err), "error", err)
		fmt.Fprintln(os.Stderr, styles.Render(&styles.Error, "Error: "+err.Error()))
		return gwerrors.ExitCode(err)
	}
	return 0
}
