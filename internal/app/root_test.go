//go:build !integration

package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqve/gw/internal/commands"
	"github.com/sqve/gw/internal/config"
	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/logger"
	"github.com/sqve/gw/internal/styles"
	"github.com/sqve/gw/internal/testutils"
)

func newTestRoot(t *testing.T) (*testutils.MockCommander, *bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	t.Helper()
	t.Cleanup(func() {
		logger.Configure(logger.DefaultConfig())
		styles.SetPlain(false)
	})

	mock := testutils.NewMockCommander()
	mock.StubRepository("/repo", "worktree /repo\nHEAD abc\nbranch refs/heads/main\n")

	var stdout, stderr bytes.Buffer
	run := func(args ...string) error {
		root := NewRootCommand(commands.Deps{
			Commander: mock,
			Env:       config.MapEnv{config.EnvHome: t.TempDir()},
		})
		root.SetOut(&stdout)
		root.SetErr(&stderr)
		root.SetArgs(args)
		return root.Execute()
	}
	return mock, &stdout, &stderr, run
}

func TestRootCommandSubcommands(t *testing.T) {
	root := NewRootCommand(commands.Deps{})
	for _, name := range []string{"base", "config", "list", "path", "root", "stale", "verify"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"log-level", "log-format", "debug", "plain"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCommandRuns(t *testing.T) {
	_, stdout, _, run := newTestRoot(t)

	require.NoError(t, run("root"))
	assert.Equal(t, "/repo\n", stdout.String())
}

func TestDebugFlagLogsGitCommands(t *testing.T) {
	_, _, stderr, run := newTestRoot(t)

	require.NoError(t, run("--debug", "--log-format", "json", "base", "--base", "main"))
	assert.Contains(t, stderr.String(), `"level":"DEBUG"`)
	assert.Contains(t, stderr.String(), `"component":"base_branch"`)
}

func TestPlainFlag(t *testing.T) {
	_, _, _, run := newTestRoot(t)

	require.NoError(t, run("--plain", "root"))
	assert.True(t, styles.IsPlain())
}

func TestPlainFromEnvironment(t *testing.T) {
	t.Setenv("GW_PLAIN", "true")
	_, _, _, run := newTestRoot(t)

	require.NoError(t, run("root"))
	assert.True(t, styles.IsPlain())
}

func TestInvalidLogSettings(t *testing.T) {
	_, _, _, run := newTestRoot(t)

	err := run("--log-level", "loud", "root")
	require.Error(t, err)
	assert.True(t, gwerrors.IsGwError(err, gwerrors.ErrCodeInvalidArgument))

	err = run("--log-format", "xml", "root")
	require.Error(t, err)
	assert.True(t, gwerrors.IsGwError(err, gwerrors.ErrCodeInvalidArgument))
}
