//go:build !integration

package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/repo"

func TestResolveBase(t *testing.T) {
	tests := []struct {
		name     string
		override string
		setup    func(m *MockCommander)
		expected string
	}{
		{
			name:     "override wins over everything",
			override: "feature-base",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("symbolic-ref refs/remotes/origin/HEAD", "refs/remotes/origin/trunk\n")
				m.SetSuccessResponse("show-ref --verify refs/heads/main", "abc refs/heads/main\n")
				m.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "work\n")
			},
			expected: "feature-base",
		},
		{
			name:     "override needs no existing branch",
			override: "does/not/exist",
			setup:    func(m *MockCommander) {},
			expected: "does/not/exist",
		},
		{
			name: "remote head stripped of tracking prefix",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("symbolic-ref refs/remotes/origin/HEAD", "refs/remotes/origin/trunk\n")
				m.SetSuccessResponse("show-ref --verify refs/heads/main", "abc refs/heads/main\n")
			},
			expected: "trunk",
		},
		{
			name: "empty remote head falls through",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("symbolic-ref refs/remotes/origin/HEAD", "refs/remotes/origin/\n")
				m.SetSuccessResponse("show-ref --verify refs/heads/main", "abc refs/heads/main\n")
			},
			expected: "main",
		},
		{
			name: "local main",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("show-ref --verify refs/heads/main", "abc refs/heads/main\n")
				m.SetSuccessResponse("show-ref --verify refs/heads/master", "abc refs/heads/master\n")
			},
			expected: "main",
		},
		{
			name: "remote tracking main",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("show-ref --verify refs/remotes/origin/main", "abc refs/remotes/origin/main\n")
				m.SetSuccessResponse("show-ref --verify refs/heads/master", "abc refs/heads/master\n")
			},
			expected: "main",
		},
		{
			name: "master beats current branch",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("show-ref --verify refs/heads/master", "abc refs/heads/master\n")
				m.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "work\n")
			},
			expected: "master",
		},
		{
			name: "remote tracking master",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("show-ref --verify refs/remotes/origin/master", "abc refs/remotes/origin/master\n")
				m.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "work\n")
			},
			expected: "master",
		},
		{
			name: "current branch as last resort",
			setup: func(m *MockCommander) {
				m.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "dev\n")
			},
			expected: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockCommander()
			tt.setup(mock)

			base, err := NewClient(mock).ResolveBase(testRoot, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, base)
		})
	}
}

func TestResolveBaseOverrideRunsNoGit(t *testing.T) {
	mock := NewMockCommander()

	base, err := NewClient(mock).ResolveBase(testRoot, "feature-base")
	require.NoError(t, err)
	assert.Equal(t, "feature-base", base)
	assert.Empty(t, mock.Calls)
}

func TestResolveBaseCurrentBranchRunsInRoot(t *testing.T) {
	mock := NewMockCommander()
	mock.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "dev\n")

	_, err := NewClient(mock).InDir("/repo/.worktrees/x").ResolveBase(testRoot, "")
	require.NoError(t, err)

	call, ok := mock.CallFor("rev-parse", "--abbrev-ref", "HEAD")
	require.True(t, ok)
	assert.Equal(t, testRoot, call.WorkDir)

	probe, ok := mock.CallFor("show-ref", "--verify", "refs/heads/main")
	require.True(t, ok)
	assert.Equal(t, "/repo/.worktrees/x", probe.WorkDir)
}

func TestResolveBaseExhausted(t *testing.T) {
	mock := NewMockCommander()
	mock.SetErrorResponse("rev-parse --abbrev-ref HEAD", "fatal: ambiguous argument 'HEAD': unknown revision or path not in the working tree.")

	_, err := NewClient(mock).ResolveBase(testRoot, "")
	require.Error(t, err)
	assert.True(t, IsGitError(err))
	assert.Equal(t, "fatal: ambiguous argument 'HEAD': unknown revision or path not in the working tree.", err.Error())
}

func TestResolveBaseProbeOrder(t *testing.T) {
	mock := NewMockCommander()
	mock.SetSuccessResponse("rev-parse --abbrev-ref HEAD", "dev\n")

	_, err := NewClient(mock).ResolveBase(testRoot, "")
	require.NoError(t, err)

	var order []string
	for _, call := range mock.Calls {
		order = append(order, call.Args[len(call.Args)-1])
	}
	assert.Equal(t, []string{
		"refs/remotes/origin/HEAD",
		"refs/heads/main",
		"refs/remotes/origin/main",
		"refs/heads/master",
		"refs/remotes/origin/master",
		"HEAD",
	}, order)
}

func TestBaseRulesIndividually(t *testing.T) {
	client := NewClient(NewMockCommander())

	t.Run("override without value", func(t *testing.T) {
		_, ok, err := OverrideRule.Resolve(client, BaseRequest{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remote head without origin", func(t *testing.T) {
		_, ok, err := RemoteHeadRule.Resolve(client, BaseRequest{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("named branch absent", func(t *testing.T) {
		rule := NamedBranchRule("trunk")
		assert.Equal(t, "named_trunk", rule.Name)
		_, ok, err := rule.Resolve(client, BaseRequest{})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("current branch error", func(t *testing.T) {
		_, ok, err := CurrentBranchRule.Resolve(client, BaseRequest{RepoRoot: testRoot})
		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestResolveBaseWith(t *testing.T) {
	client := NewClient(NewMockCommander())

	t.Run("no rules", func(t *testing.T) {
		_, err := client.ResolveBaseWith(nil, BaseRequest{})
		assert.ErrorIs(t, err, ErrNoBaseBranch)
	})

	t.Run("stops at first error", func(t *testing.T) {
		boom := errors.New("boom")
		called := false
		rules := []BaseRule{
			{Name: "fails", Resolve: func(*Client, BaseRequest) (string, bool, error) { return "", false, boom }},
			{Name: "never", Resolve: func(*Client, BaseRequest) (string, bool, error) {
				called = true
				return "x", true, nil
			}},
		}
		_, err := client.ResolveBaseWith(rules, BaseRequest{})
		assert.ErrorIs(t, err, boom)
		assert.False(t, called)
	})

	t.Run("custom rule", func(t *testing.T) {
		rules := []BaseRule{
			NamedBranchRule("develop"),
			{Name: "fixed", Resolve: func(*Client, BaseRequest) (string, bool, error) { return "release", true, nil }},
		}
		base, err := client.ResolveBaseWith(rules, BaseRequest{})
		require.NoError(t, err)
		assert.Equal(t, "release", base)
	})
}
