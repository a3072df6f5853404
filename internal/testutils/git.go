package testutils

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH, skipping test")
	}
}

// Git runs git in dir with a fixed identity and fails the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_NOSYSTEM=1",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// NewTestRepo creates a repository on branch with one commit and returns
// its symlink-free path. Cleanup is handled by t.TempDir.
func NewTestRepo(t *testing.T, branch string) string {
	t.Helper()
	RequireGit(t)

	repoPath, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	Git(t, repoPath, "init", "-b", branch)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# Test Repository\n"), 0o644))
	Git(t, repoPath, "add", "README.md")
	Git(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// AddWorktree creates a linked worktree at path on a new branch.
func AddWorktree(t *testing.T, repoPath, branch, path string) {
	t.Helper()
	Git(t, repoPath, "worktree", "add", "-b", branch, path)
}
