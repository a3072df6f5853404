package git

import (
	"path/filepath"
	"strings"

	"github.com/sqve/gw/internal/logger"
)

const gitDir = ".git"

// CurrentToplevel returns the top-level directory of the checkout the client
// runs in. Inside a linked worktree this is that worktree, not the main one.
func (c *Client) CurrentToplevel() (string, error) {
	out, err := c.Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RepoRoot returns the main worktree's directory, the same from any
// worktree of the repository.
//
// Linked worktrees only hold a pointer to the shared administrative
// directory, so the root is found through the common dir: the parent of its
// nearest ".git" ancestor. Layouts without one (bare repositories, custom
// GIT_DIR) fall back to the current top-level directory.
func (c *Client) RepoRoot() (string, error) {
	toplevel, err := c.CurrentToplevel()
	if err != nil {
		return "", err
	}

	// Relative output is relative to the directory git ran in, so ask from
	// the toplevel to keep it joinable below.
	out, err := c.RunIn(toplevel, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}

	common := strings.TrimSpace(out)
	if !filepath.IsAbs(common) {
		common = filepath.Join(toplevel, common)
	}

	if root, ok := rootFromCommonDir(common); ok {
		return root, nil
	}

	logger.WithComponent("repo_root").Debug("no .git ancestor in common dir, using toplevel",
		"common_dir", common,
		"toplevel", toplevel,
	)
	return toplevel, nil
}

// rootFromCommonDir walks common and its ancestors for a directory named
// .git and returns that directory's parent.
func rootFromCommonDir(common string) (string, bool) {
	dir := filepath.Clean(common)
	for {
		if filepath.Base(dir) == gitDir {
			return filepath.Dir(dir), true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
