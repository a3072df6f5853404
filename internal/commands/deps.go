package commands

import (
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/sqve/gw/internal/config"
	gwerrors "github.com/sqve/gw/internal/errors"
	"github.com/sqve/gw/internal/git"
	"github.com/sqve/gw/internal/logger"
)

// Deps is everything a command needs from the outside world. Tests swap
// the commander, environment and clock.
type Deps struct {
	Commander git.Commander
	Env       config.Env
	// WorkDir is where gw was invoked; empty means the process directory.
	WorkDir string
	Now     func() time.Time
}

func DefaultDeps() Deps {
	return Deps{
		Commander: git.DefaultCommander,
		Env:       config.OSEnv{},
		Now:       time.Now,
	}
}

func (d Deps) client() *git.Client {
	return git.NewClient(d.Commander).InDir(d.WorkDir)
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) workDir() string {
	if d.WorkDir != "" {
		return d.WorkDir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// repo is an opened repository: a client bound to the invocation
// directory, the main worktree root and the configuration loaded for it.
type repo struct {
	client *git.Client
	root   string
	cfg    *config.Config
}

func (d Deps) openRepo() (*repo, error) {
	client := d.client()

	root, err := client.RepoRoot()
	if err != nil {
		return nil, repoError(d.workDir(), err)
	}

	cfg, err := config.Load(d.Env, root)
	if err != nil {
		return nil, err
	}

	logger.WithOperation("open_repo").Debug("repository opened",
		"root", root,
		"workdir", d.WorkDir,
		"worktrees_dir", cfg.WorktreesDir(),
	)
	return &repo{client: client, root: root, cfg: cfg}, nil
}

func repoError(dir string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return gwerrors.ErrGitNotFound(err)
	}
	return gwerrors.ErrRepoNotFound(dir, err)
}

func gitError(operation string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return gwerrors.ErrGitNotFound(err)
	}
	return gwerrors.ErrGitOperation(operation, err)
}
