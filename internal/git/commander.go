package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sqve/gw/internal/logger"
)

// Commander abstracts git execution so resolvers can be tested without a
// real repository. Implementations return stdout on success and a *GitError
// on failure.
type Commander interface {
	// Run executes git with args. An empty workDir runs in the process
	// working directory.
	Run(workDir string, args ...string) (string, error)
}

// GitError is returned when git could not be started or exited non-zero.
type GitError struct {
	Command  string
	Args     []string
	Stderr   string // trimmed, otherwise verbatim
	ExitCode int    // -1 when the process never ran
	Err      error  // start failure or timeout, nil for a plain non-zero exit
}

// Error returns git's stderr unchanged when there is any, so the operator
// sees the tool's own diagnosis.
func (e *GitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return fmt.Sprintf("git execution failed: %v", e.Err)
	}
	return fmt.Sprintf("git %s failed (exit %d)", strings.Join(e.Args, " "), e.ExitCode)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// IsGitError reports whether err's chain holds a *GitError.
func IsGitError(err error) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr)
}

// LiveCommander runs the git binary.
type LiveCommander struct {
	// Binary defaults to "git".
	Binary string
	// Timeout bounds each invocation. Zero waits indefinitely.
	Timeout time.Duration
}

// NewLiveCommander creates a commander for the git binary in PATH.
func NewLiveCommander() *LiveCommander {
	return &LiveCommander{Binary: "git"}
}

// Run executes git, logging the invocation and its outcome.
func (c *LiveCommander) Run(workDir string, args ...string) (string, error) {
	log := logger.WithComponent("git_commander")
	start := time.Now()

	binary := c.Binary
	if binary == "" {
		binary = "git"
	}

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	log.GitCommand(binary, args, "workdir", workDir)
	cmd := exec.CommandContext(ctx, binary, args...) // nolint:gosec // Arguments are built by gw, not the shell
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)
	out := strings.ToValidUTF8(stdout.String(), "\uFFFD")

	if err != nil {
		gitErr := &GitError{
			Command:  binary,
			Args:     args,
			Stderr:   strings.TrimSpace(strings.ToValidUTF8(stderr.String(), "\uFFFD")),
			ExitCode: -1,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			gitErr.ExitCode = exitErr.ExitCode()
		} else {
			gitErr.Err = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			gitErr.Err = ctxErr
		}

		log.GitResult(binary, false, gitErr.Error(), "duration", duration, "workdir", workDir)
		return out, gitErr
	}

	log.GitResult(binary, true, out, "duration", duration, "workdir", workDir)
	return out, nil
}

// DefaultCommander is the commander used by the CLI.
var DefaultCommander Commander = NewLiveCommander()
