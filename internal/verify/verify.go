// Package verify runs a worktree's test suite with the command configured
// for each ecosystem the worktree contains.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/sqve/gw/internal/logger"
	"github.com/sqve/gw/internal/styles"
)

type Ecosystem string

const (
	Rust   Ecosystem = "rust"
	Node   Ecosystem = "node"
	Python Ecosystem = "python"
)

// markers are checked in order; the first file found marks the ecosystem.
var markers = []struct {
	ecosystem Ecosystem
	files     []string
}{
	{Rust, []string{"Cargo.toml"}},
	{Node, []string{"package.json"}},
	{Python, []string{"pyproject.toml", "setup.py", "setup.cfg", "requirements.txt"}},
}

// Commands supplies the verification command per ecosystem. *config.Config
// satisfies it.
type Commands interface {
	VerifyRust() string
	VerifyNode() string
	VerifyPython() string
}

// Step is one command to run for one detected ecosystem.
type Step struct {
	Ecosystem Ecosystem `json:"ecosystem"`
	Command   string    `json:"command"`
}

type Failure struct {
	Step     Step
	ExitCode int
	Err      error
}

func (f *Failure) Error() string {
	if f.ExitCode < 0 {
		return fmt.Sprintf("%s verification could not start: %v", f.Step.Ecosystem, f.Err)
	}
	return fmt.Sprintf("%s verification failed: %q exited with %d", f.Step.Ecosystem, f.Step.Command, f.ExitCode)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Result struct {
	Succeeded []Step
	Failed    *Failure
}

// Detect returns the ecosystems present in dir's top level, in a fixed
// order.
func Detect(dir string) []Ecosystem {
	found := []Ecosystem{}
	for _, m := range markers {
		for _, name := range m.files {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				found = append(found, m.ecosystem)
				break
			}
		}
	}
	return found
}

// Plan maps the ecosystems found in dir to their commands.
func Plan(dir string, cmds Commands) []Step {
	steps := []Step{}
	for _, eco := range Detect(dir) {
		steps = append(steps, Step{Ecosystem: eco, Command: commandFor(eco, cmds)})
	}
	return steps
}

func commandFor(eco Ecosystem, cmds Commands) string {
	switch eco {
	case Rust:
		return cmds.VerifyRust()
	case Node:
		return cmds.VerifyNode()
	default:
		return cmds.VerifyPython()
	}
}

// Run executes steps in dir through the shell, streaming combined output to
// output with a per-step prefix. It stops at the first failure.
func Run(ctx context.Context, dir string, steps []Step, output io.Writer) *Result {
	log := logger.WithComponent("verify")
	result := &Result{}

	for _, step := range steps {
		start := time.Now()
		log.Debug("running verification", "ecosystem", step.Ecosystem, "command", step.Command, "dir", dir)

		cmd := exec.CommandContext(ctx, "sh", "-c", step.Command) //nolint:gosec // User-configured commands are intentionally executed
		cmd.Dir = dir

		var mu sync.Mutex
		prefix := styles.Render(&styles.Dimmed, fmt.Sprintf("[%s]", step.Ecosystem))
		stdout := newPrefixWriter(prefix, output, &mu)
		stderr := newPrefixWriter(prefix, output, &mu)
		cmd.Stdout = stdout
		cmd.Stderr = stderr

		err := cmd.Run()
		_ = stdout.Flush()
		_ = stderr.Flush()

		if err != nil {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
			result.Failed = &Failure{Step: step, ExitCode: exitCode, Err: err}
			log.Debug("verification failed", "ecosystem", step.Ecosystem, "exit_code", exitCode, "duration", time.Since(start))
			return result
		}

		result.Succeeded = append(result.Succeeded, step)
		log.Debug("verification passed", "ecosystem", step.Ecosystem, "duration", time.Since(start))
	}

	return result
}
