//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type (
	Test  mg.Namespace
	Build mg.Namespace
)

var Aliases = map[string]interface{}{
	"build": Build.Dev,
	"test":  Test.Unit,
}

const (
	binary       = "bin/gw"
	coverProfile = "coverage/coverage.out"
)

// Unit runs the mock-backed tests; no git binary is needed.
func (Test) Unit() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-short", "./...")
}

// Integration runs the suites tagged integration against real git
// repositories, including the testscript CLI scripts under cmd/gw.
func (Test) Integration() error {
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-tags=integration", "-timeout=300s", "./...")
}

// Coverage writes a unit test profile to coverage/ and prints the total.
func (Test) Coverage() error {
	if err := os.MkdirAll("coverage", 0o755); err != nil {
		return err
	}

	args := []string{"test", "-short", "-covermode=atomic", "-coverpkg=./internal/...", "-coverprofile=" + coverProfile}
	if os.Getenv("CI") != "" {
		args = append(args, "-race")
	}
	if err := sh.RunV("go", append(args, "./...")...); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverProfile)
}

// Dev builds the gw binary into bin/.
func (Build) Dev() error {
	fmt.Println("Building gw...")
	return sh.RunV("go", "build", "-o", binary, "./cmd/gw")
}

// Lint runs golangci-lint, fixing what it can outside CI.
func Lint() error {
	if os.Getenv("CI") != "" {
		return sh.RunV("golangci-lint", "run")
	}
	return sh.RunV("golangci-lint", "run", "--fix")
}

// CI lints, then runs unit and integration tests and builds the binary.
func CI() error {
	mg.SerialDeps(Clean, Lint, Test.Coverage, Test.Integration, Build.Dev)
	fmt.Println("CI pipeline completed successfully!")
	return nil
}

// Clean removes build and coverage output.
func Clean() error {
	for _, dir := range []string{"bin", "coverage"} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return sh.RunV("go", "clean", "-testcache")
}

// Default runs the unit tests.
func Default() error {
	return Test{}.Unit()
}
