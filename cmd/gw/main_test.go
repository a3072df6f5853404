//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunUnknownCommand(t *testing.T) {
	assert.Equal(t, 1, run([]string{"definitely-not-a-command"}))
}

func TestRunVersion(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--version"}))
}
