//go:build !integration

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "text", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	log.WithComponent("git_commander").Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"component":"git_commander"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestGitResultTruncatesOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "text", Output: &buf})

	log.GitResult("git", true, strings.Repeat("x", 2000))

	out := buf.String()
	assert.Contains(t, out, "command completed")
	assert.Contains(t, out, "...")
	assert.Less(t, len(out), 1000)
}

func TestGitResultFailure(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	log.GitResult("git", false, "fatal: not a git repository")

	out := buf.String()
	assert.Contains(t, out, `"success":false`)
	assert.Contains(t, out, "fatal: not a git repository")
}

func TestConfigureReplacesGlobal(t *testing.T) {
	original := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(original) })

	var buf bytes.Buffer
	Configure(Config{Level: "debug", Format: "json", Output: &buf})

	Debug("test message")
	WithOperation("list").WithError(errors.New("boom")).Warn("listing failed")

	out := buf.String()
	assert.Contains(t, out, `"msg":"test message"`)
	assert.Contains(t, out, `"operation":"list"`)
	assert.Contains(t, out, "boom")
}

func TestGlobalLoggerConcurrentUse(t *testing.T) {
	original := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(original) })

	const numGoroutines = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			if id%2 == 0 {
				var buf bytes.Buffer
				Configure(Config{Level: "debug", Format: "text", Output: &buf})
			}
			require.NotNil(t, GetGlobalLogger())
			WithComponent("test").Debug("concurrent", "goroutine", id)
		}(i)
	}
	wg.Wait()
}
