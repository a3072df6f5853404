package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls how a Logger formats and where it writes.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // text, json
	Output io.Writer // defaults to os.Stderr
}

// DefaultConfig returns the configuration used before flags are parsed.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// Logger wraps slog with helpers for the operations gw performs.
type Logger struct {
	*slog.Logger
}

// New builds a Logger from cfg. Unknown levels fall back to info and
// unknown formats fall back to text.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With("component", component)}
}

// WithOperation tags every record with the operation in progress.
func (l *Logger) WithOperation(operation string) *Logger {
	return &Logger{Logger: l.With("operation", operation)}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err)}
}

// GitCommand records a git invocation before it runs.
func (l *Logger) GitCommand(command string, args []string, attrs ...any) {
	l.Debug("executing command", append([]any{"command", command, "args", args}, attrs...)...)
}

// GitResult records the outcome of a git invocation. Output is truncated so
// large porcelain listings do not flood debug logs.
func (l *Logger) GitResult(command string, success bool, output string, attrs ...any) {
	const maxOutput = 512
	if len(output) > maxOutput {
		output = output[:maxOutput] + "..."
	}
	base := []any{"command", command, "success", success, "output", output}
	if success {
		l.Debug("command completed", append(base, attrs...)...)
		return
	}
	l.Debug("command failed", append(base, attrs...)...)
}
