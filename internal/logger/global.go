package logger

import (
	"sync"
)

// The process-wide logger used by packages that have no logger injected.
// Configure swaps it once flags are parsed; tests restore the previous one.
var (
	mu      sync.RWMutex
	current = New(DefaultConfig())
)

func SetGlobalLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func GetGlobalLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure replaces the global logger with one built from config.
func Configure(config Config) {
	SetGlobalLogger(New(config))
}

func Debug(msg string, attrs ...any) {
	GetGlobalLogger().Debug(msg, attrs...)
}

// WithComponent tags records from one subsystem, e.g. "git_commander".
func WithComponent(component string) *Logger {
	return GetGlobalLogger().WithComponent(component)
}

// WithOperation tags records from one user-facing operation.
func WithOperation(operation string) *Logger {
	return GetGlobalLogger().WithOperation(operation)
}
