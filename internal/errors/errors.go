package errors

import (
	"errors"
	"fmt"
)

// Error codes for programmatic handling
const (
	// Git errors
	ErrCodeGitNotFound  = "GIT_NOT_FOUND"
	ErrCodeGitOperation = "GIT_OPERATION"
	ErrCodeRepoNotFound = "REPO_NOT_FOUND"

	// Configuration errors
	ErrCodeConfigInvalid = "CONFIG_INVALID"
	ErrCodeConfigParse   = "CONFIG_PARSE"

	// Input errors
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"

	// Verification errors
	ErrCodeVerifyFailed = "VERIFY_FAILED"
)

// Exit codes reported by the CLI for each error family.
const (
	ExitGeneral = 1
	ExitGit     = 2
)

// GwError represents a standardized error with code and context.
//
// GwError carries:
//   - Code: standardized error code (see ErrCode* constants)
//   - Message: human-readable description
//   - Cause: underlying error (optional)
//   - Context: additional key-value information
//
// Example usage:
//
//	err := ErrRepoNotFound("/tmp/x", cause).WithContext("cwd", "/tmp/x")
//	if IsGwError(err, ErrCodeRepoNotFound) {
//	  // handle
//	}
type GwError struct {
	Code    string
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *GwError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *GwError) Unwrap() error {
	return e.Cause
}

// Is matches another GwError by code.
func (e *GwError) Is(target error) bool {
	if t, ok := target.(*GwError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error
func (e *GwError) WithContext(key string, value any) *GwError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ExitCode maps the error code to the process exit status.
func (e *GwError) ExitCode() int {
	switch e.Code {
	case ErrCodeGitNotFound, ErrCodeGitOperation, ErrCodeRepoNotFound:
		return ExitGit
	default:
		return ExitGeneral
	}
}

func NewGwError(code, message string, cause error) *GwError {
	return &GwError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

func NewGwErrorf(code string, cause error, format string, args ...any) *GwError {
	return NewGwError(code, fmt.Sprintf(format, args...), cause)
}

func ErrGitNotFound(cause error) *GwError {
	return NewGwError(ErrCodeGitNotFound, "git is not available in PATH", cause)
}

func ErrGitOperation(operation string, cause error) *GwError {
	return NewGwErrorf(ErrCodeGitOperation, cause, "git %s failed", operation).
		WithContext("operation", operation)
}

func ErrRepoNotFound(path string, cause error) *GwError {
	return NewGwErrorf(ErrCodeRepoNotFound, cause, "not inside a git repository: %s", path).
		WithContext("path", path)
}

func ErrConfigInvalid(field, reason string) *GwError {
	return NewGwErrorf(ErrCodeConfigInvalid, nil, "invalid config field %s: %s", field, reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

func ErrConfigParse(path string, cause error) *GwError {
	return NewGwErrorf(ErrCodeConfigParse, cause, "failed to parse config file %s", path).
		WithContext("path", path)
}

func ErrInvalidArgument(name, reason string) *GwError {
	return NewGwErrorf(ErrCodeInvalidArgument, nil, "invalid %s: %s", name, reason).
		WithContext("argument", name)
}

func ErrVerifyFailed(dir string, cause error) *GwError {
	return NewGwErrorf(ErrCodeVerifyFailed, cause, "verification failed in %s", dir).
		WithContext("dir", dir)
}

// IsGwError reports whether err's chain holds a GwError with code.
func IsGwError(err error, code string) bool {
	var gwErr *GwError
	if errors.As(err, &gwErr) {
		return gwErr.Code == code
	}
	return false
}

// GetErrorCode returns the code of the first GwError in err's chain.
func GetErrorCode(err error) string {
	var gwErr *GwError
	if errors.As(err, &gwErr) {
		return gwErr.Code
	}
	return ""
}

// ExitCode returns the exit status for err, defaulting to ExitGeneral.
func ExitCode(err error) int {
	var gwErr *GwError
	if errors.As(err, &gwErr) {
		return gwErr.ExitCode()
	}
	return ExitGeneral
}
