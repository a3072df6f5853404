package testutils

import (
	"regexp"
	"strings"
	"sync"

	"github.com/sqve/gw/internal/git"
)

// MockCommander is a git.Commander for tests outside the git package.
// Responses are matched by exact space-joined arguments first, then by
// registered regex patterns. Unmatched commands fail with a *git.GitError.
type MockCommander struct {
	mu sync.Mutex

	// Calls records every invocation in order.
	Calls []MockCall
	// Responses maps space-joined arguments to their canned result.
	Responses map[string]MockResponse

	dirResponses map[string]MockResponse
	patterns     []regexResponse
}

type MockCall struct {
	WorkDir string
	Args    []string
}

type MockResponse struct {
	Output string
	Err    error
}

type regexResponse struct {
	pattern  *regexp.Regexp
	response MockResponse
}

var _ git.Commander = (*MockCommander)(nil)

func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses:    make(map[string]MockResponse),
		dirResponses: make(map[string]MockResponse),
	}
}

func (m *MockCommander) Run(workDir string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Args: args})

	key := strings.Join(args, " ")
	if response, ok := m.dirResponses[dirKey(workDir, key)]; ok {
		return response.Output, response.Err
	}
	if response, ok := m.Responses[key]; ok {
		return response.Output, response.Err
	}

	for _, p := range m.patterns {
		if p.pattern.MatchString(key) {
			return p.response.Output, p.response.Err
		}
	}

	return "", GitFailure(key, "mock: unhandled git command: "+key)
}

func (m *MockCommander) SetSuccessResponse(command, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = MockResponse{Output: output}
}

// SetSuccessResponseIn answers command only when run in dir. It takes
// precedence over responses set without a directory.
func (m *MockCommander) SetSuccessResponseIn(dir, command, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirResponses[dirKey(dir, command)] = MockResponse{Output: output}
}

func (m *MockCommander) SetErrorResponseIn(dir, command, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirResponses[dirKey(dir, command)] = MockResponse{Err: GitFailure(command, stderr)}
}

func dirKey(dir, command string) string {
	return dir + "\x00" + command
}

// SetErrorResponse makes command fail with stderr, the way git reports a
// non-zero exit.
func (m *MockCommander) SetErrorResponse(command, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = MockResponse{Err: GitFailure(command, stderr)}
}

// SetSuccessResponsePattern answers every command matching pattern. Used for
// arguments that carry a temp path.
func (m *MockCommander) SetSuccessResponsePattern(pattern *regexp.Regexp, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, regexResponse{pattern: pattern, response: MockResponse{Output: output}})
}

func (m *MockCommander) SetErrorResponsePattern(pattern *regexp.Regexp, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, regexResponse{
		pattern:  pattern,
		response: MockResponse{Err: GitFailure(pattern.String(), stderr)},
	})
}

// HasCommand reports whether args were run, in any directory.
func (m *MockCommander) HasCommand(args ...string) bool {
	_, ok := m.CallFor(args...)
	return ok
}

// CallFor returns the first recorded call with args.
func (m *MockCommander) CallFor(args ...string) (MockCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := strings.Join(args, " ")
	for _, call := range m.Calls {
		if strings.Join(call.Args, " ") == want {
			return call, true
		}
	}
	return MockCall{}, false
}

// GitFailure builds the error a failed git invocation produces.
func GitFailure(command, stderr string) *git.GitError {
	return &git.GitError{
		Command:  "git",
		Args:     strings.Fields(command),
		Stderr:   stderr,
		ExitCode: 128,
	}
}

// StubRepository answers the queries a command makes to locate a
// repository whose main worktree is root, with linked worktrees listed in
// porcelain form.
func (m *MockCommander) StubRepository(root, porcelain string) {
	m.SetSuccessResponse("rev-parse --show-toplevel", root+"\n")
	m.SetSuccessResponse("rev-parse --git-common-dir", root+"/.git\n")
	m.SetSuccessResponse("worktree list --porcelain", porcelain)
}
