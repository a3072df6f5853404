package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCommander is a Commander backed by canned responses keyed by the
// space-joined arguments. Unconfigured commands fail like an unknown ref.
//
// Note: testutils has an exported copy for other packages; this one stays
// local to avoid an import cycle.
type MockCommander struct {
	Calls     []MockCall
	Responses map[string]MockResponse

	dirResponses map[string]MockResponse
}

// MockCall records one invocation.
type MockCall struct {
	WorkDir string
	Args    []string
}

// MockResponse defines a mock git command response.
type MockResponse struct {
	Output string
	Err    error
}

var _ Commander = (*MockCommander)(nil)

func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses:    make(map[string]MockResponse),
		dirResponses: make(map[string]MockResponse),
	}
}

func (m *MockCommander) Run(workDir string, args ...string) (string, error) {
	m.Calls = append(m.Calls, MockCall{WorkDir: workDir, Args: args})

	key := strings.Join(args, " ")
	if response, ok := m.dirResponses[workDir+"\x00"+key]; ok {
		return response.Output, response.Err
	}
	if response, ok := m.Responses[key]; ok {
		return response.Output, response.Err
	}

	return "", &GitError{
		Command:  "git",
		Args:     args,
		Stderr:   "mock: unhandled git command: " + key,
		ExitCode: 128,
	}
}

func (m *MockCommander) SetSuccessResponse(command, output string) {
	m.Responses[command] = MockResponse{Output: output}
}

// SetSuccessResponseIn answers command only when run in dir, ahead of
// responses set without a directory.
func (m *MockCommander) SetSuccessResponseIn(dir, command, output string) {
	m.dirResponses[dir+"\x00"+command] = MockResponse{Output: output}
}

func (m *MockCommander) SetErrorResponse(command, stderr string) {
	m.Responses[command] = MockResponse{Err: &GitError{
		Command:  "git",
		Args:     strings.Fields(command),
		Stderr:   stderr,
		ExitCode: 128,
	}}
}

// HasCommand reports whether args were run, in any directory.
func (m *MockCommander) HasCommand(args ...string) bool {
	want := strings.Join(args, " ")
	for _, call := range m.Calls {
		if strings.Join(call.Args, " ") == want {
			return true
		}
	}
	return false
}

// CallFor returns the first recorded call with args.
func (m *MockCommander) CallFor(args ...string) (MockCall, bool) {
	want := strings.Join(args, " ")
	for _, call := range m.Calls {
		if strings.Join(call.Args, " ") == want {
			return call, true
		}
	}
	return MockCall{}, false
}

func TestMockCommander(t *testing.T) {
	mock := NewMockCommander()

	_, err := mock.Run("", "unknown", "command")
	require.Error(t, err)
	assert.True(t, IsGitError(err))
	assert.Contains(t, err.Error(), "unhandled git command")

	mock.SetSuccessResponse("rev-parse --show-toplevel", "/repo\n")
	out, err := mock.Run("/somewhere", "rev-parse", "--show-toplevel")
	require.NoError(t, err)
	assert.Equal(t, "/repo\n", out)

	call, ok := mock.CallFor("rev-parse", "--show-toplevel")
	require.True(t, ok)
	assert.Equal(t, "/somewhere", call.WorkDir)
	assert.True(t, mock.HasCommand("unknown", "command"))
	assert.False(t, mock.HasCommand("status"))
}
