package git

// Client issues the worktree and ref queries gw needs. It holds no state
// beyond its commander and working directory, so every call re-queries git.
type Client struct {
	cmd Commander
	dir string
}

// NewClient returns a client that runs in the process working directory.
func NewClient(cmd Commander) *Client {
	if cmd == nil {
		cmd = DefaultCommander
	}
	return &Client{cmd: cmd}
}

// InDir returns a copy of c that runs git in dir instead of the process
// working directory.
func (c *Client) InDir(dir string) *Client {
	return &Client{cmd: c.cmd, dir: dir}
}

// Dir is the directory commands run in; empty means the process working directory.
func (c *Client) Dir() string {
	return c.dir
}

// Run executes git in the client's directory and returns stdout.
func (c *Client) Run(args ...string) (string, error) {
	return c.cmd.Run(c.dir, args...)
}

// RunIn executes git in dir and returns stdout.
func (c *Client) RunIn(dir string, args ...string) (string, error) {
	return c.cmd.Run(dir, args...)
}
