package git

import (
	"strings"
)

// RefExists reports whether ref resolves. Any failure, including git itself
// failing, counts as absent.
func (c *Client) RefExists(ref string) bool {
	_, err := c.Run("show-ref", "--verify", ref)
	return err == nil
}

// BranchExists reports whether a local branch named name exists.
func (c *Client) BranchExists(name string) bool {
	return c.RefExists(refsHeadsPrefix + name)
}

// CurrentBranch returns the abbreviated HEAD of the checkout at repoRoot.
// A detached checkout reports "HEAD"; a repository without commits fails.
func (c *Client) CurrentBranch(repoRoot string) (string, error) {
	out, err := c.RunIn(repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LocalBranches lists local branch names in ref order.
func (c *Client) LocalBranches() ([]string, error) {
	out, err := c.Run("for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}

	branches := []string{}
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			branches = append(branches, name)
		}
	}
	return branches, nil
}
