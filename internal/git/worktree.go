package git

import (
	"strings"
)

// Porcelain line markers emitted by `git worktree list --porcelain`.
const (
	worktreePrefix = "worktree "
	branchPrefix   = "branch "
	headPrefix     = "HEAD "
)

const refsHeadsPrefix = "refs/heads/"

// Worktree is one entry of the repository's worktree registry, true as of
// the query that produced it.
type Worktree struct {
	// Path is the absolute worktree directory and is unique within a listing.
	Path string `json:"path"`

	// Branch is the fully qualified ref checked out, empty when detached.
	Branch string `json:"branch,omitempty"`

	// Head is the checked out commit, empty when the listing omitted it.
	Head string `json:"head,omitempty"`
}

// IsDetached reports whether no branch is checked out.
func (w Worktree) IsDetached() bool {
	return w.Branch == ""
}

// BranchName returns the branch without its refs/heads/ prefix.
func (w Worktree) BranchName() string {
	return strings.TrimPrefix(w.Branch, refsHeadsPrefix)
}

// ShortHead returns the first seven characters of Head.
func (w Worktree) ShortHead() string {
	if len(w.Head) > 7 {
		return w.Head[:7]
	}
	return w.Head
}

// ParseWorktrees converts `git worktree list --porcelain` output into
// worktrees in the order git listed them.
//
// A "worktree" line opens a record and "branch"/"HEAD" lines attach to the
// open one; anything else (bare, detached, locked, prunable, blank lines) is
// ignored. A path listed twice keeps its first position but takes the later
// block's attributes.
func ParseWorktrees(output string) []Worktree {
	worktrees := []Worktree{}
	index := make(map[string]int)

	var current *Worktree
	flush := func() {
		if current == nil {
			return
		}
		if i, ok := index[current.Path]; ok {
			worktrees[i] = *current
		} else {
			index[current.Path] = len(worktrees)
			worktrees = append(worktrees, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.HasPrefix(line, worktreePrefix):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, worktreePrefix)}
		case strings.HasPrefix(line, branchPrefix):
			if current != nil {
				current.Branch = strings.TrimSpace(strings.TrimPrefix(line, branchPrefix))
			}
		case strings.HasPrefix(line, headPrefix):
			if current != nil {
				current.Head = strings.TrimSpace(strings.TrimPrefix(line, headPrefix))
			}
		}
	}
	flush()

	return worktrees
}

// Worktrees lists every worktree of the repository, main worktree first.
func (c *Client) Worktrees() ([]Worktree, error) {
	out, err := c.Run("worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseWorktrees(out), nil
}
