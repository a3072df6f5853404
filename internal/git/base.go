package git

import (
	"errors"
	"strings"
	"time"

	"github.com/sqve/gw/internal/logger"
)

const (
	remoteHeadRef       = "refs/remotes/origin/HEAD"
	remoteTrackingRoots = "refs/remotes/origin/"
)

// ErrNoBaseBranch is returned when a rule list ends without a match. The
// default rules always end in a rule that either matches or fails.
var ErrNoBaseBranch = errors.New("no base branch could be resolved")

// BaseRequest is the input every base rule sees.
type BaseRequest struct {
	// RepoRoot is the main worktree directory.
	RepoRoot string
	// Override is an explicit base; empty means none was given.
	Override string
}

// BaseRule is one step of base branch resolution. Resolve reports ok when
// the rule decides the base. A non-nil error stops resolution.
type BaseRule struct {
	Name    string
	Resolve func(c *Client, req BaseRequest) (branch string, ok bool, err error)
}

// DefaultBaseRules is the resolution order: explicit intent, the remote's
// default branch, main, master, then whatever the root has checked out.
var DefaultBaseRules = []BaseRule{
	OverrideRule,
	RemoteHeadRule,
	NamedBranchRule("main"),
	NamedBranchRule("master"),
	CurrentBranchRule,
}

// OverrideRule returns the explicit override verbatim, without checking
// that the branch exists.
var OverrideRule = BaseRule{
	Name: "override",
	Resolve: func(_ *Client, req BaseRequest) (string, bool, error) {
		if req.Override == "" {
			return "", false, nil
		}
		return req.Override, true, nil
	},
}

// RemoteHeadRule uses origin's symbolic HEAD, e.g. refs/remotes/origin/trunk
// resolves to "trunk".
var RemoteHeadRule = BaseRule{
	Name: "remote_head",
	Resolve: func(c *Client, _ BaseRequest) (string, bool, error) {
		out, err := c.Run("symbolic-ref", remoteHeadRef)
		if err != nil {
			return "", false, nil
		}
		branch := strings.TrimPrefix(strings.TrimSpace(out), remoteTrackingRoots)
		if branch == "" {
			return "", false, nil
		}
		return branch, true, nil
	},
}

// NamedBranchRule matches when name exists locally or as origin/name.
func NamedBranchRule(name string) BaseRule {
	return BaseRule{
		Name: "named_" + name,
		Resolve: func(c *Client, _ BaseRequest) (string, bool, error) {
			if c.BranchExists(name) || c.RefExists(remoteTrackingRoots+name) {
				return name, true, nil
			}
			return "", false, nil
		},
	}
}

// CurrentBranchRule returns the branch checked out at the repository root.
// Its failure is the only way the default chain fails.
var CurrentBranchRule = BaseRule{
	Name: "current_branch",
	Resolve: func(c *Client, req BaseRequest) (string, bool, error) {
		branch, err := c.CurrentBranch(req.RepoRoot)
		if err != nil {
			return "", false, err
		}
		return branch, true, nil
	},
}

// ResolveBase picks the branch a new worktree should be based on using
// DefaultBaseRules.
func (c *Client) ResolveBase(repoRoot, override string) (string, error) {
	return c.ResolveBaseWith(DefaultBaseRules, BaseRequest{RepoRoot: repoRoot, Override: override})
}

// ResolveBaseWith evaluates rules in order and returns the first match.
func (c *Client) ResolveBaseWith(rules []BaseRule, req BaseRequest) (string, error) {
	log := logger.WithComponent("base_branch")
	start := time.Now()

	for _, rule := range rules {
		branch, ok, err := rule.Resolve(c, req)
		if err != nil {
			log.Debug("base rule failed", "rule", rule.Name, "error", err)
			return "", err
		}
		if ok {
			log.Debug("base branch resolved",
				"branch", branch,
				"rule", rule.Name,
				"duration", time.Since(start),
			)
			return branch, nil
		}
		log.Debug("base rule did not match", "rule", rule.Name)
	}

	return "", ErrNoBaseBranch
}
