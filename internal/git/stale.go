package git

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// IsStale reports whether lastActivity is at least staleDays before now.
// Unknown activity (zero time) is never stale, and staleDays <= 0 disables
// staleness.
func IsStale(lastActivity, now time.Time, staleDays int) bool {
	if staleDays <= 0 || lastActivity.IsZero() {
		return false
	}
	// Compare whole days; staleDays*day overflows for very large thresholds.
	return now.Sub(lastActivity)/day >= time.Duration(staleDays)
}

// LastCommitTime returns the committer time of HEAD in dir, or the zero time
// when git prints nothing.
func (c *Client) LastCommitTime(dir string) (time.Time, error) {
	out, err := c.RunIn(dir, "log", "-1", "--format=%ct")
	if err != nil {
		return time.Time{}, err
	}

	raw := strings.TrimSpace(out)
	if raw == "" {
		return time.Time{}, nil
	}

	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected commit time %q: %w", raw, err)
	}
	return time.Unix(secs, 0), nil
}

// StaleWorktree is a linked worktree whose last commit is older than the
// staleness threshold.
type StaleWorktree struct {
	Worktree
	LastActivity time.Time `json:"last_activity"`
	AgeDays      int       `json:"age_days"`
}

// FindStale returns the linked worktrees that are stale as of now. The
// first worktree is the main one and is never reported. Worktrees whose
// directories cannot be queried are skipped.
func (c *Client) FindStale(worktrees []Worktree, now time.Time, staleDays int) []StaleWorktree {
	stale := []StaleWorktree{}
	for i, wt := range worktrees {
		if i == 0 {
			continue
		}
		last, err := c.LastCommitTime(wt.Path)
		if err != nil {
			continue
		}
		if IsStale(last, now, staleDays) {
			stale = append(stale, StaleWorktree{
				Worktree:     wt,
				LastActivity: last,
				AgeDays:      int(now.Sub(last) / day),
			})
		}
	}
	return stale
}
