package config

import (
	"path/filepath"
	"strings"
)

const (
	homeDirName    = ".gw"
	configFileName = "config.toml"
)

// GwHome returns gw's global directory: GW_HOME, else ~/.gw using HOME or
// USERPROFILE.
func GwHome(env Env) (string, bool) {
	if home, ok := lookup(env, EnvHome); ok && home != "" {
		return home, true
	}
	if home, ok := homeDir(env); ok {
		return filepath.Join(home, homeDirName), true
	}
	return "", false
}

func homeDir(env Env) (string, bool) {
	if home, ok := lookup(env, "HOME"); ok && home != "" {
		return home, true
	}
	if profile, ok := lookup(env, "USERPROFILE"); ok && profile != "" {
		return profile, true
	}
	return "", false
}

// GlobalConfigPath returns <GwHome>/config.toml.
func GlobalConfigPath(env Env) (string, bool) {
	home, ok := GwHome(env)
	if !ok {
		return "", false
	}
	return filepath.Join(home, configFileName), true
}

// ProjectConfigPath returns <repoRoot>/.gw/config.toml.
func ProjectConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, homeDirName, configFileName)
}

// WorktreePath returns where the worktree for branch lives under repoRoot.
// An absolute worktrees_dir is used as is.
func (c *Config) WorktreePath(repoRoot, branch string) string {
	dir := c.WorktreesDir()
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoRoot, dir)
	}
	return filepath.Join(dir, DirectoryName(branch))
}

// BranchName prefixes name with the configured branch prefix unless it
// already carries it.
func (c *Config) BranchName(name string) string {
	prefix := c.BranchPrefix()
	if prefix == "" || strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// DirectoryName converts a branch name into a single path segment:
// separators and characters unsafe on common filesystems become dashes,
// e.g. "fix/123" becomes "fix-123".
func DirectoryName(branch string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range branch {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|' || r == ' ' || r < 0x20:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			b.WriteRune(r)
			lastDash = r == '-'
		}
	}
	return strings.Trim(b.String(), "-.")
}
