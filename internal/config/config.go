package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"

	gwerrors "github.com/sqve/gw/internal/errors"
)

// Defaults applied when no layer sets a value.
const (
	DefaultWorktreesDir = ".worktrees"
	DefaultBranchPrefix = "wt/"
	DefaultStaleDays    = 7
	DefaultVerifyRust   = "cargo test"
	DefaultVerifyNode   = "npm test"
	DefaultVerifyPython = "pytest"
)

// Config is one configuration layer. Every leaf is a pointer so a layer can
// tell "unset" from "set to the zero value" when layers are merged.
type Config struct {
	Defaults Defaults     `toml:"defaults"`
	GC       GCConfig     `toml:"gc"`
	Verify   VerifyConfig `toml:"verify"`

	env Env
}

type Defaults struct {
	Base         *string `toml:"base,omitempty" validate:"omitempty,notblank"`
	WorktreesDir *string `toml:"worktrees_dir,omitempty" validate:"omitempty,notblank"`
	BranchPrefix *string `toml:"branch_prefix,omitempty"`
}

type GCConfig struct {
	StaleDays *int64 `toml:"stale_days,omitempty" validate:"omitempty,min=0"`
}

// VerifyConfig holds the per-ecosystem test commands run against a worktree.
type VerifyConfig struct {
	Rust   *string `toml:"rust,omitempty" validate:"omitempty,notblank"`
	Node   *string `toml:"node,omitempty" validate:"omitempty,notblank"`
	Python *string `toml:"python,omitempty" validate:"omitempty,notblank"`
}

// Load builds the effective configuration for repoRoot: the global file
// under GwHome, then the project's .gw/config.toml. Missing files are
// skipped; unreadable or malformed ones are errors.
func Load(env Env, repoRoot string) (*Config, error) {
	cfg := &Config{}

	if path, ok := GlobalConfigPath(env); ok {
		layer, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = Merge(cfg, layer)
	}

	if repoRoot != "" {
		layer, err := LoadFile(ProjectConfigPath(repoRoot))
		if err != nil {
			return nil, err
		}
		cfg = Merge(cfg, layer)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if err := ValidateEnv(env); err != nil {
		return nil, err
	}

	cfg.env = env
	return cfg, nil
}

// LoadFile decodes one layer. A missing file yields an empty layer.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec // Config paths come from gw's own lookup
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, gwerrors.ErrConfigParse(path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, gwerrors.ErrConfigParse(path, err)
	}
	return &cfg, nil
}

// Merge returns a new layer where every field set in override replaces the
// one in base.
func Merge(base, override *Config) *Config {
	return &Config{
		Defaults: Defaults{
			Base:         pick(override.Defaults.Base, base.Defaults.Base),
			WorktreesDir: pick(override.Defaults.WorktreesDir, base.Defaults.WorktreesDir),
			BranchPrefix: pick(override.Defaults.BranchPrefix, base.Defaults.BranchPrefix),
		},
		GC: GCConfig{
			StaleDays: pick(override.GC.StaleDays, base.GC.StaleDays),
		},
		Verify: VerifyConfig{
			Rust:   pick(override.Verify.Rust, base.Verify.Rust),
			Node:   pick(override.Verify.Node, base.Verify.Node),
			Python: pick(override.Verify.Python, base.Verify.Python),
		},
		env: pickEnv(override.env, base.env),
	}
}

func pick[T any](override, base *T) *T {
	if override != nil {
		return override
	}
	return base
}

func pickEnv(override, base Env) Env {
	if override != nil {
		return override
	}
	return base
}

// WithEnv returns a copy of c whose accessors consult env.
func (c *Config) WithEnv(env Env) *Config {
	clone := Merge(&Config{}, c)
	clone.env = env
	return clone
}

// WorktreesDir is where new worktrees are stored, relative to the
// repository root unless absolute. GW_WORKTREES_DIR wins over files.
func (c *Config) WorktreesDir() string {
	if v, ok := lookup(c.env, EnvWorktreesDir); ok {
		return v
	}
	return deref(c.Defaults.WorktreesDir, DefaultWorktreesDir)
}

// BranchPrefix is prepended to generated branch names.
func (c *Config) BranchPrefix() string {
	return deref(c.Defaults.BranchPrefix, DefaultBranchPrefix)
}

// DefaultBase returns the configured base branch override, if any.
// GW_DEFAULT_BASE wins over files.
func (c *Config) DefaultBase() (string, bool) {
	if v, ok := lookup(c.env, EnvDefaultBase); ok {
		return v, true
	}
	if c.Defaults.Base != nil {
		return *c.Defaults.Base, true
	}
	return "", false
}

// StaleDays is the age in days after which a worktree counts as stale.
func (c *Config) StaleDays() int {
	if c.GC.StaleDays != nil {
		return int(*c.GC.StaleDays)
	}
	return DefaultStaleDays
}

func (c *Config) VerifyRust() string {
	return deref(c.Verify.Rust, DefaultVerifyRust)
}

func (c *Config) VerifyNode() string {
	return deref(c.Verify.Node, DefaultVerifyNode)
}

func (c *Config) VerifyPython() string {
	return deref(c.Verify.Python, DefaultVerifyPython)
}

// Effective returns the fully resolved settings, for display.
func (c *Config) Effective() Effective {
	base, _ := c.DefaultBase()
	return Effective{
		Base:         base,
		WorktreesDir: c.WorktreesDir(),
		BranchPrefix: c.BranchPrefix(),
		StaleDays:    c.StaleDays(),
		VerifyRust:   c.VerifyRust(),
		VerifyNode:   c.VerifyNode(),
		VerifyPython: c.VerifyPython(),
	}
}

// Effective is a flattened view of a resolved Config.
type Effective struct {
	Base         string `json:"base" toml:"base"`
	WorktreesDir string `json:"worktrees_dir" toml:"worktrees_dir"`
	BranchPrefix string `json:"branch_prefix" toml:"branch_prefix"`
	StaleDays    int    `json:"stale_days" toml:"stale_days"`
	VerifyRust   string `json:"verify_rust" toml:"verify_rust"`
	VerifyNode   string `json:"verify_node" toml:"verify_node"`
	VerifyPython string `json:"verify_python" toml:"verify_python"`
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
