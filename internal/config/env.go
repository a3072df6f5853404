package config

import "os"

// Environment variables recognized at the configuration boundary.
const (
	EnvHome         = "GW_HOME"
	EnvWorktreesDir = "GW_WORKTREES_DIR"
	EnvDefaultBase  = "GW_DEFAULT_BASE"
)

// Env resolves environment lookups. Passing it explicitly keeps config
// resolution testable without mutating the process environment.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv serves lookups from a fixed map.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func lookup(env Env, key string) (string, bool) {
	if env == nil {
		return "", false
	}
	return env.Lookup(key)
}
