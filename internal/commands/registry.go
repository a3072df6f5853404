package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// Factory builds a subcommand from the shared dependencies.
type Factory func(deps Deps) *cobra.Command

// Registry holds the subcommands attached to the root command.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a subcommand factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("command %s has no factory", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("command %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// List returns the registered names in alphabetical order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttachToRoot builds every registered command and adds it to rootCmd.
func (r *Registry) AttachToRoot(rootCmd *cobra.Command, deps Deps) error {
	for _, name := range r.List() {
		cmd := r.factories[name](deps)
		if cmd == nil {
			return fmt.Errorf("command %s returned nil cobra.Command", name)
		}
		if cmd.Name() != name {
			return fmt.Errorf("command registered as %s is named %s", name, cmd.Name())
		}
		rootCmd.AddCommand(cmd)
	}
	return nil
}

// DefaultRegistry returns a registry holding every gw subcommand.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for name, factory := range map[string]Factory{
		"base":   NewBaseCmd,
		"config": NewConfigCmd,
		"list":   NewListCmd,
		"path":   NewPathCmd,
		"root":   NewRootCmd,
		"stale":  NewStaleCmd,
		"verify": NewVerifyCmd,
	} {
		// Names are unique literals, so Register cannot fail here.
		_ = r.Register(name, factory)
	}
	return r
}
