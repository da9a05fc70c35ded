package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores commands by name and alias. It only performs lookup; the
// Bot owns dispatch. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command. Names and aliases share one namespace; a
// collision is an error.
func (r *Registry) Register(c *Command) error {
	if c == nil {
		return fmt.Errorf("registry: nil command")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(c.Name()) {
		return fmt.Errorf("registry: name %q is already taken", c.Name())
	}
	for _, alias := range c.Aliases() {
		if alias == c.Name() || r.taken(alias) {
			return fmt.Errorf("registry: alias %q of command %q is already taken", alias, c.Name())
		}
	}

	r.commands[c.Name()] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = c.Name()
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.commands[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Unregister removes a command and its aliases. Returns the removed command,
// or nil if the name was unknown.
func (r *Registry) Unregister(name string) *Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.commands[name]
	if !ok {
		return nil
	}
	delete(r.commands, name)
	for _, alias := range c.Aliases() {
		delete(r.aliases, alias)
	}
	return c
}

// Get returns the command registered under name or one of its aliases, or
// nil.
func (r *Registry) Get(name string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.commands[name]; ok {
		return c
	}
	if primary, ok := r.aliases[name]; ok {
		return r.commands[primary]
	}
	return nil
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
