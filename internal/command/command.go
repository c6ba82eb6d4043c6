package command

import (
	"fmt"
	"sort"
	"sync"
)

// Handler executes a command with its arguments and returns rendered text.
type Handler func(args []string) (string, error)

// Command is a named command published into the registry.
type Command struct {
	// ID is the invocation name, unique within a registry.
	ID string

	// Description is a one-line summary shown by help listings.
	Description string

	// Source names the registrant (a plugin name or "builtin"), used for
	// bulk removal when a plugin unloads.
	Source string

	// Handler executes the command.
	Handler Handler
}

// Registry holds registered commands. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command. The ID must be unused.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.ID)
	}
	r.commands[cmd.ID] = cmd
	return nil
}

// Unregister removes a command by ID, reporting whether it existed.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[id]; !exists {
		return false
	}
	delete(r.commands, id)
	return true
}

// UnregisterBySource removes every command registered by source and
// returns the number removed.
func (r *Registry) UnregisterBySource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, cmd := range r.commands {
		if cmd.Source == source {
			delete(r.commands, id)
			removed++
		}
	}
	return removed
}

// Get retrieves a command by ID, or nil.
func (r *Registry) Get(id string) *Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.commands[id]
}

// Has reports whether a command exists.
func (r *Registry) Has(id string) bool {
	return r.Get(id) != nil
}

// Execute runs a command by ID.
func (r *Registry) Execute(id string, args []string) (string, error) {
	cmd := r.Get(id)
	if cmd == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return cmd.Handler(args)
}

// All returns every registered command, sorted by ID.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
