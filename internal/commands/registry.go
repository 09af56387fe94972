package commands

import (
	"github.com/pkg/errors"

	"github.com/jeanpaul/studentdb/internal/tui"
)

// Registry holds the menu commands in the order they were registered.
type Registry struct {
	commands map[string]Command
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Keys must be unique.
func (r *Registry) Register(cmd Command) error {
	key := cmd.Key()
	if _, exists := r.commands[key]; exists {
		return errors.Errorf("command '%s' already registered", key)
	}
	r.commands[key] = cmd
	r.order = append(r.order, key)
	return nil
}

func (r *Registry) Get(key string) (Command, bool) {
	cmd, ok := r.commands[key]
	return cmd, ok
}

// All returns the commands in menu order.
func (r *Registry) All() []Command {
	out := make([]Command, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.commands[k])
	}
	return out
}

// Menu returns the entries for tui.RenderMenu.
func (r *Registry) Menu() []tui.MenuEntry {
	entries := make([]tui.MenuEntry, 0, len(r.order))
	for _, c := range r.All() {
		entries = append(entries, tui.MenuEntry{Key: c.Key(), Title: c.Title()})
	}
	return entries
}

// RegisterDefaults registers the six standard menu actions.
func RegisterDefaults(r *Registry) {
	for _, cmd := range []Command{
		&AddCmd{},
		&GetCmd{},
		&UpdateGradeCmd{},
		&DeleteCmd{},
		&ListCmd{},
		&ExitCmd{},
	} {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}
