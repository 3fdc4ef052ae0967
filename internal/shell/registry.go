// Package shell implements the interactive command shell: the command
// registry, fuzzy suggestions for unknown input, the dispatcher, the
// session context, and the REPL loop that drives them.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCommand is returned when a name or alias is registered twice
var ErrDuplicateCommand = errors.New("command name already registered")

// HandlerFunc is a command implementation. It receives the full token
// list (args[0] is the name the command was invoked as) and an interrupt
// context cancelled when the user sends SIGINT mid-command.
type HandlerFunc func(ctx context.Context, s *Session, args []string) error

// Command is a named, invokable unit bound to a handler and zero or
// more aliases
type Command struct {
	Name        string
	Description string
	Tips        []string
	Handler     HandlerFunc
	Aliases     []string
}

// Registry maps canonical names and aliases to commands. It is built
// once at startup and never mutated during a session.
type Registry struct {
	index map[string]*Command
	order []*Command // registration order, canonical commands only
	keys  []string   // registration order, names and aliases
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Command)}
}

// Register inserts a command under its canonical name and every alias.
// Any collision is a configuration error; startup treats it as fatal.
func (r *Registry) Register(cmd *Command) error {
	name := strings.ToLower(cmd.Name)
	if name == "" {
		return errors.New("command has no name")
	}

	entries := append([]string{name}, cmd.Aliases...)
	for _, entry := range entries {
		key := strings.ToLower(entry)
		if _, exists := r.index[key]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateCommand, key)
		}
	}

	r.order = append(r.order, cmd)
	for _, entry := range entries {
		key := strings.ToLower(entry)
		r.index[key] = cmd
		r.keys = append(r.keys, key)
	}
	return nil
}

// Resolve returns the command for an exact case-insensitive match of a
// name or alias
func (r *Registry) Resolve(token string) (*Command, bool) {
	cmd, ok := r.index[strings.ToLower(token)]
	return cmd, ok
}

// Commands returns the distinct commands in registration order; a
// command reachable through several aliases appears once
func (r *Registry) Commands() []*Command {
	return r.order
}

// Keys returns every registered name and alias in registration order.
// This is the candidate set for suggestions, so a typo of an alias can
// surface the alias spelling.
func (r *Registry) Keys() []string {
	return r.keys
}
