package agent

import (
	"errors"
	"fmt"
)

// ErrUnknownConnection is returned when a connection name is not part of
// the agent's definition
var ErrUnknownConnection = errors.New("unknown connection")

// ConnectionConfig is the on-disk shape of a connection inside an agent
// definition file
type ConnectionConfig struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured,omitempty"`
}

// Action describes one invokable action on a connection
type Action struct {
	Name        string
	Description string
	Params      []string
}

// Connection is a configured communication channel the agent can act on
type Connection struct {
	Name       string
	Configured bool
	Actions    []Action
}

// ConnectionManager holds the agent's connections in definition order
type ConnectionManager struct {
	order []string
	conns map[string]*Connection
}

// defaultActions are available on every connection. Definitions only
// name connections; the action catalogue is uniform.
var defaultActions = []Action{
	{Name: "echo", Description: "Echo back the given text", Params: []string{"text"}},
	{Name: "status", Description: "Report the connection status"},
	{Name: "post", Description: "Post a message through the connection", Params: []string{"message"}},
}

// newConnectionManager builds a manager from definition configs. A
// definition with no connections gets a builtin example connection so
// the shell commands always have something to operate on.
func newConnectionManager(cfgs []ConnectionConfig) *ConnectionManager {
	if len(cfgs) == 0 {
		cfgs = []ConnectionConfig{{Name: "example_connection", Configured: true}}
	}

	m := &ConnectionManager{conns: make(map[string]*Connection)}
	for _, cfg := range cfgs {
		if cfg.Name == "" || m.conns[cfg.Name] != nil {
			continue
		}
		m.order = append(m.order, cfg.Name)
		m.conns[cfg.Name] = &Connection{
			Name:       cfg.Name,
			Configured: cfg.Configured,
			Actions:    defaultActions,
		}
	}
	return m
}

// ListConnections returns all connections in definition order
func (m *ConnectionManager) ListConnections() []Connection {
	out := make([]Connection, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.conns[name])
	}
	return out
}

// ListActions returns the actions available on the named connection
func (m *ConnectionManager) ListActions(name string) ([]Action, error) {
	conn, ok := m.conns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnection, name)
	}
	return conn.Actions, nil
}

// Configure marks the named connection as configured
func (m *ConnectionManager) Configure(name string) error {
	conn, ok := m.conns[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConnection, name)
	}
	conn.Configured = true
	return nil
}
