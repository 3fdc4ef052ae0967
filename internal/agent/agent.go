// Package agent implements the agent capability the shell dispatches
// into: named actions on connections, a paced main loop, and chat via a
// lazily initialized model provider.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quocvuong92/agentsh/internal/constants"
	"github.com/quocvuong92/agentsh/internal/logging"
)

// Errors
var (
	ErrNoName        = errors.New("agent definition has no name")
	ErrModelNotReady = errors.New("model provider not initialized")
)

// Definition is the on-disk shape of an agent file (agents/<name>.json)
type Definition struct {
	Name         string             `json:"name"`
	Bio          string             `json:"bio,omitempty"`
	Model        string             `json:"model,omitempty"`
	LoopInterval int                `json:"loop_interval,omitempty"` // seconds
	Connections  []ConnectionConfig `json:"connections,omitempty"`
}

// Validate checks the definition for required fields
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNoName
	}
	return nil
}

// ProviderFactory builds the model provider on first use
type ProviderFactory func() (ModelProvider, error)

// Agent is a loaded agent. The session owns exactly one at a time and
// replaces it wholesale on load; nothing inside is shared.
type Agent struct {
	Name string
	Bio  string

	model        string
	loopInterval time.Duration
	conns        *ConnectionManager

	newProvider ProviderFactory
	provider    ModelProvider
	modelReady  bool
}

// New builds an Agent from a definition. The provider factory is only
// invoked when a chat-style command first needs the model.
func New(def *Definition, newProvider ProviderFactory) (*Agent, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	interval := def.LoopInterval
	if interval <= 0 {
		interval = constants.DefaultLoopIntervalSeconds
	}
	model := def.Model
	if model == "" {
		model = constants.DefaultModel
	}

	return &Agent{
		Name:         def.Name,
		Bio:          def.Bio,
		model:        model,
		loopInterval: time.Duration(interval) * time.Second,
		conns:        newConnectionManager(def.Connections),
		newProvider:  newProvider,
	}, nil
}

// Connections returns the agent's connection manager
func (a *Agent) Connections() *ConnectionManager {
	return a.conns
}

// Model returns the model name the agent chats with
func (a *Agent) Model() string {
	return a.model
}

// PerformAction invokes a named action on a connection and returns a
// result string describing what was performed
func (a *Agent) PerformAction(ctx context.Context, connection, action string, params []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logging.Debug("performing action", logging.Fields{
		"agent":      a.Name,
		"connection": connection,
		"action":     action,
	})
	return fmt.Sprintf("Performed action %q on connection %q with params %v",
		action, connection, params), nil
}

// RunLoop runs the agent's main loop until the context is cancelled.
// Each tick logs a heartbeat; cancellation is the normal way out and is
// not an error.
func (a *Agent) RunLoop(ctx context.Context) error {
	ticker := time.NewTicker(a.loopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			logging.Info("agent tick", logging.Fields{"agent": a.Name})
		}
	}
}

// ModelReady reports whether the model provider has been initialized.
// Once set it stays set for the agent's lifetime; loading an agent
// replaces the whole Agent value, which is the only reset.
func (a *Agent) ModelReady() bool {
	return a.modelReady
}

// EnsureModelReady initializes the model provider exactly once
func (a *Agent) EnsureModelReady() error {
	if a.modelReady {
		return nil
	}
	provider, err := a.newProvider()
	if err != nil {
		return fmt.Errorf("failed to set up model provider: %w", err)
	}
	a.provider = provider
	a.modelReady = true
	logging.Debug("model provider ready", logging.Fields{
		"agent":    a.Name,
		"provider": provider.Name(),
	})
	return nil
}

// PromptModel sends text to the model provider and returns the reply.
// EnsureModelReady must have succeeded first.
func (a *Agent) PromptModel(ctx context.Context, text string) (string, error) {
	if !a.modelReady {
		return "", ErrModelNotReady
	}
	system := constants.DefaultSystemMessage
	if a.Bio != "" {
		system = fmt.Sprintf("%s\n\nYou are %s. %s", constants.DefaultSystemMessage, a.Name, a.Bio)
	}
	return a.provider.Complete(ctx, system, text)
}
