package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/quocvuong92/agentsh/internal/agent"
	"github.com/quocvuong92/agentsh/internal/config"
	"github.com/quocvuong92/agentsh/internal/constants"
	"github.com/quocvuong92/agentsh/internal/store"
)

// Session is the context commands operate against. It owns at most one
// active agent; "load" replaces the reference outright and nothing else
// ever mutates it. Out and In default to the process streams and are
// swapped for buffers in tests.
type Session struct {
	Out io.Writer
	In  io.Reader

	Agent  *agent.Agent
	Store  *store.Store
	Config *config.Config

	exiting bool
}

// NewSession creates a session bound to the given config and store
func NewSession(cfg *config.Config, st *store.Store) *Session {
	return &Session{
		Out:    os.Stdout,
		In:     os.Stdin,
		Store:  st,
		Config: cfg,
	}
}

// PromptPrefix renders the prompt text, embedding the active agent's
// name or an explicit no-agent marker
func (s *Session) PromptPrefix() string {
	status := "(no agent)"
	if s.Agent != nil {
		status = fmt.Sprintf("(%s)", s.Agent.Name)
	}
	return fmt.Sprintf("%s %s > ", constants.AppName, status)
}

// LoadAgent loads the named agent from the store and makes it the
// active agent, replacing any prior one
func (s *Session) LoadAgent(name string) error {
	def, err := s.Store.Load(name)
	if err != nil {
		return err
	}
	a, err := agent.New(def, func() (agent.ModelProvider, error) {
		return agent.NewProvider(s.Config)
	})
	if err != nil {
		return err
	}
	s.Agent = a
	return nil
}

// RequestExit marks the session as exiting; the REPL loop stops after
// the current dispatch
func (s *Session) RequestExit() {
	s.exiting = true
}

// Exiting reports whether exit has been requested
func (s *Session) Exiting() bool {
	return s.exiting
}
