// Package store persists agent definitions and the default-agent record
// as JSON documents under the agents directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quocvuong92/agentsh/internal/agent"
	"github.com/quocvuong92/agentsh/internal/constants"
)

// Errors
var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrNoDefaultSet  = errors.New("no default agent set")
)

// defaultRecord is the shape of the default-agent document
// (agents/general.json)
type defaultRecord struct {
	DefaultAgent string `json:"default_agent"`
}

// Store reads and writes agent files in a single directory
type Store struct {
	dir string
}

// New creates a Store over the given agents directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the agents directory
func (s *Store) Dir() string {
	return s.dir
}

// List returns the names of all agent definitions, sorted. The
// default-agent record is not an agent and is excluded.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read agents directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if e.Name() == constants.DefaultAgentRecord {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates the named agent definition
func (s *Store) Load(name string) (*agent.Definition, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
		}
		return nil, fmt.Errorf("failed to read agent file %s: %w", path, err)
	}

	var def agent.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse agent file %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent file %s: %w", path, err)
	}
	return &def, nil
}

// DefaultAgent returns the name stored in the default-agent record
func (s *Store) DefaultAgent() (string, error) {
	path := filepath.Join(s.dir, constants.DefaultAgentRecord)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoDefaultSet
		}
		return "", fmt.Errorf("failed to read default-agent record: %w", err)
	}

	var rec defaultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to parse default-agent record: %w", err)
	}
	if rec.DefaultAgent == "" {
		return "", ErrNoDefaultSet
	}
	return rec.DefaultAgent, nil
}

// SetDefault writes the default-agent record, creating the agents
// directory on first use
func (s *Store) SetDefault(name string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create agents directory: %w", err)
	}

	data, err := json.MarshalIndent(defaultRecord{DefaultAgent: name}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default-agent record: %w", err)
	}

	path := filepath.Join(s.dir, constants.DefaultAgentRecord)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default-agent record: %w", err)
	}
	return nil
}
