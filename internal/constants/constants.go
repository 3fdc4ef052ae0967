// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName is the application name, used for config and data directories.
const AppName = "agentsh"

// Timeout constants used across the application
const (
	// DefaultModelTimeout is the timeout for model provider requests
	DefaultModelTimeout = 120 * time.Second
)

// Application defaults
const (
	// DefaultAgentsDir is where agent definition files are looked up
	DefaultAgentsDir = "agents"
	// DefaultAgentRecord is the file holding the default-agent name.
	// It lives inside the agents dir and is never listed as an agent.
	DefaultAgentRecord = "general.json"
	// DefaultModel is used when an agent definition names no model
	DefaultModel = "gpt-4o-mini"
	// DefaultSystemMessage frames chat sessions with a loaded agent
	DefaultSystemMessage = "You are a helpful agent. Be precise and concise."
	// DefaultLoopIntervalSeconds paces the agent loop when the
	// definition does not set one
	DefaultLoopIntervalSeconds = 5
	// HistoryFileName is the line-history file inside the user config dir
	HistoryFileName = "history.txt"
)
