package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/quocvuong92/agentsh/internal/constants"
)

// Environment variable names
const (
	EnvAgentsDir     = "AGENTSH_AGENTS_DIR"
	EnvModelEndpoint = "AGENTSH_MODEL_ENDPOINT"
	EnvModelAPIKey   = "AGENTSH_MODEL_API_KEY"
	EnvModel         = "AGENTSH_MODEL"
	EnvHistoryFile   = "AGENTSH_HISTORY_FILE"
	EnvLogLevel      = "AGENTSH_LOG_LEVEL"
	EnvLogFormat     = "AGENTSH_LOG_FORMAT"
)

// Errors
var (
	ErrAgentsDirEmpty = errors.New("agents directory must not be empty")
	ErrKeyWithoutHost = errors.New("AGENTSH_MODEL_API_KEY is set but AGENTSH_MODEL_ENDPOINT is not")
)

// Config holds the application configuration.
// Precedence, lowest to highest: config file, environment, flags.
type Config struct {
	// AgentsDir is the directory holding agent definition files
	AgentsDir string

	// Model provider settings. An empty endpoint selects the local
	// echo provider.
	ModelEndpoint string
	ModelAPIKey   string
	Model         string

	// HistoryFile is the append-only line-history file
	HistoryFile string

	// Logging
	LogLevel  string
	LogFormat string

	// Render chat replies as markdown
	Render bool
}

// NewConfig creates a new Config with zero values; Validate fills defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate loads the config file and environment, then fills defaults.
// Values already set (by flags) are never overwritten.
func (c *Config) Validate() error {
	// Environment fills what flags left empty
	if c.AgentsDir == "" {
		c.AgentsDir = os.Getenv(EnvAgentsDir)
	}
	if c.ModelEndpoint == "" {
		c.ModelEndpoint = strings.TrimSuffix(os.Getenv(EnvModelEndpoint), "/")
	}
	if c.ModelAPIKey == "" {
		c.ModelAPIKey = strings.TrimSpace(os.Getenv(EnvModelAPIKey))
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.HistoryFile == "" {
		c.HistoryFile = os.Getenv(EnvHistoryFile)
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}
	if c.LogFormat == "" {
		c.LogFormat = os.Getenv(EnvLogFormat)
	}

	// Config file fills what flags and env left empty; load errors are
	// ignored so env vars and flags always work without a file
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	// Defaults last
	if c.AgentsDir == "" {
		c.AgentsDir = constants.DefaultAgentsDir
	}
	if strings.TrimSpace(c.AgentsDir) == "" {
		return ErrAgentsDirEmpty
	}
	if c.ModelAPIKey != "" && c.ModelEndpoint == "" {
		return ErrKeyWithoutHost
	}
	if c.Model == "" {
		c.Model = constants.DefaultModel
	}
	if c.HistoryFile == "" {
		c.HistoryFile = defaultHistoryPath()
	}

	return nil
}

// defaultHistoryPath returns <user config dir>/agentsh/history.txt,
// falling back to a dotfile in the working directory
func defaultHistoryPath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, constants.AppName, constants.HistoryFileName)
	}
	return filepath.Join(".", "."+constants.AppName+"_history")
}
