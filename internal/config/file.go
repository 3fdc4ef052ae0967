package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/agentsh/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// AgentsDir is the directory holding agent definition files
	AgentsDir string `yaml:"agents_dir,omitempty"`

	// Model provider settings
	Model *ModelConfig `yaml:"model,omitempty"`

	// HistoryFile overrides the line-history location
	HistoryFile string `yaml:"history_file,omitempty"`

	// Logging settings
	Log *LogConfig `yaml:"log,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// ModelConfig holds model provider configuration
type ModelConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render bool `yaml:"render,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.AgentsDir == "" && fc.AgentsDir != "" {
		c.AgentsDir = fc.AgentsDir
	}

	if fc.Model != nil {
		if c.ModelEndpoint == "" && fc.Model.Endpoint != "" {
			c.ModelEndpoint = fc.Model.Endpoint
		}
		if c.ModelAPIKey == "" && fc.Model.APIKey != "" {
			c.ModelAPIKey = fc.Model.APIKey
		}
		if c.Model == "" && fc.Model.Name != "" {
			c.Model = fc.Model.Name
		}
	}

	if c.HistoryFile == "" && fc.HistoryFile != "" {
		c.HistoryFile = fc.HistoryFile
	}

	if fc.Log != nil {
		if c.LogLevel == "" && fc.Log.Level != "" {
			c.LogLevel = fc.Log.Level
		}
		if c.LogFormat == "" && fc.Log.Format != "" {
			c.LogFormat = fc.Log.Format
		}
	}

	// Boolean defaults only apply when set to true in the file; a flag
	// explicitly set to false is indistinguishable from unset
	if fc.Defaults != nil {
		if fc.Defaults.Render && !c.Render {
			c.Render = true
		}
	}
}
