// Package config provides configuration management for the LaTeX editor application.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"latex-editor/internal/logger"
	"latex-editor/internal/types"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "latex-editor-config.json"
	// EnvOpenAIAPIKey is the environment variable name for the OpenAI API key
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	// EnvOpenAIBaseURL is the environment variable name for the OpenAI base URL
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the default OpenAI model to use
	DefaultModel = "gpt-4o"
	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
)

// Manager manages application configuration
type Manager struct {
	configPath string
	config     *types.Config
}

// NewManager creates a new Manager with the specified config path.
// If configPath is empty, it uses the default path in the user's home directory.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get user home directory", err)
			return nil, types.NewAppError(types.ErrConfig, "failed to get user home directory", err)
		}
		configPath = filepath.Join(homeDir, ".config", "latex-editor", DefaultConfigFileName)
	}

	return &Manager{
		configPath: configPath,
		config:     defaultConfig(),
	}, nil
}

// defaultConfig returns a Config with default values
func defaultConfig() *types.Config {
	return &types.Config{
		OpenAIAPIKey:  "",
		OpenAIBaseURL: DefaultBaseURL,
		OpenAIModel:   DefaultModel,
		LogFilePath:   "",
		LogLevel:      DefaultLogLevel,
	}
}

// Load loads configuration from the config file.
// If the file doesn't exist, defaults are used. Environment variables take
// precedence over empty file values for the API key and base URL.
func (m *Manager) Load() error {
	logger.Debug("loading configuration", logger.String("path", m.configPath))

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, using defaults", logger.String("path", m.configPath))
			m.applyEnvOverrides()
			return nil
		}
		logger.Error("failed to read config file", err)
		return types.NewAppError(types.ErrConfig, "failed to read config file", err)
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Error("failed to parse config file", err)
		return types.NewAppError(types.ErrConfig, "failed to parse config file", err)
	}
	m.config = cfg
	m.applyEnvOverrides()

	logger.Info("configuration loaded",
		logger.String("model", m.config.OpenAIModel),
		logger.Bool("hasAPIKey", m.config.OpenAIAPIKey != ""))
	return nil
}

// applyEnvOverrides fills empty fields from environment variables
func (m *Manager) applyEnvOverrides() {
	if m.config.OpenAIAPIKey == "" {
		if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
			m.config.OpenAIAPIKey = key
		}
	}
	if baseURL := os.Getenv(EnvOpenAIBaseURL); baseURL != "" {
		m.config.OpenAIBaseURL = baseURL
	}
	if m.config.OpenAIBaseURL == "" {
		m.config.OpenAIBaseURL = DefaultBaseURL
	}
	if m.config.OpenAIModel == "" {
		m.config.OpenAIModel = DefaultModel
	}
}

// Save writes the current configuration to the config file
func (m *Manager) Save() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("failed to create config directory", err)
		return types.NewAppError(types.ErrConfig, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		logger.Error("failed to write config file", err)
		return types.NewAppError(types.ErrConfig, "failed to write config file", err)
	}

	logger.Info("configuration saved", logger.String("path", m.configPath))
	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *types.Config {
	return m.config
}

// Update replaces the current configuration and persists it
func (m *Manager) Update(cfg *types.Config) error {
	if cfg == nil {
		return types.NewAppError(types.ErrInvalidInput, "config must not be nil", nil)
	}
	m.config = cfg
	return m.Save()
}
