package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration and provides thread-safe access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	hooks  []func(*Config)
}

// NewManager creates a new ConfigManager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update updates the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := m.config
	m.config = config

	if oldConfig != nil {
		slog.Debug("Configuration updated",
			"base_url_changed", oldConfig.Listing.BaseURL != config.Listing.BaseURL,
			"pattern_mode_changed", oldConfig.Resolver.PatternMode != config.Resolver.PatternMode,
			"concurrency_changed", oldConfig.Resolver.Concurrency != config.Resolver.Concurrency,
			"logger_level_changed", oldConfig.Logger.Level != config.Logger.Level,
		)
	}
}

// OnReload registers fn to run with the new configuration after every
// successful Reload.
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Reload reads the file at path again and swaps the configuration in when it is valid.
// Server and database settings are kept, they only take effect on restart.
func (m *Manager) Reload(path string) error {
	cfg, err := Read(path)
	if err != nil {
		return err
	}
	current := m.Get()
	cfg.Server = current.Server
	cfg.Database = current.Database
	m.Update(cfg)
	slog.Info("Configuration reloaded", "path", path)

	m.mu.RLock()
	hooks := append([]func(*Config){}, m.hooks...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(cfg)
	}
	return nil
}

// Save writes the current configuration to the specified file path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create config file", "path", path, "error", err)
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.config); err != nil {
		slog.Error("failed to encode config", "path", path, "error", err)
		return err
	}

	slog.Info("Configuration saved successfully", "path", path)
	return nil
}

// GetJSON returns the current configuration as a JSON string.
func (m *Manager) GetJSON() string {
	jsonBytes, err := json.Marshal(m.Get())
	if err != nil {
		slog.Error("failed to marshal config to JSON", "error", err)
		return err.Error()
	}
	return string(jsonBytes)
}

func (m *Manager) GetYAML() string {
	yamlBytes, err := yaml.Marshal(m.Get())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}
