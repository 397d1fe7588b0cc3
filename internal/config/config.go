// Package config manages the user-editable JSON configuration file.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Database DatabaseConfig `json:"database"`
	Watcher  WatcherConfig  `json:"watcher"`
}

// DatabaseConfig holds record store settings
type DatabaseConfig struct {
	Path string `json:"path"` // SQLite database file
}

// WatcherConfig holds folder watching settings
type WatcherConfig struct {
	Enabled    bool `json:"enabled"`    // Auto-rescan galleries when their folder changes
	DebounceMs int  `json:"debounceMs"` // Delay before a change triggers a rescan
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	configDir, _ := os.UserConfigDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(configDir, "galleria", "galleria.db"),
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
	}
}

// ConfigPath returns the config file path: ~/.config/galleria/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "galleria", "config.json")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = ConfigPath()
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		// Create default config file
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// Keep defaults, remember the error so the caller can surface it
		log.Printf("Config: parse error in %s: %v", m.path, err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}

	m.config = cfg
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// ParseError returns the error from the last Load, if parsing failed
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// GetDatabase returns the database settings
func (m *Manager) GetDatabase() DatabaseConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Database
}

// GetWatcher returns the watcher settings
func (m *Manager) GetWatcher() WatcherConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Watcher
}
