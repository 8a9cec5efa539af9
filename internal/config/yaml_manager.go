package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const yamlHeader = `# pushdeploy configuration
# Command line flags override every value in this file.

`

// yamlConfigManager supports both JSON and YAML configuration files
type yamlConfigManager struct {
	configPath string
	format     Format
	mu         sync.Mutex
}

// NewYAMLConfigManager creates a config manager that supports both JSON and YAML
func NewYAMLConfigManager(configPath string) (Manager, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	return &yamlConfigManager{
		configPath: configPath,
		format:     formatFor(configPath),
	}, nil
}

func formatFor(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	// Default to YAML for .yaml, .yml and anything else
	return FormatYAML
}

// Path returns the configuration file path
func (m *yamlConfigManager) Path() string { return m.configPath }

// Load loads the configuration file in either JSON or YAML format
func (m *yamlConfigManager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err // Return the raw error for IsNotExist checks
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	switch m.format {
	case FormatJSON:
		if err := json.Unmarshal(data, &config); err != nil {
			// Try YAML as fallback
			if yamlErr := yaml.Unmarshal(data, &config); yamlErr == nil {
				return &config, nil
			}
			return nil, fmt.Errorf("failed to parse config as JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config as YAML: %w", err)
		}
	}

	return &config, nil
}

// Save saves the configuration file in the appropriate format
func (m *yamlConfigManager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.write(config)
}

// CreateDefaultConfig writes a configuration file holding the built-in defaults
func (m *yamlConfigManager) CreateDefaultConfig() error {
	defaults := DefaultOptions()
	forceWithLease := false

	return m.Save(&Config{
		Remote:         defaults.Remote,
		Prefix:         defaults.Prefix,
		Source:         defaults.Source,
		Prompt:         defaults.Prompt,
		ForceWithLease: &forceWithLease,
	})
}

// write marshals config and replaces the file atomically. Callers hold m.mu.
func (m *yamlConfigManager) write(config *Config) error {
	var data []byte
	var err error

	switch m.format {
	case FormatJSON:
		data, err = json.MarshalIndent(config, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(config)
		if err == nil {
			data = append([]byte(yamlHeader), data...)
		}
	default:
		return fmt.Errorf("unknown format: %s", m.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmpFile := m.configPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tmpFile, m.configPath); err != nil {
		// Clean up temp file
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
