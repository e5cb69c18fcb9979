// Package treeconfig loads and saves the node-capacity and telemetry
// settings a tree is constructed with, the way the wider stack keeps
// its runtime settings in a YAML file rather than scattered flags.
package treeconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a tree deployment's tunables.
type Config struct {
	Capacity  int       `yaml:"capacity"`
	Telemetry Telemetry `yaml:"telemetry"`
	Logging   Logging   `yaml:"logging"`
}

// Telemetry holds a Prometheus publication toggle and metric
// namespace. Nothing in this module acts on these fields: the
// bptreedemo stats command publishes only under its --metrics flag, in
// the fixed "bptreedemo" namespace, and Enabled appears only in the
// demo's debug log line.
type Telemetry struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Logging mirrors the level knob the rest of the stack exposes.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings a fresh deployment starts from:
// capacity 32 (a reasonable middle ground between fan-out and split
// frequency), telemetry on under the "bptree" namespace.
func DefaultConfig() *Config {
	return &Config{
		Capacity: 32,
		Telemetry: Telemetry{
			Enabled:   true,
			Namespace: "bptree",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// SaveConfig writes config to configPath, creating parent directories
// as needed.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigExists reports whether a config file is present at configPath.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// GetDefaultConfigPath returns ~/.config/bptreemap/config.yaml, falling
// back to a relative path if the home directory can't be resolved.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./bptreemap.yaml"
	}
	return filepath.Join(homeDir, ".config", "bptreemap", "config.yaml")
}
