package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, defaults and validates the configuration from a YAML
// file. Unknown keys are rejected so typos surface immediately instead of
// silently falling back to defaults.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - path is an operator-supplied config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the explicit path when given, falling back to
// k8seed.yaml in the working directory.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, err := os.Stat(DefaultFileName); err != nil {
		return "", fmt.Errorf("no config file found: create %s or pass --config", DefaultFileName)
	}
	return DefaultFileName, nil
}
