package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scaffold returns a starter configuration with every default filled in,
// suitable as wizard input or as a file to edit by hand.
func Scaffold() *Config {
	cfg := &Config{
		ClusterName: "my-cluster",
		Namespaces:  []string{"flux-system"},
		Readiness: ReadinessConfig{
			PollInterval: Duration(10 * time.Second),
			PollTimeout:  Duration(15 * time.Second),
		},
	}
	cfg.applyDefaults()
	return cfg
}

// WriteFile marshals the configuration to path.
func WriteFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
