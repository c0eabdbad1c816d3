// Package config holds the explicit configuration the bootstrap pipeline
// is constructed with. All tunables live in one struct passed into the
// orchestrator; nothing is read from ambient process-wide state.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file searched for when none is given.
const DefaultFileName = "k8seed.yaml"

// Config is the top-level bootstrap configuration.
type Config struct {
	// ClusterName identifies the target cluster in logs and reports.
	ClusterName string `yaml:"cluster_name"`

	// Kubeconfig is the path to the kubeconfig for the target cluster.
	Kubeconfig string `yaml:"kubeconfig"`

	// FieldManager is the server-side apply field owner name.
	FieldManager string `yaml:"field_manager"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Namespaces are created one per top-level application grouping.
	Namespaces []string `yaml:"namespaces"`

	// CRDSources are pinned remote manifest bundles; only the
	// CustomResourceDefinition documents in each bundle are applied.
	CRDSources []CRDSource `yaml:"crd_sources"`

	// ConfigMapsDir holds non-secret shared configuration manifests.
	// Optional: a missing directory is skipped with a warning.
	ConfigMapsDir string `yaml:"configmaps_dir"`

	// SecretsDir holds SOPS-encrypted secret manifests. Optional: a
	// missing directory is skipped with a warning.
	SecretsDir string `yaml:"secrets_dir"`

	Readiness ReadinessConfig `yaml:"readiness"`
	Release   ReleaseConfig   `yaml:"release"`
}

// CRDSource is a pinned remote bundle of manifests for a third-party
// operator. The version is baked into the URL.
type CRDSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ReadinessConfig tunes the node readiness gate.
type ReadinessConfig struct {
	// PollInterval is the fixed delay between readiness polls.
	PollInterval Duration `yaml:"poll_interval"`

	// PollTimeout bounds how long a single poll may block.
	PollTimeout Duration `yaml:"poll_timeout"`
}

// ReleaseConfig locates the declarative release definitions.
type ReleaseConfig struct {
	// Helmfile is the path to the helmfile declaring bootstrap releases.
	Helmfile string `yaml:"helmfile"`

	// Environment selects a helmfile environment, empty for the default.
	Environment string `yaml:"environment"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if c.Kubeconfig == "" {
		c.Kubeconfig = "kubeconfig"
	}
	if c.FieldManager == "" {
		c.FieldManager = "k8seed"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Readiness.PollInterval == 0 {
		c.Readiness.PollInterval = Duration(10 * time.Second)
	}
	if c.Readiness.PollTimeout == 0 {
		c.Readiness.PollTimeout = Duration(15 * time.Second)
	}
	if c.Release.Helmfile == "" {
		c.Release.Helmfile = "helmfile.yaml"
	}
}
