package config

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Validate checks the configuration for errors that would make the
// bootstrap pipeline fail in confusing ways later.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	seen := make(map[string]bool, len(c.Namespaces))
	for _, ns := range c.Namespaces {
		if ns == "" {
			return fmt.Errorf("namespaces must not contain empty entries")
		}
		if seen[ns] {
			return fmt.Errorf("duplicate namespace %q", ns)
		}
		seen[ns] = true
	}

	for _, src := range c.CRDSources {
		if src.Name == "" {
			return fmt.Errorf("crd_sources entries require a name")
		}
		u, err := url.Parse(src.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("crd_source %q has invalid url %q", src.Name, src.URL)
		}
	}

	if c.Readiness.PollInterval <= 0 {
		return fmt.Errorf("readiness.poll_interval must be positive")
	}
	if c.Readiness.PollTimeout <= 0 {
		return fmt.Errorf("readiness.poll_timeout must be positive")
	}

	return nil
}
