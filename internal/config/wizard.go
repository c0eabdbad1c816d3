package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// RunWizard interactively fills the starter configuration. The passed
// config provides the initial values shown in the form.
func RunWizard(cfg *Config) error {
	namespaces := strings.Join(cfg.Namespaces, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Identifies the cluster in logs and reports").
				Value(&cfg.ClusterName).
				Validate(notEmpty("cluster name")),
			huh.NewInput().
				Title("Kubeconfig path").
				Value(&cfg.Kubeconfig).
				Validate(notEmpty("kubeconfig path")),
			huh.NewInput().
				Title("Helmfile path").
				Description("Declares the bootstrap Helm releases").
				Value(&cfg.Release.Helmfile).
				Validate(notEmpty("helmfile path")),
			huh.NewInput().
				Title("Namespaces").
				Description("Comma-separated, one per application grouping").
				Value(&namespaces),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard aborted: %w", err)
	}

	cfg.Namespaces = splitList(namespaces)
	return nil
}

func notEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", what)
		}
		return nil
	}
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
