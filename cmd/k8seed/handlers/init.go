package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/k8seed/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
	runWizard       = config.RunWizard
	writeConfigFile = config.WriteFile
	interactive     = isInteractiveTTY
)

// Init handles the init command: writes a starter configuration, filled in
// by the wizard on an interactive terminal, or with scaffold defaults
// otherwise.
func Init(_ context.Context, outputPath string, force bool) error {
	if fileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outputPath)
	}

	cfg := config.Scaffold()

	if interactive() {
		printWelcome()
		if err := runWizard(cfg); err != nil {
			return err
		}
	}

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("k8seed - Kubernetes cluster bootstrap")
	fmt.Println("=====================================")
	fmt.Println()
	fmt.Println("This wizard creates a bootstrap configuration with sensible defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()
	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:       %s\n", cfg.ClusterName)
	fmt.Printf("  Kubeconfig: %s\n", cfg.Kubeconfig)
	fmt.Printf("  Helmfile:   %s\n", cfg.Release.Helmfile)
	fmt.Printf("  Namespaces: %d\n", len(cfg.Namespaces))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Review and edit %s\n", outputPath)
	fmt.Println("  2. Run: k8seed doctor")
	fmt.Println("  3. Run: k8seed bootstrap")
}
