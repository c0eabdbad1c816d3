package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imamik/k8seed/internal/bootstrap"
	"github.com/imamik/k8seed/internal/config"
	"github.com/imamik/k8seed/internal/k8s"
)

// pipeline is the part of the orchestrator the handler drives.
type pipeline interface {
	Run(ctx context.Context) error
}

// Factory function variables for bootstrap - can be replaced in tests.
var (
	findConfigFile   = config.FindConfigFile
	loadConfigFile   = config.LoadFile
	newClusterClient = k8s.NewFromKubeconfig
	newPipeline      = func(cfg *config.Config, client k8s.Client, log logrus.FieldLogger) pipeline {
		return bootstrap.NewOrchestrator(cfg, client, log)
	}
)

// Bootstrap handles the bootstrap command: loads the configuration, builds
// the cluster client, and runs the pipeline to completion.
func Bootstrap(ctx context.Context, configPath string) error {
	path, err := findConfigFile(configPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	client, err := newClusterClient(cfg.Kubeconfig, cfg.FieldManager)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	return newPipeline(cfg, client, log).Run(ctx)
}
