package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/k8seed/internal/config"
	"github.com/imamik/k8seed/internal/k8s"
)

// saveAndRestoreBootstrapFactories saves and restores the bootstrap
// factory functions.
func saveAndRestoreBootstrapFactories(t *testing.T) {
	origFind := findConfigFile
	origLoad := loadConfigFile
	origClient := newClusterClient
	origPipeline := newPipeline

	t.Cleanup(func() {
		findConfigFile = origFind
		loadConfigFile = origLoad
		newClusterClient = origClient
		newPipeline = origPipeline
	})
}

type fakePipeline struct {
	ran int
	err error
}

func (f *fakePipeline) Run(context.Context) error {
	f.ran++
	return f.err
}

func TestBootstrap_RunsPipeline(t *testing.T) {
	saveAndRestoreBootstrapFactories(t)

	cfg := config.Scaffold()
	fake := &fakePipeline{}
	var gotCfg *config.Config

	findConfigFile = func(explicit string) (string, error) { return "k8seed.yaml", nil }
	loadConfigFile = func(path string) (*config.Config, error) { return cfg, nil }
	newClusterClient = func(kubeconfigPath, fieldManager string) (k8s.Client, error) {
		assert.Equal(t, cfg.Kubeconfig, kubeconfigPath)
		assert.Equal(t, cfg.FieldManager, fieldManager)
		return &stubClient{}, nil
	}
	newPipeline = func(c *config.Config, _ k8s.Client, _ logrus.FieldLogger) pipeline {
		gotCfg = c
		return fake
	}

	err := Bootstrap(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 1, fake.ran)
	assert.Same(t, cfg, gotCfg)
}

func TestBootstrap_ConfigNotFound(t *testing.T) {
	saveAndRestoreBootstrapFactories(t)

	findConfigFile = func(string) (string, error) { return "", errors.New("no config file found") }

	err := Bootstrap(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	saveAndRestoreBootstrapFactories(t)

	findConfigFile = func(string) (string, error) { return "k8seed.yaml", nil }
	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("cluster_name is required")
	}

	err := Bootstrap(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestBootstrap_ClusterUnreachable(t *testing.T) {
	saveAndRestoreBootstrapFactories(t)

	findConfigFile = func(string) (string, error) { return "k8seed.yaml", nil }
	loadConfigFile = func(string) (*config.Config, error) { return config.Scaffold(), nil }
	newClusterClient = func(string, string) (k8s.Client, error) {
		return nil, errors.New("stat kubeconfig: no such file or directory")
	}

	err := Bootstrap(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to cluster")
}

func TestBootstrap_PipelineFailure(t *testing.T) {
	saveAndRestoreBootstrapFactories(t)

	findConfigFile = func(string) (string, error) { return "k8seed.yaml", nil }
	loadConfigFile = func(string) (*config.Config, error) { return config.Scaffold(), nil }
	newClusterClient = func(string, string) (k8s.Client, error) { return &stubClient{}, nil }
	newPipeline = func(*config.Config, k8s.Client, logrus.FieldLogger) pipeline {
		return &fakePipeline{err: errors.New("phase crd-sync failed")}
	}

	err := Bootstrap(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase crd-sync failed")
}
