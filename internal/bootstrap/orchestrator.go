package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/imamik/k8seed/internal/config"
	"github.com/imamik/k8seed/internal/k8s"
	"github.com/imamik/k8seed/internal/manifest"
	"github.com/imamik/k8seed/internal/release"
	"github.com/imamik/k8seed/internal/secrets"
	"github.com/imamik/k8seed/internal/util/prerequisites"
)

// bundleFetcher downloads a remote manifest bundle.
type bundleFetcher interface {
	Fetch(ctx context.Context, url string) ([]manifest.Resource, error)
}

// releaseApplier applies the declared Helm releases.
type releaseApplier interface {
	Apply(ctx context.Context) error
}

// Orchestrator runs the full bootstrap pipeline against one cluster:
// prerequisite tool checks, the node readiness gate, then the ordered
// sync phases ending in the release apply.
type Orchestrator struct {
	cfg        *config.Config
	client     k8s.Client
	applier    *Applier
	gate       *Gate
	runner     *Runner
	fetcher    bundleFetcher
	decrypter  secrets.Decrypter
	releases   releaseApplier
	checkTools func() *prerequisites.CheckResults
	log        logrus.FieldLogger
}

// NewOrchestrator wires the pipeline for the given cluster client and
// configuration.
func NewOrchestrator(cfg *config.Config, client k8s.Client, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		client:  client,
		applier: NewApplier(client, log),
		gate: &Gate{
			Interval:    cfg.Readiness.PollInterval.Std(),
			PollTimeout: cfg.Readiness.PollTimeout.Std(),
			Log:         log,
		},
		runner:     &Runner{Log: log},
		fetcher:    manifest.NewFetcher(log),
		decrypter:  secrets.SOPSDecrypter{},
		releases:   release.NewHelmfile(cfg.Release.Helmfile, cfg.Release.Environment, log),
		checkTools: prerequisites.CheckAll,
		log:        log,
	}
}

// Run executes the bootstrap pipeline to completion. Missing required
// tools fail the run before any phase starts.
func (o *Orchestrator) Run(ctx context.Context) error {
	results := o.checkTools()
	for _, missing := range results.Missing {
		if !missing.Required {
			o.log.WithField("tool", missing.Name).Warn("optional tool not found")
		}
	}
	if err := results.Error(); err != nil {
		return err
	}

	o.log.WithField("cluster", o.cfg.ClusterName).Info("bootstrapping cluster")

	if err := o.runner.Run(ctx, o.phases()); err != nil {
		return err
	}

	o.log.WithField("cluster", o.cfg.ClusterName).Info("bootstrap complete")
	return nil
}

// phases returns the pipeline phases in execution order.
func (o *Orchestrator) phases() []Phase {
	return []Phase{
		{Name: "node-readiness", Run: o.awaitNodes},
		{Name: "crd-sync", Run: o.syncCRDs},
		{Name: "namespace-sync", Run: o.syncNamespaces},
		{Name: "configmap-sync", Run: o.syncConfigMaps},
		{Name: "secret-sync", Run: o.syncSecrets},
		{Name: "release-apply", Run: o.applyReleases},
	}
}

// awaitNodes blocks until the cluster reaches a known starting state: all
// nodes Ready (warm cluster, continue immediately) or all nodes registered
// and NotReady (cold cluster waiting for its CNI).
func (o *Orchestrator) awaitNodes(ctx context.Context) error {
	ready := Condition{
		Name: "all nodes Ready",
		Met: func(ctx context.Context) (bool, error) {
			nodes, err := o.client.Nodes(ctx)
			if err != nil {
				return false, err
			}
			return k8s.AllNodesReady(nodes), nil
		},
	}
	pending := Condition{
		Name: "all nodes registered and NotReady",
		Met: func(ctx context.Context) (bool, error) {
			nodes, err := o.client.Nodes(ctx)
			if err != nil {
				return false, err
			}
			return k8s.AllNodesNotReady(nodes), nil
		},
	}
	return o.gate.Await(ctx, ready, pending)
}

// syncCRDs fetches each pinned bundle and applies only its
// CustomResourceDefinition documents. Everything else in a bundle is the
// operator deployment itself, which the release phase owns.
func (o *Orchestrator) syncCRDs(ctx context.Context) error {
	if len(o.cfg.CRDSources) == 0 {
		return Skipf("no crd sources configured")
	}

	for _, src := range o.cfg.CRDSources {
		resources, err := o.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return fmt.Errorf("crd source %s: %w", src.Name, err)
		}

		crds := manifest.FilterKind(resources, "CustomResourceDefinition")
		o.log.WithFields(logrus.Fields{
			"source": src.Name,
			"crds":   len(crds),
			"total":  len(resources),
		}).Info("applying custom resource definitions")

		if err := o.applier.ApplyAll(ctx, crds); err != nil {
			return fmt.Errorf("crd source %s: %w", src.Name, err)
		}
	}
	return nil
}

// syncNamespaces applies one Namespace per configured application
// grouping.
func (o *Orchestrator) syncNamespaces(ctx context.Context) error {
	resources := make([]manifest.Resource, 0, len(o.cfg.Namespaces))
	for _, name := range o.cfg.Namespaces {
		res, err := manifest.Namespace(name)
		if err != nil {
			return err
		}
		resources = append(resources, res)
	}
	return o.applier.ApplyAll(ctx, resources)
}

// syncConfigMaps applies the shared non-secret configuration manifests.
// The directory is optional: environments without shared settings skip it.
func (o *Orchestrator) syncConfigMaps(ctx context.Context) error {
	if o.cfg.ConfigMapsDir == "" {
		return Skipf("no configmaps directory configured")
	}

	resources, err := manifest.LoadDir(o.cfg.ConfigMapsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Skipf("configmaps directory %s does not exist", o.cfg.ConfigMapsDir)
		}
		return err
	}
	return o.applier.ApplyAll(ctx, resources)
}

// syncSecrets decrypts each encrypted manifest in memory and applies the
// plaintext straight to the cluster. Plaintext never touches disk.
func (o *Orchestrator) syncSecrets(ctx context.Context) error {
	if o.cfg.SecretsDir == "" {
		return Skipf("no secrets directory configured")
	}

	paths, err := manifest.ListDir(o.cfg.SecretsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Skipf("secrets directory %s does not exist", o.cfg.SecretsDir)
		}
		return err
	}

	var resources []manifest.Resource
	for _, path := range paths {
		plaintext, err := o.decrypter.Decrypt(path)
		if err != nil {
			return err
		}
		decoded, err := manifest.Decode(plaintext)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resources = append(resources, decoded...)
	}
	return o.applier.ApplyAll(ctx, resources)
}

// applyReleases hands off to the external release manager for everything
// chart-shaped. A non-zero exit fails the whole run.
func (o *Orchestrator) applyReleases(ctx context.Context) error {
	return o.releases.Apply(ctx)
}
