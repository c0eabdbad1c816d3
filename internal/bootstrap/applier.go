package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imamik/k8seed/internal/k8s"
	"github.com/imamik/k8seed/internal/manifest"
)

// Applier applies manifests to the cluster only when they have drifted
// from the live state. Failures carry the underlying API diagnostic
// verbatim and are never retried here; re-running the pipeline is the
// recovery path.
type Applier struct {
	client k8s.Client
	differ *Differ
	log    logrus.FieldLogger
}

// NewApplier creates an Applier over the given cluster client.
func NewApplier(client k8s.Client, log logrus.FieldLogger) *Applier {
	return &Applier{
		client: client,
		differ: NewDiffer(client),
		log:    log,
	}
}

// ApplyIfStale applies res unless the live object already matches it.
func (a *Applier) ApplyIfStale(ctx context.Context, res manifest.Resource) (Outcome, error) {
	current, err := a.differ.IsCurrent(ctx, res)
	if err != nil {
		return OutcomeFailed, err
	}
	if current {
		return OutcomeCurrent, nil
	}

	if err := a.client.Apply(ctx, res); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeApplied, nil
}

// ApplyAll applies resources in order, logging the outcome of each. The
// first failure stops the batch and names the failing resource.
func (a *Applier) ApplyAll(ctx context.Context, resources []manifest.Resource) error {
	var applied, skipped int
	for _, res := range resources {
		outcome, err := a.ApplyIfStale(ctx, res)
		if err != nil {
			a.log.WithFields(logrus.Fields{
				"resource": res.ID(),
				"outcome":  string(OutcomeFailed),
			}).Error(err.Error())
			return fmt.Errorf("resource %s: %w", res.ID(), err)
		}

		a.log.WithFields(logrus.Fields{
			"resource": res.ID(),
			"outcome":  string(outcome),
		}).Info("resource reconciled")

		if outcome == OutcomeApplied {
			applied++
		} else {
			skipped++
		}
	}

	a.log.WithFields(logrus.Fields{
		"applied": applied,
		"current": skipped,
	}).Info("batch reconciled")

	return nil
}
