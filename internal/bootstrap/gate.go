package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Condition is a whole-cluster readiness predicate, evaluated as a single
// boolean over the node set rather than per node.
type Condition struct {
	// Name identifies the condition in log output.
	Name string

	// Met evaluates the condition once against the live cluster.
	Met func(ctx context.Context) (bool, error)
}

// Gate blocks the pipeline until the cluster is in a known-good starting
// state. It first checks the optimistic ready condition once; if the
// cluster is already fully up, no polling happens at all. Otherwise it
// polls the pending condition at a fixed interval with no overall
// deadline, because a cold cluster takes however long it takes. Each
// individual evaluation is bounded by PollTimeout so a hung API server
// cannot stall a poll forever.
type Gate struct {
	// Interval is the fixed delay between polls on the slow path.
	Interval time.Duration

	// PollTimeout bounds a single condition evaluation.
	PollTimeout time.Duration

	Log logrus.FieldLogger
}

// Await blocks until ready holds, or until pending holds, whichever is
// observed first. Evaluation errors are logged and treated as a miss;
// transient API failures are expected while a cluster is coming up. Only
// context cancellation aborts the wait.
func (g *Gate) Await(ctx context.Context, ready, pending Condition) error {
	met, err := g.evaluate(ctx, ready)
	if err != nil {
		g.Log.WithField("condition", ready.Name).WithError(err).Debug("initial readiness check failed")
	}
	if met {
		g.Log.WithField("condition", ready.Name).Info("cluster already ready")
		return nil
	}

	g.Log.WithFields(logrus.Fields{
		"condition": pending.Name,
		"interval":  g.Interval.String(),
	}).Info("waiting for cluster to settle")

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("aborted waiting for %s: %w", pending.Name, ctx.Err())
		case <-time.After(g.Interval):
		}

		met, err := g.evaluate(ctx, pending)
		if err != nil {
			g.Log.WithField("condition", pending.Name).WithError(err).Warn("readiness poll failed, retrying")
			continue
		}
		if met {
			g.Log.WithField("condition", pending.Name).Info("condition met")
			return nil
		}
		g.Log.WithField("condition", pending.Name).Info("condition not met yet")
	}
}

func (g *Gate) evaluate(ctx context.Context, cond Condition) (bool, error) {
	pollCtx, cancel := context.WithTimeout(ctx, g.PollTimeout)
	defer cancel()
	return cond.Met(pollCtx)
}
