// Package bootstrap contains the idempotent apply pipeline: a differ that
// detects drift via server-side dry-run, an applier that only mutates on
// drift, a node readiness gate, and a fail-fast phase runner tying the
// bootstrap sequence together.
package bootstrap

// Outcome is the terminal state of a single resource apply.
type Outcome string

const (
	// OutcomeCurrent means the live object already matched the manifest
	// and nothing was sent to the cluster.
	OutcomeCurrent Outcome = "current"

	// OutcomeApplied means the manifest was applied because the live
	// object was missing or drifted.
	OutcomeApplied Outcome = "applied"

	// OutcomeFailed means the diff or apply call returned an error.
	OutcomeFailed Outcome = "failed"
)
