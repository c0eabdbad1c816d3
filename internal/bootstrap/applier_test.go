package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/k8seed/internal/manifest"
)

func TestApplier_ApplyIfStale_MissingObjectApplied(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	res := testResource("Namespace", "", "monitoring")

	outcome, err := NewApplier(client, log).ApplyIfStale(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, []string{"Namespace/monitoring"}, client.applyCalls)
}

func TestApplier_ApplyIfStale_CurrentObjectUntouched(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	res := testResource("Namespace", "", "monitoring")
	require.NoError(t, client.Apply(context.Background(), res))
	client.applyCalls = nil

	outcome, err := NewApplier(client, log).ApplyIfStale(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCurrent, outcome)
	assert.Empty(t, client.applyCalls, "a current object must not be mutated")
}

func TestApplier_ApplyIfStale_SecondApplyIsCurrent(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	applier := NewApplier(client, log)
	res := testResource("ConfigMap", "flux-system", "settings")

	outcome, err := applier.ApplyIfStale(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)

	outcome, err = applier.ApplyIfStale(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCurrent, outcome)
	assert.Len(t, client.applyCalls, 1, "re-applying an unchanged manifest must not mutate again")
}

func TestApplier_ApplyIfStale_ApplyError(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	res := testResource("ConfigMap", "flux-system", "settings")
	client.applyErr[res.ID()] = errors.New("admission webhook denied the request")

	outcome, err := NewApplier(client, log).ApplyIfStale(context.Background(), res)
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Contains(t, err.Error(), "admission webhook denied the request")
}

func TestApplier_ApplyAll_AppliesInOrder(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	resources := []manifest.Resource{
		testResource("Namespace", "", "flux-system"),
		testResource("Namespace", "", "monitoring"),
		testResource("ConfigMap", "flux-system", "settings"),
	}

	err := NewApplier(client, log).ApplyAll(context.Background(), resources)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Namespace/flux-system",
		"Namespace/monitoring",
		"ConfigMap/flux-system/settings",
	}, client.applyCalls)
}

func TestApplier_ApplyAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	log, _ := testLogger()
	resources := []manifest.Resource{
		testResource("Namespace", "", "flux-system"),
		testResource("Namespace", "", "monitoring"),
		testResource("Namespace", "", "cert-manager"),
	}
	client.applyErr["Namespace/monitoring"] = errors.New("forbidden")

	err := NewApplier(client, log).ApplyAll(context.Background(), resources)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Namespace/monitoring")
	assert.Equal(t, []string{"Namespace/flux-system"}, client.applyCalls,
		"resources after the failure must not be applied")
}
