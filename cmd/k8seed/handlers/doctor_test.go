package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/k8seed/internal/config"
	"github.com/imamik/k8seed/internal/k8s"
	"github.com/imamik/k8seed/internal/release"
	"github.com/imamik/k8seed/internal/util/prerequisites"
)

// saveAndRestoreDoctorFactories saves and restores the doctor factory
// functions, including the config and client factories it shares with
// bootstrap.
func saveAndRestoreDoctorFactories(t *testing.T) {
	origFind := findConfigFile
	origLoad := loadConfigFile
	origClient := newClusterClient
	origCheck := checkAllTools
	origList := listReleases

	t.Cleanup(func() {
		findConfigFile = origFind
		loadConfigFile = origLoad
		newClusterClient = origClient
		checkAllTools = origCheck
		listReleases = origList
	})
}

func readyTestNode(status corev1.ConditionStatus) corev1.Node {
	return corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "node"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func stubDoctorConfig(t *testing.T) {
	t.Helper()
	findConfigFile = func(string) (string, error) { return "k8seed.yaml", nil }
	loadConfigFile = func(string) (*config.Config, error) {
		cfg := config.Scaffold()
		cfg.ClusterName = "homelab"
		return cfg, nil
	}
	checkAllTools = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{
				{Tool: prerequisites.Tool{Name: "helmfile", Required: true}, Found: true, Version: "v1.0.0"},
				{Tool: prerequisites.Tool{Name: "kubectl", Required: false}, Found: false},
			},
		}
	}
}

func TestDoctor_JSONReport(t *testing.T) {
	saveAndRestoreDoctorFactories(t)
	stubDoctorConfig(t)

	newClusterClient = func(string, string) (k8s.Client, error) {
		return &stubClient{nodes: []corev1.Node{
			readyTestNode(corev1.ConditionTrue),
			readyTestNode(corev1.ConditionFalse),
		}}, nil
	}
	listReleases = func(string, logrus.FieldLogger) ([]release.Status, error) {
		return []release.Status{
			{Name: "cilium", Namespace: "kube-system", Chart: "cilium-1.16.5", Status: "deployed"},
		}, nil
	}

	output := captureOutput(func() {
		require.NoError(t, Doctor(context.Background(), "", true))
	})

	var report DoctorReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.Equal(t, "homelab", report.ClusterName)
	assert.Len(t, report.Tools, 2)
	assert.True(t, report.Cluster.Reachable)
	assert.Equal(t, 2, report.Cluster.NodesTotal)
	assert.Equal(t, 1, report.Cluster.NodesReady)
	require.Len(t, report.Releases, 1)
	assert.Equal(t, "cilium", report.Releases[0].Name)
}

func TestDoctor_UnreachableCluster(t *testing.T) {
	saveAndRestoreDoctorFactories(t)
	stubDoctorConfig(t)

	newClusterClient = func(string, string) (k8s.Client, error) {
		return nil, errors.New("stat kubeconfig: no such file or directory")
	}
	listReleases = func(string, logrus.FieldLogger) ([]release.Status, error) {
		t.Fatal("releases must not be listed when the cluster is unreachable")
		return nil, nil
	}

	output := captureOutput(func() {
		require.NoError(t, Doctor(context.Background(), "", true))
	})

	var report DoctorReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.False(t, report.Cluster.Reachable)
	assert.Contains(t, report.Cluster.Error, "no such file")
	assert.Empty(t, report.Releases)
}

func TestDoctor_NodeListFailure(t *testing.T) {
	saveAndRestoreDoctorFactories(t)
	stubDoctorConfig(t)

	newClusterClient = func(string, string) (k8s.Client, error) {
		return &stubClient{nodesErr: errors.New("connection refused")}, nil
	}

	output := captureOutput(func() {
		require.NoError(t, Doctor(context.Background(), "", true))
	})

	var report DoctorReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.False(t, report.Cluster.Reachable)
	assert.Contains(t, report.Cluster.Error, "connection refused")
}

func TestDoctor_ConfigNotFound(t *testing.T) {
	saveAndRestoreDoctorFactories(t)

	findConfigFile = func(string) (string, error) { return "", errors.New("no config file found") }

	err := Doctor(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestRenderDoctorReport(t *testing.T) {
	report := &DoctorReport{
		ClusterName: "homelab",
		ConfigFile:  "k8seed.yaml",
		Tools: []ToolHealth{
			{Name: "helmfile", Required: true, Found: true, Version: "v1.0.0"},
			{Name: "kubectl", Required: false, Found: false},
		},
		Cluster: ClusterHealth{Reachable: true, NodesTotal: 3, NodesReady: 3},
		Releases: []release.Status{
			{Name: "cilium", Namespace: "kube-system", Chart: "cilium-1.16.5", Status: "deployed"},
		},
	}

	rendered := renderDoctorReport(report)

	assert.Contains(t, rendered, "k8seed doctor: homelab")
	assert.Contains(t, rendered, "helmfile")
	assert.Contains(t, rendered, "missing (optional)")
	assert.Contains(t, rendered, "nodes ready 3/3")
	assert.Contains(t, rendered, "kube-system/cilium")
}

func TestPrintDoctorPlain(t *testing.T) {
	report := &DoctorReport{
		ClusterName: "homelab",
		ConfigFile:  "k8seed.yaml",
		Tools: []ToolHealth{
			{Name: "helmfile", Required: true, Found: true, Version: "v1.0.0"},
		},
		Cluster: ClusterHealth{Reachable: false, Error: "connection refused"},
	}

	output := captureOutput(func() {
		printDoctorPlain(report)
	})

	assert.Contains(t, output, "cluster: homelab")
	assert.Contains(t, output, "tool helmfile (required): found v1.0.0")
	assert.Contains(t, output, "api server: unreachable (connection refused)")
}
