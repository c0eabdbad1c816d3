package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/imamik/k8seed/internal/k8s"
	"github.com/imamik/k8seed/internal/release"
	"github.com/imamik/k8seed/internal/util/prerequisites"
)

// DoctorReport is the full diagnostic picture for one cluster.
type DoctorReport struct {
	ClusterName string           `json:"clusterName"`
	ConfigFile  string           `json:"configFile"`
	Tools       []ToolHealth     `json:"tools"`
	Cluster     ClusterHealth    `json:"cluster"`
	Releases    []release.Status `json:"releases,omitempty"`
}

// ToolHealth reports presence of one external tool.
type ToolHealth struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Version  string `json:"version,omitempty"`
}

// ClusterHealth reports API reachability and node readiness.
type ClusterHealth struct {
	Reachable  bool   `json:"reachable"`
	Error      string `json:"error,omitempty"`
	NodesTotal int    `json:"nodesTotal"`
	NodesReady int    `json:"nodesReady"`
}

// Factory function variables for doctor - can be replaced in tests.
var (
	checkAllTools = prerequisites.CheckAll
	listReleases  = release.ListInstalled
)

// Doctor handles the doctor command: builds a diagnostic report for the
// configured cluster and renders it as JSON, styled terminal output, or
// plain text.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	path, err := findConfigFile(configPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report := &DoctorReport{
		ClusterName: cfg.ClusterName,
		ConfigFile:  path,
	}

	for _, result := range checkAllTools().Results {
		report.Tools = append(report.Tools, ToolHealth{
			Name:     result.Tool.Name,
			Required: result.Tool.Required,
			Found:    result.Found,
			Version:  result.Version,
		})
	}

	report.Cluster = probeCluster(ctx, cfg.Kubeconfig, cfg.FieldManager)

	if report.Cluster.Reachable {
		// Release listing is best effort; an empty cluster has none.
		quiet := logrus.New()
		quiet.SetLevel(logrus.ErrorLevel)
		releases, err := listReleases(cfg.Kubeconfig, quiet)
		if err == nil {
			report.Releases = releases
		}
	}

	if jsonOutput {
		return printDoctorJSON(report)
	}
	if isInteractiveTTY() {
		fmt.Print(renderDoctorReport(report))
		return nil
	}
	printDoctorPlain(report)
	return nil
}

// probeCluster checks API server reachability and summarizes node
// readiness.
func probeCluster(ctx context.Context, kubeconfigPath, fieldManager string) ClusterHealth {
	client, err := newClusterClient(kubeconfigPath, fieldManager)
	if err != nil {
		return ClusterHealth{Error: err.Error()}
	}

	nodes, err := client.Nodes(ctx)
	if err != nil {
		return ClusterHealth{Error: err.Error()}
	}

	return ClusterHealth{
		Reachable:  true,
		NodesTotal: len(nodes),
		NodesReady: k8s.CountReady(nodes),
	}
}

func printDoctorJSON(report *DoctorReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printDoctorPlain(report *DoctorReport) {
	fmt.Printf("cluster: %s (config: %s)\n", report.ClusterName, report.ConfigFile)

	for _, tool := range report.Tools {
		state := "missing"
		if tool.Found {
			state = "found"
		}
		kind := "optional"
		if tool.Required {
			kind = "required"
		}
		fmt.Printf("tool %s (%s): %s %s\n", tool.Name, kind, state, tool.Version)
	}

	if report.Cluster.Reachable {
		fmt.Printf("api server: reachable, nodes ready %d/%d\n",
			report.Cluster.NodesReady, report.Cluster.NodesTotal)
	} else {
		fmt.Printf("api server: unreachable (%s)\n", report.Cluster.Error)
	}

	for _, rel := range report.Releases {
		fmt.Printf("release %s/%s: %s (%s)\n", rel.Namespace, rel.Name, rel.Status, rel.Chart)
	}
}
