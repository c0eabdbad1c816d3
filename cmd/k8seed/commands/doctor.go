package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8seed/cmd/k8seed/handlers"
)

// Doctor returns the command for diagnosing bootstrap preconditions and
// cluster state.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect k8seed.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose bootstrap preconditions and cluster state",
		Long: `Diagnose whether a bootstrap run can succeed.

Checks the configuration file, required and optional tools, API server
reachability, node readiness, and the Helm releases already installed.

Examples:
  # Diagnose the cluster
  k8seed doctor

  # Get the report in JSON format
  k8seed doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: k8seed.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
