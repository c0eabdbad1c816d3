package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8seed/cmd/k8seed/handlers"
)

// Bootstrap returns the command that runs the full bootstrap pipeline.
//
// The pipeline phases, in order:
//  1. Node readiness gate (waits for the cluster to settle)
//  2. CRD sync from pinned operator bundles
//  3. Namespace sync
//  4. ConfigMap sync (optional directory)
//  5. Secret sync (SOPS-decrypted in memory)
//  6. Release apply via helmfile
//
// Every resource apply is gated by a server-side dry-run diff, so
// re-running against an already bootstrapped cluster changes nothing.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect k8seed.yaml)
func Bootstrap() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap the cluster baseline",
		Long: `Bootstrap a freshly provisioned Kubernetes cluster.

Applies the baseline a cluster needs before GitOps takes over: CRDs from
pinned operator bundles, namespaces, shared configuration, SOPS-encrypted
secrets, and the bootstrap Helm releases declared in the helmfile.

Every apply is idempotent: resources that already match their manifest are
left untouched, so the command is safe to re-run after a failure.

Examples:
  # Bootstrap using k8seed.yaml in the current directory
  k8seed bootstrap

  # Bootstrap using a specific config file
  k8seed bootstrap -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Bootstrap(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: k8seed.yaml)")

	return cmd
}
