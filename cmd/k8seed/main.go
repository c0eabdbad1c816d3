// Package main is the entry point for the k8seed CLI.
//
// k8seed seeds a freshly provisioned Kubernetes cluster with the baseline
// it needs before GitOps takes over: CRDs from pinned operator bundles,
// namespaces, shared configuration, SOPS-encrypted secrets, and the
// bootstrap Helm releases. Every apply is idempotent, so re-running after
// a failure is always safe.
//
// Commands: bootstrap, doctor, init, version, completion.
//
// For detailed usage information, run:
//
//	k8seed --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/k8seed/cmd/k8seed/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
