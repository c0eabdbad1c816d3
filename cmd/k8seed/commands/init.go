package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/k8seed/cmd/k8seed/handlers"
)

// Init returns the command that writes a starter configuration file.
//
// On an interactive terminal an input wizard fills the essential fields;
// otherwise a commented scaffold with defaults is written as-is.
//
// Optional flags:
//
//	--output, -o: Output path (default: k8seed.yaml)
//	--force: Overwrite an existing file
func Init() *cobra.Command {
	var outputPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter k8seed configuration file.

On an interactive terminal a short wizard asks for the essential values.
In scripts and CI the scaffold defaults are written unchanged.

Examples:
  # Create k8seed.yaml in the current directory
  k8seed init

  # Create a named config, overwriting an existing one
  k8seed init -o staging.yaml --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "k8seed.yaml", "Output path for the configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
