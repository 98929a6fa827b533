// Package cmd implements the mosaic command line tool: a development
// server for module manifests, a module scaffolder and a manifest
// validator.
package cmd

import "github.com/spf13/cobra"

// NewRootCommand builds the mosaic root command.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mosaic",
		Short: "Tooling for mosaic micro-frontend applications",
		Long: `mosaic provides development tooling for micro-frontend applications
built on the mosaic composition runtime: serving module manifests during
development, scaffolding new modules and validating manifest files.`,
		SilenceUsage: true,
	}

	root.AddCommand(NewServeCommand())
	root.AddCommand(NewNewCommand())
	root.AddCommand(NewManifestCommand())
	return root
}
