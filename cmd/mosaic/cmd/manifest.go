package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoCodeAlone/mosaic"
)

// NewManifestCommand builds the manifest command group.
func NewManifestCommand() *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Work with module manifests",
	}
	manifestCmd.AddCommand(manifestVetCommand())
	return manifestCmd
}

func manifestVetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vet <dir>",
		Short: "Validate every manifest in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			paths, err := filepath.Glob(filepath.Join(args[0], "*.yaml"))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintf(cobraCmd.OutOrStdout(), "no manifests under %s\n", args[0])
				return nil
			}

			bad := 0
			for _, path := range paths {
				if err := vetManifest(path); err != nil {
					bad++
					fmt.Fprintf(cobraCmd.OutOrStdout(), "%s: %s\n", path, err)
					continue
				}
				fmt.Fprintf(cobraCmd.OutOrStdout(), "%s: ok\n", path)
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d manifests invalid", bad, len(paths))
			}
			return nil
		},
	}
}

func vetManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), ".yaml")
	_, err = mosaic.ParseManifestNamed(data, name)
	return err
}
