package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the program in the current directory to WebAssembly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadProject()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Building %s...\n", meta.Name)
		res, err := newBuilder(cmd).Build(cmd.Context(), meta)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Build succeeded: %s\n", res.ArtifactPath)
		return nil
	},
}
