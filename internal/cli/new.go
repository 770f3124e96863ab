package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/branding"
	"github.com/tilt-network/tilt/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new Tilt program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		result, err := scaffold.Create(cmd.Context(), newTool(cmd), dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
		fmt.Fprintf(out, "Project '%s' created successfully!\n", filepath.Base(dir))
		fmt.Fprintf(out, "      cd ./%s\n", dir)
		fmt.Fprintf(out, "      %s test\n", branding.CLIName())
		return nil
	},
}
