package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(testCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCargo(cmd, "clean")
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the program's tests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCargo(cmd, "test")
	},
}

// runCargo runs cargo with args and turns a non-zero exit into an error.
func runCargo(cmd *cobra.Command, args ...string) error {
	status, err := newTool(cmd).Run(cmd.Context(), toolchain.Cargo, args...)
	if err != nil {
		return err
	}
	if !status.Success() {
		return fmt.Errorf("cargo %s exited with status %d", args[0], status.Code)
	}
	return nil
}
