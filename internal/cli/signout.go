package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(signoutCmd)
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Remove the stored token and organization selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Clear(); err != nil {
			return fmt.Errorf("signing out: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}
