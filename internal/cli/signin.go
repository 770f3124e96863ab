package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/auth"
)

// signinAttempts is how many times the organization menu is offered.
const signinAttempts = 2

var signinSecretKey string

func init() {
	signinCmd.Flags().StringVarP(&signinSecretKey, "secret_key", "k", "", "API secret key")
	_ = signinCmd.MarkFlagRequired("secret_key")
	rootCmd.AddCommand(signinCmd)
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with a secret key and choose an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := auth.NewSession(newClient(), newStore())
		ctx := cmd.Context()

		if err := session.SubmitSecretKey(ctx, signinSecretKey); err != nil {
			return fmt.Errorf("signing in: %w", err)
		}
		if err := session.Prompt(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), signinAttempts); err != nil {
			return fmt.Errorf("selecting organization: %w", err)
		}

		org := session.Organization()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in. Organization %q selected.\n", org.DisplayName())
		return nil
	},
}
