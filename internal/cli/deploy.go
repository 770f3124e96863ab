package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/deploy"
)

func init() {
	rootCmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build the program and upload it to the selected organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loadProject()
		if err != nil {
			return err
		}

		p := &deploy.Pipeline{
			Builder:     newBuilder(cmd),
			Credentials: newStore(),
			Uploader:    newClient(),
			Logger:      slog.Default(),
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deploying %s...\n", meta.Name)
		res, err := p.Deploy(cmd.Context(), meta)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deployed %s (status %d).\n", meta.Name, res.Status)
		return nil
	},
}
