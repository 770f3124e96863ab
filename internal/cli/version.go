package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/branding"
	"github.com/tilt-network/tilt/internal/updater"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		if versionCheck {
			return printUpdateStatus(cmd)
		}
		return nil
	},
}

func printUpdateStatus(cmd *cobra.Command) error {
	st, err := updater.New(buildVersion).Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	if !st.UpdateAvailable {
		fmt.Fprintln(cmd.OutOrStdout(), "You are running the latest release.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "A new release is available: %s\n", st.Latest.TagName)
	if st.Latest.HTMLURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", st.Latest.HTMLURL)
	}
	return nil
}
