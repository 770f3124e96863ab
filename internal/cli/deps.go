package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/branding"
	"github.com/tilt-network/tilt/internal/build"
	"github.com/tilt-network/tilt/internal/config"
	"github.com/tilt-network/tilt/internal/credentials"
	"github.com/tilt-network/tilt/internal/manifest"
	"github.com/tilt-network/tilt/internal/toolchain"
)

// newStore returns the credential store under the configuration root.
func newStore() *credentials.Store {
	return credentials.New(credentials.DefaultRoot)
}

// newClient returns an API client for the configured base URL.
func newClient() *api.Client {
	return api.New(config.BaseURL(),
		api.WithTimeout(config.HTTPTimeout()),
		api.WithLogger(slog.Default()),
		api.WithUserAgent(branding.CLIName()+"/"+buildVersion),
	)
}

// newTool returns a toolchain runner that streams child output through cmd.
func newTool(cmd *cobra.Command) *toolchain.Exec {
	return &toolchain.Exec{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}

// newBuilder returns a build runner for the project in the current directory.
func newBuilder(cmd *cobra.Command) *build.Runner {
	return &build.Runner{Tool: newTool(cmd), Logger: slog.Default()}
}

// loadProject reads Cargo.toml from the current directory.
func loadProject() (*manifest.Metadata, error) {
	return manifest.Load(".")
}
