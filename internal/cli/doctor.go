package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tilt-network/tilt/internal/build"
	"github.com/tilt-network/tilt/internal/config"
	"github.com/tilt-network/tilt/internal/credentials"
	"github.com/tilt-network/tilt/internal/manifest"
	"github.com/tilt-network/tilt/internal/toolchain"
)

var (
	checkToolchain bool
	checkSession   bool
	checkManifest  string
)

var errChecksFailed = errors.New("one or more checks failed")

func init() {
	doctorCmd.Flags().BoolVar(&checkToolchain, "check-toolchain", false, "Verify cargo and the wasm target")
	doctorCmd.Flags().BoolVar(&checkSession, "check-session", false, "Verify the stored token and organization")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a Cargo.toml at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the Tilt toolchain and session",
	Long:  `Run diagnostic checks on the Rust toolchain, stored credentials and project manifest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		all := !checkToolchain && !checkSession && checkManifest == ""

		ok := true
		if all || checkToolchain {
			ok = runToolchainCheck(cmd.Context(), out, &toolchain.Exec{Stderr: io.Discard}) && ok
		}
		if all || checkSession {
			ok = runSessionCheck(out, newStore()) && ok
		}
		if all || checkManifest != "" {
			path := checkManifest
			if path == "" {
				path = manifest.FileName
			}
			ok = runManifestCheck(out, path) && ok
		}

		if !ok {
			return errChecksFailed
		}
		return nil
	},
}

func runToolchainCheck(ctx context.Context, w io.Writer, p toolchain.Prober) bool {
	fmt.Fprintln(w, "Toolchain check:")

	v, err := toolchain.CargoVersion(ctx, p)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] cargo: %v\n", err)
		return false
	}
	meets, err := toolchain.CheckMinimum(v, toolchain.MinCargoVersion)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] cargo %s: %v\n", v, err)
		return false
	}
	if !meets {
		fmt.Fprintf(w, "  [FAIL] cargo %s is older than %s\n", v, toolchain.MinCargoVersion)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] cargo %s\n", v)

	has, err := toolchain.HasTarget(ctx, p, build.DefaultTarget)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [MISS] rustup: %v\n", err)
		return false
	case !has:
		fmt.Fprintf(w, "  [MISS] %s target not installed (run: rustup target add %s)\n", build.DefaultTarget, build.DefaultTarget)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s target installed\n", build.DefaultTarget)
	return true
}

// sessionStore is the read side of credentials.Store.
type sessionStore interface {
	Load() (credentials.Credential, error)
	LoadSelectedOrganization() (string, error)
}

func runSessionCheck(w io.Writer, s sessionStore) bool {
	fmt.Fprintln(w, "Session check:")
	fmt.Fprintf(w, "  [INFO] API: %s\n", config.BaseURL())

	ok := true
	if _, err := s.Load(); err != nil {
		fmt.Fprintf(w, "  [MISS] token: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(w, "  [ OK ] token present")
	}

	org, err := s.LoadSelectedOrganization()
	if err != nil {
		fmt.Fprintf(w, "  [MISS] organization: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] organization %s selected\n", org)
	return ok
}

func runManifestCheck(w io.Writer, path string) bool {
	fmt.Fprintf(w, "Manifest check (%s):\n", filepath.Clean(path))

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	if result.Valid {
		fmt.Fprintln(w, "  [ OK ] valid")
		return true
	}
	for _, issue := range result.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(w, "  [FAIL] %s: %s\n", loc, issue.Message)
	}
	return false
}
