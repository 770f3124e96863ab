package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tilt-network/tilt/internal/logger"
	"github.com/tilt-network/tilt/internal/manifest"
	"github.com/tilt-network/tilt/internal/toolchain"
)

// Defaults used when the corresponding Runner field is empty.
const (
	DefaultTargetDir = "target"
	DefaultTarget    = "wasm32-wasip2"
	DefaultProfile   = "release"
)

var (
	// ErrBuildFailed means cargo ran and exited non-zero.
	ErrBuildFailed = errors.New("build failed")

	// ErrToolchainUnavailable means cargo could not be launched.
	ErrToolchainUnavailable = toolchain.ErrUnavailable
)

// FailedError carries the exit code of a failed build.
type FailedError struct {
	ExitCode int
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s: cargo exited with status %d", ErrBuildFailed, e.ExitCode)
}

func (e *FailedError) Unwrap() error { return ErrBuildFailed }

// Result describes a successful build.
type Result struct {
	ArtifactPath string
}

// Runner builds projects with cargo.
type Runner struct {
	Tool      toolchain.Runner
	Dir       string // project directory; artifact paths are relative to it
	TargetDir string
	Target    string
	Profile   string
	Logger    *slog.Logger
}

// Build compiles the project described by meta and returns the path the
// artifact is expected at. It does not check that the file exists.
func (r *Runner) Build(ctx context.Context, meta *manifest.Metadata) (*Result, error) {
	if meta == nil || meta.Name == "" {
		return nil, fmt.Errorf("building: %w", manifest.ErrMissingName)
	}

	args := []string{"build", "--target", r.target()}
	if profile := r.profile(); profile == DefaultProfile {
		args = append(args, "--release")
	} else {
		args = append(args, "--profile", profile)
	}

	r.logger().Debug("running build", slog.String("tool", toolchain.Cargo), slog.String("args", strings.Join(args, " ")))
	status, err := r.Tool.Run(ctx, toolchain.Cargo, args...)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", meta.Name, err)
	}
	if !status.Success() {
		return nil, &FailedError{ExitCode: status.Code}
	}

	path := ArtifactPathForProfile(r.targetDir(), r.target(), r.profile(), meta.Name)
	if r.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}
	return &Result{ArtifactPath: path}, nil
}

// ArtifactPath returns where a release build of the named package leaves
// its component: {targetDir}/{triple}/release/{name}.wasm, with dashes in
// the name replaced by underscores the way cargo names library outputs.
func ArtifactPath(targetDir, triple, name string) string {
	return ArtifactPathForProfile(targetDir, triple, DefaultProfile, name)
}

// ArtifactPathForProfile is ArtifactPath for an arbitrary cargo profile.
func ArtifactPathForProfile(targetDir, triple, profile, name string) string {
	return filepath.Join(targetDir, triple, profileDir(profile), strings.ReplaceAll(name, "-", "_")+".wasm")
}

// profileDir maps a cargo profile to its output directory; "dev" builds
// land in "debug".
func profileDir(profile string) string {
	if profile == "dev" {
		return "debug"
	}
	return profile
}

func (r *Runner) targetDir() string {
	if r.TargetDir == "" {
		return DefaultTargetDir
	}
	return r.TargetDir
}

func (r *Runner) target() string {
	if r.Target == "" {
		return DefaultTarget
	}
	return r.Target
}

func (r *Runner) profile() string {
	if r.Profile == "" {
		return DefaultProfile
	}
	return r.Profile
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logger.Discard()
	}
	return r.Logger
}
