package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinCargoVersion is the oldest cargo that ships the wasm32-wasip2 target
// as tier 2 and understands edition 2024 manifests.
const MinCargoVersion = "1.85.0"

// ParseVersion extracts the semantic version from a tool's --version line,
// e.g. "cargo 1.86.0 (adcf7e7a6 2025-03-20)" → 1.86.0.
func ParseVersion(line string) (*semver.Version, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("unrecognized version output %q", line)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(fields[1], "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version from %q: %w", line, err)
	}
	return v, nil
}

// CheckMinimum reports whether version satisfies ">= minimum".
func CheckMinimum(version *semver.Version, minimum string) (bool, error) {
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", minimum, err)
	}
	return c.Check(version), nil
}

// Prober is implemented by runners that can capture a tool's stdout.
type Prober interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// CargoVersion runs `cargo --version` and parses the result.
func CargoVersion(ctx context.Context, p Prober) (*semver.Version, error) {
	out, err := p.Output(ctx, Cargo, "--version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

// HasTarget reports whether `rustup target list --installed` includes triple.
func HasTarget(ctx context.Context, p Prober, triple string) (bool, error) {
	out, err := p.Output(ctx, Rustup, "target", "list", "--installed")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == triple {
			return true, nil
		}
	}
	return false, nil
}
