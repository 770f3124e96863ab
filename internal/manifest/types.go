package manifest

// FileName is the project manifest looked up in the project directory.
const FileName = "Cargo.toml"

// CargoManifest is the subset of Cargo.toml the CLI reads.
type CargoManifest struct {
	Package *Package `toml:"package"`
	Lib     *Lib     `toml:"lib,omitempty"`
}

// Package is the [package] table. Version, Edition and Description hold
// either a string or a `{ workspace = true }` table inherited from the
// workspace root; use the accessor methods to read them.
type Package struct {
	Name        string           `toml:"name"`
	Version     any              `toml:"version,omitempty"`
	Edition     any              `toml:"edition,omitempty"`
	Description any              `toml:"description,omitempty"`
	Metadata    *PackageMetadata `toml:"metadata,omitempty"`
}

// VersionString returns the literal version, or "" when absent or inherited.
func (p *Package) VersionString() string { return literal(p.Version) }

// EditionString returns the literal edition, or "" when absent or inherited.
func (p *Package) EditionString() string { return literal(p.Edition) }

// DescriptionString returns the literal description, or "" when absent or
// inherited.
func (p *Package) DescriptionString() string { return literal(p.Description) }

func literal(v any) string {
	s, _ := v.(string)
	return s
}

// PackageMetadata is the [package.metadata] table.
type PackageMetadata struct {
	Tilt *TiltMetadata `toml:"tilt,omitempty"`
}

// TiltMetadata is the [package.metadata.tilt] table written by `tilt new`.
type TiltMetadata struct {
	ProgramID string `toml:"program_id,omitempty"`
}

// Lib is the [lib] table.
type Lib struct {
	CrateType []string `toml:"crate-type,omitempty"`
}

// Metadata is the project metadata consumed by build and deploy.
type Metadata struct {
	Name        string
	Description string
	Version     string
	ProgramID   string
}
