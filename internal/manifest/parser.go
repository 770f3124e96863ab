package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrMissingPackage means Cargo.toml has no [package] table.
	ErrMissingPackage = errors.New("missing [package] section")
	// ErrMissingName means [package] has no name.
	ErrMissingName = errors.New("missing 'name' in [package]")
)

// Parse reads and decodes a Cargo.toml file.
func Parse(path string) (*CargoManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data, path)
}

// Load reads <dir>/Cargo.toml and returns its project metadata.
// The description defaults to the empty string.
func Load(dir string) (*Metadata, error) {
	path := filepath.Join(dir, FileName)
	m, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return m.Metadata(path)
}

// Metadata extracts the project metadata, failing when [package] or its
// name is absent. path is only used for error messages.
func (m *CargoManifest) Metadata(path string) (*Metadata, error) {
	if m.Package == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingPackage)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingName)
	}

	md := &Metadata{
		Name:        m.Package.Name,
		Description: m.Package.DescriptionString(),
		Version:     m.Package.VersionString(),
	}
	if m.Package.Metadata != nil && m.Package.Metadata.Tilt != nil {
		md.ProgramID = m.Package.Metadata.Tilt.ProgramID
	}
	return md, nil
}

func decode(data []byte, path string) (*CargoManifest, error) {
	var m CargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
