package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/tilt-network/tilt/internal/build"
	"github.com/tilt-network/tilt/internal/manifest"
	"github.com/tilt-network/tilt/internal/toolchain"
)

const templatesDir = "scaffolds/program"

// cargoExitExists is the status cargo new exits with when the destination
// already exists.
const cargoExitExists = 101

// ErrProjectExists means the destination directory is already taken.
var ErrProjectExists = errors.New("project already exists")

// ProjectData holds the template variables.
type ProjectData struct {
	Name      string // crate name, e.g. "my-program"
	Version   string
	Edition   string
	ProgramID string // UUID recorded under [package.metadata.tilt]
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewProjectData returns ProjectData for name with a freshly generated
// program id.
func NewProjectData(name string) *ProjectData {
	return &ProjectData{
		Name:      name,
		Version:   "0.1.0",
		Edition:   "2024",
		ProgramID: uuid.NewString(),
	}
}

// Create runs "cargo new --lib" for dir, renders the templates into it and
// installs the wasm target. A failure to add the target is a warning, not
// an error: the project is usable once the target is installed by hand.
func Create(ctx context.Context, tool toolchain.Runner, dir string) (*Result, error) {
	name := filepath.Base(dir)

	status, err := tool.Run(ctx, toolchain.Cargo, "new", "--lib", dir)
	if err != nil {
		return nil, fmt.Errorf("creating project %s: %w", name, err)
	}
	switch {
	case status.Code == cargoExitExists:
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, dir)
	case !status.Success():
		return nil, fmt.Errorf("creating project %s: cargo new exited with status %d", name, status.Code)
	}

	result, err := Generate(NewProjectData(name), dir)
	if err != nil {
		return nil, err
	}

	status, err = tool.Run(ctx, toolchain.Rustup, "target", "add", build.DefaultTarget)
	if err != nil || !status.Success() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not add the %s target; run: rustup target add %s", build.DefaultTarget, build.DefaultTarget))
	}
	return result, nil
}

// Generate renders every embedded template into outputDir, overwriting
// files cargo created, and validates the resulting Cargo.toml.
func Generate(data *ProjectData, outputDir string) (*Result, error) {
	result := &Result{OutputDir: outputDir}

	err := fs.WalkDir(scaffoldFS, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, templatesDir+"/")
		outName := strings.TrimSuffix(rel, ".tmpl")
		outPath := filepath.Join(outputDir, filepath.FromSlash(outName))

		tmplBytes, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		tmpl, err := template.New(path.Base(p)).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", rel, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", rel, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outName, err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, manifest.FileName)
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}
