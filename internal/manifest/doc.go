// Package manifest reads a program's Cargo.toml and derives the project
// metadata (name, description, version, Tilt program id) used by the build
// and deploy commands. Validate checks the manifest against an embedded
// JSON Schema plus semantic rules the schema cannot express.
package manifest
