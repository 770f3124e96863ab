// Package cli defines the Cobra command tree for the tilt CLI. Each file in
// this package registers one top-level command (signin, build, deploy, list,
// etc.) with the root command. Command implementations delegate to internal
// packages for the work and only handle flags, output formatting and
// operator interaction.
package cli
