// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; editing it and rebuilding is
// enough to rename the binary, its home directory and the remote hosts.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	ProductionURL string `yaml:"production_url"`
	StagingURL    string `yaml:"staging_url"`
	StagingEnv    string `yaml:"staging_env"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "tilt",
			DisplayName:   "Tilt",
			Description:   "Command line application for the Tilt network",
			HomeDir:       ".tilt",
			EnvPrefix:     "TILT",
			GoModule:      "github.com/tilt-network/tilt",
			GitHubRepo:    "tilt-network/tilt-cli",
			ProductionURL: "https://production.tilt.rest",
			StagingURL:    "https://staging.tilt.rest",
			StagingEnv:    "USE_TILT_STAGING",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "tilt").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Tilt").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".tilt").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "TILT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// ProductionURL returns the base URL of the production API.
func ProductionURL() string { load(); return defaults.ProductionURL }

// StagingURL returns the base URL of the staging API.
func StagingURL() string { load(); return defaults.StagingURL }

// StagingEnv returns the name of the environment toggle that selects staging.
func StagingEnv() string { load(); return defaults.StagingEnv }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "TILT_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
