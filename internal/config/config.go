package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tilt-network/tilt/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"

	// KeyAPIURL overrides the base URL of the remote service.
	KeyAPIURL = "api_url"
	// KeyHTTPTimeout bounds every request to the remote service.
	KeyHTTPTimeout = "http_timeout"

	// DefaultHTTPTimeout applies when http_timeout is unset or invalid.
	DefaultHTTPTimeout = 10 * time.Second
)

// Root returns the per-user configuration directory (~/.tilt/).
// The TILT_HOME environment variable takes precedence over the home directory.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// FilePath returns the full path to the config file (~/.tilt/config.yaml).
func FilePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, fileName+"."+fileType), nil
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir, err := Root()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout.String())

	path, err := FilePath()
	if err != nil {
		return
	}
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile, err := FilePath()
	if err != nil {
		return err
	}

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// UseStaging reports whether the staging toggle (USE_TILT_STAGING) is set
// to an affirmative value. Only "true" and "1" count.
func UseStaging() bool {
	switch os.Getenv(branding.StagingEnv()) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// BaseURL returns the remote API base URL without a trailing slash.
// An explicit api_url (config file or TILT_API_URL) wins over the staging toggle.
func BaseURL() string {
	if v := strings.TrimSpace(viper.GetString(KeyAPIURL)); v != "" {
		return strings.TrimRight(v, "/")
	}
	if UseStaging() {
		return branding.StagingURL()
	}
	return branding.ProductionURL()
}

// HTTPTimeout returns the per-request timeout for the remote service.
func HTTPTimeout() time.Duration {
	d := viper.GetDuration(KeyHTTPTimeout)
	if d <= 0 {
		return DefaultHTTPTimeout
	}
	return d
}
