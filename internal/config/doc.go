// Package config manages user-level settings stored at ~/.tilt/config.yaml
// and resolves the effective remote API base URL and HTTP timeout from the
// config file, TILT_* environment variables and the staging toggle.
package config
