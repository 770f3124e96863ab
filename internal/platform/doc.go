// Package platform provides cross-platform filesystem helpers: atomic file
// replacement for small state files and permission management that is a
// no-op on Windows.
package platform
