// Package updater checks GitHub Releases for a newer tilt CLI. It only
// reports; installing the new binary is left to the operator's package
// manager or the release page.
package updater
