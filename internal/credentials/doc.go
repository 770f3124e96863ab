// Package credentials persists the session token and the selected
// organization id as two small files under the per-user configuration
// root. The root is injected as a RootFunc so tests never touch $HOME.
package credentials
