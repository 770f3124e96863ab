package credentials

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no token has been stored yet.
	ErrNotAuthenticated = errors.New("not authenticated: run `tilt signin` first")
	// ErrNoOrganizationSelected means no organization id has been stored yet.
	ErrNoOrganizationSelected = errors.New("no organization selected: run `tilt signin` first")
	// ErrEmptyToken is returned by Save for a blank token.
	ErrEmptyToken = errors.New("token is empty")
)

// StorageError reports a local filesystem failure while reading or writing
// credential state.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
