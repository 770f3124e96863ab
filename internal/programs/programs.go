// Package programs lists the programs deployed to the selected organization.
package programs

import (
	"context"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/credentials"
)

// Defaults applied when List is called with zero values.
const (
	DefaultPage     = 1
	DefaultPageSize = 100
)

// Credentials supplies the persisted session.
type Credentials interface {
	Load() (credentials.Credential, error)
	LoadSelectedOrganization() (string, error)
}

// Remote fetches a page of programs.
type Remote interface {
	ListPrograms(ctx context.Context, token, organizationID string, page, pageSize int) (*api.Page[[]api.Program], error)
}

// Lister reads the program catalogue of the signed-in organization.
type Lister struct {
	Credentials Credentials
	Remote      Remote
}

// List returns one page of programs. page and pageSize below 1 fall back
// to DefaultPage and DefaultPageSize.
func (l *Lister) List(ctx context.Context, page, pageSize int) (*api.Page[[]api.Program], error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	cred, err := l.Credentials.Load()
	if err != nil {
		return nil, err
	}
	orgID, err := l.Credentials.LoadSelectedOrganization()
	if err != nil {
		return nil, err
	}
	return l.Remote.ListPrograms(ctx, cred.Token, orgID, page, pageSize)
}
