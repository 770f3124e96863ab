package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/credentials"
)

// State is a step of the sign-in flow.
type State int

const (
	Unauthenticated State = iota
	AwaitingOrganizationChoice
	ConfirmingSelection
	Authenticated
	Aborted
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AwaitingOrganizationChoice:
		return "awaiting organization choice"
	case ConfirmingSelection:
		return "confirming selection"
	case Authenticated:
		return "authenticated"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Remote is the part of the API client used during sign-in.
type Remote interface {
	SignIn(ctx context.Context, secretKey string) (*api.SignInResponse, error)
	ListOrganizations(ctx context.Context, token string) ([]api.Organization, error)
	SelectOrganization(ctx context.Context, token, organizationID string) (string, error)
}

// Store persists the outcome of a successful sign-in. Load and RemoveToken
// let a failed confirmation put the previous token back.
type Store interface {
	Load() (credentials.Credential, error)
	Save(credentials.Credential) error
	SaveSelectedOrganization(id string) error
	RemoveToken() error
}

// Session is a single sign-in attempt. It is not safe for concurrent use.
type Session struct {
	remote Remote
	store  Store

	state        State
	token        string
	orgs         []api.Organization
	organization api.Organization
}

// NewSession returns a Session in the Unauthenticated state.
func NewSession(remote Remote, store Store) *Session {
	return &Session{remote: remote, store: store, state: Unauthenticated}
}

// State returns the current step.
func (s *Session) State() State { return s.state }

// Organizations returns the organizations offered for selection, in the
// order the service returned them.
func (s *Session) Organizations() []api.Organization { return s.orgs }

// Organization returns the confirmed organization once Authenticated.
func (s *Session) Organization() api.Organization { return s.organization }

// SubmitSecretKey signs in with key and fetches the organizations the
// resulting token can see.
func (s *Session) SubmitSecretKey(ctx context.Context, key string) error {
	if s.state != Unauthenticated {
		return fmt.Errorf("submitting secret key while %s: %w", s.state, ErrInvalidState)
	}

	resp, err := s.remote.SignIn(ctx, key)
	if err != nil {
		return s.abort(err)
	}

	orgs, err := s.remote.ListOrganizations(ctx, resp.Token)
	if err != nil {
		return s.abort(err)
	}
	if len(orgs) == 0 {
		return s.abort(ErrNoOrganizations)
	}

	s.token = resp.Token
	s.orgs = orgs
	s.state = AwaitingOrganizationChoice
	return nil
}

// Choose selects the organization at the 1-based index. An out-of-range
// index returns *InvalidChoiceError and leaves the session awaiting a
// choice, so the caller may ask again. If the organization cannot be
// persisted after the new token was written, the previous token (or its
// absence) is restored before the session aborts.
func (s *Session) Choose(ctx context.Context, index int) error {
	if s.state != AwaitingOrganizationChoice {
		return fmt.Errorf("choosing organization while %s: %w", s.state, ErrInvalidState)
	}
	if index < 1 || index > len(s.orgs) {
		return &InvalidChoiceError{Index: index, Count: len(s.orgs)}
	}

	org := s.orgs[index-1]
	s.state = ConfirmingSelection

	token, err := s.remote.SelectOrganization(ctx, s.token, org.ID)
	if err != nil {
		return s.abort(err)
	}

	prior, err := s.store.Load()
	hadPrior := err == nil
	if err != nil && !errors.Is(err, credentials.ErrNotAuthenticated) {
		return s.abort(fmt.Errorf("reading previous token: %w", err))
	}

	if err := s.store.Save(credentials.Credential{Token: token}); err != nil {
		return s.abort(fmt.Errorf("saving token: %w", err))
	}
	if err := s.store.SaveSelectedOrganization(org.ID); err != nil {
		err = fmt.Errorf("saving selected organization: %w", err)
		if rerr := s.restoreToken(prior, hadPrior); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restoring previous token: %w", rerr))
		}
		return s.abort(err)
	}

	s.token = token
	s.organization = org
	s.state = Authenticated
	return nil
}

func (s *Session) restoreToken(prior credentials.Credential, hadPrior bool) error {
	if hadPrior {
		return s.store.Save(prior)
	}
	return s.store.RemoveToken()
}

func (s *Session) abort(err error) error {
	s.state = Aborted
	s.token = ""
	return err
}
