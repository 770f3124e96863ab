package programs

import (
	"context"
	"errors"
	"testing"

	"github.com/tilt-network/tilt/internal/api"
	"github.com/tilt-network/tilt/internal/credentials"
)

type fakeRemote struct {
	calls    int
	token    string
	org      string
	page     int
	pageSize int
	result   *api.Page[[]api.Program]
	err      error
}

func (f *fakeRemote) ListPrograms(ctx context.Context, token, org string, page, pageSize int) (*api.Page[[]api.Program], error) {
	f.calls++
	f.token, f.org, f.page, f.pageSize = token, org, page, pageSize
	return f.result, f.err
}

func signedIn(t *testing.T) *credentials.Store {
	t.Helper()
	s := credentials.New(credentials.Dir(t.TempDir()))
	if err := s.Save(credentials.Credential{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSelectedOrganization("o1"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestList_Defaults(t *testing.T) {
	remote := &fakeRemote{result: &api.Page[[]api.Program]{Data: []api.Program{}}}
	l := &Lister{Credentials: signedIn(t), Remote: remote}

	page, err := l.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if remote.page != 1 || remote.pageSize != 100 {
		t.Errorf("page=%d size=%d, want 1/100", remote.page, remote.pageSize)
	}
	if remote.token != "tok" || remote.org != "o1" {
		t.Errorf("token=%q org=%q", remote.token, remote.org)
	}
	if len(page.Data) != 0 {
		t.Errorf("expected empty page, got %d", len(page.Data))
	}
}

func TestList_ExplicitPage(t *testing.T) {
	remote := &fakeRemote{result: &api.Page[[]api.Program]{}}
	l := &Lister{Credentials: signedIn(t), Remote: remote}
	if _, err := l.List(context.Background(), 3, 25); err != nil {
		t.Fatal(err)
	}
	if remote.page != 3 || remote.pageSize != 25 {
		t.Errorf("page=%d size=%d, want 3/25", remote.page, remote.pageSize)
	}
}

func TestList_Preconditions(t *testing.T) {
	t.Run("not signed in", func(t *testing.T) {
		remote := &fakeRemote{}
		l := &Lister{Credentials: credentials.New(credentials.Dir(t.TempDir())), Remote: remote}
		if _, err := l.List(context.Background(), 1, 100); !errors.Is(err, credentials.ErrNotAuthenticated) {
			t.Errorf("List() error = %v, want ErrNotAuthenticated", err)
		}
		if remote.calls != 0 {
			t.Error("no request should be made without credentials")
		}
	})

	t.Run("no organization", func(t *testing.T) {
		s := credentials.New(credentials.Dir(t.TempDir()))
		if err := s.Save(credentials.Credential{Token: "tok"}); err != nil {
			t.Fatal(err)
		}
		remote := &fakeRemote{}
		l := &Lister{Credentials: s, Remote: remote}
		if _, err := l.List(context.Background(), 1, 100); !errors.Is(err, credentials.ErrNoOrganizationSelected) {
			t.Errorf("List() error = %v, want ErrNoOrganizationSelected", err)
		}
		if remote.calls != 0 {
			t.Error("no request should be made without an organization")
		}
	})
}

func TestList_RemoteError(t *testing.T) {
	rejected := &api.StatusError{Op: "listing programs", Status: 401, Body: "expired"}
	l := &Lister{Credentials: signedIn(t), Remote: &fakeRemote{err: rejected}}
	_, err := l.List(context.Background(), 1, 100)
	var se *api.StatusError
	if !errors.As(err, &se) || se.Status != 401 {
		t.Errorf("List() error = %v, want *api.StatusError 401", err)
	}
}
