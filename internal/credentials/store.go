package credentials

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilt-network/tilt/internal/config"
	"github.com/tilt-network/tilt/internal/platform"
)

// File names under the configuration root.
const (
	TokenFile        = "auth_token"
	OrganizationFile = "organization_id_selected"
)

// Credential is the persisted session token.
type Credential struct {
	Token string
}

// RootFunc resolves the configuration root directory.
type RootFunc func() (string, error)

// DefaultRoot resolves $TILT_HOME or ~/.tilt.
var DefaultRoot RootFunc = config.Root

// Dir returns a RootFunc that always yields dir.
func Dir(dir string) RootFunc {
	return func() (string, error) { return dir, nil }
}

// Store reads and writes credential state under a configuration root.
type Store struct {
	root RootFunc
}

// New returns a Store rooted at root. A nil root means DefaultRoot.
func New(root RootFunc) *Store {
	if root == nil {
		root = DefaultRoot
	}
	return &Store{root: root}
}

// Save writes the token, creating the configuration root if needed.
func (s *Store) Save(c Credential) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return ErrEmptyToken
	}
	return s.write(TokenFile, token)
}

// Load returns the stored token, trimmed.
func (s *Store) Load() (Credential, error) {
	token, err := s.read(TokenFile, ErrNotAuthenticated)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Token: token}, nil
}

// SaveSelectedOrganization writes the selected organization id.
func (s *Store) SaveSelectedOrganization(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("organization id is empty")
	}
	return s.write(OrganizationFile, id)
}

// LoadSelectedOrganization returns the stored organization id, trimmed.
func (s *Store) LoadSelectedOrganization() (string, error) {
	return s.read(OrganizationFile, ErrNoOrganizationSelected)
}

// Clear removes both files. Files that do not exist are ignored.
func (s *Store) Clear() error {
	return s.remove(TokenFile, OrganizationFile)
}

// RemoveToken removes the token file only. A missing file is ignored.
func (s *Store) RemoveToken() error {
	return s.remove(TokenFile)
}

func (s *Store) remove(names ...string) error {
	root, err := s.resolve()
	if err != nil {
		return err
	}
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &StorageError{Op: "removing", Path: path, Err: err}
		}
	}
	return nil
}

func (s *Store) resolve() (string, error) {
	root, err := s.root()
	if err != nil {
		return "", &StorageError{Op: "resolving configuration root", Err: err}
	}
	return root, nil
}

func (s *Store) write(name, value string) error {
	root, err := s.resolve()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, platform.DirPermSecure); err != nil {
		return &StorageError{Op: "creating", Path: root, Err: err}
	}
	path := filepath.Join(root, name)
	if err := platform.WriteFileAtomic(path, []byte(value), platform.FilePermSecure); err != nil {
		return &StorageError{Op: "writing", Path: path, Err: err}
	}
	return nil
}

// read returns the trimmed content of name; a missing or blank file yields missing.
func (s *Store) read(name string, missing error) (string, error) {
	root, err := s.resolve()
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", missing
	}
	if err != nil {
		return "", &StorageError{Op: "reading", Path: path, Err: err}
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", missing
	}
	return value, nil
}
