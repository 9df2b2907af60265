package client

import (
	"fmt"
	"os"
	"path/filepath"
)

const tokenFileName = "token"

// TokenStore persists the session token between runs. It is the durable
// local storage of the client side: one opaque string under a fixed key.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// FileTokenStore keeps the token in a 0600 file under the user config dir.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore places the token under <user-config>/staff-scheduler/.
func NewFileTokenStore() (*FileTokenStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return &FileTokenStore{path: filepath.Join(base, "staff-scheduler", tokenFileName)}, nil
}

// NewFileTokenStoreAt uses an explicit path. Intended for tests.
func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Load returns an empty string, not an error, when no token is stored.
func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
