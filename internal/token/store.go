package token

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"atsbuddy/internal/errors"
)

// StorageKey is the fixed key the bearer token is stored under.
const StorageKey = "access_token"

// Store persists at most one bearer token in a credentials file. Token
// presence is the sole source of truth for "authenticated"; no expiry
// timestamp is kept, expiry is discovered through a 401 reply.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given credentials file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the credentials file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeTokenStore, "cannot resolve user config directory", err)
	}
	return filepath.Join(dir, "atsbuddy", "credentials.json"), nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored token, or the empty string when none is bound.
// A missing or unreadable credentials file reads as "no token".
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return ""
	}
	return creds[StorageKey]
}

// Set replaces the stored token in a single whole-value write.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.NewIOError(errors.ErrCodeTokenStore, "cannot create credentials directory", err)
		}
	}

	raw, err := json.Marshal(map[string]string{StorageKey: token})
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeTokenStore, "cannot encode credentials", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return errors.NewIOError(errors.ErrCodeTokenStore, "cannot write credentials file", err)
	}
	return nil
}

// Clear destroys the stored token. Clearing an already-empty store is a
// no-op, so concurrent 401 handlers converge without error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.NewIOError(errors.ErrCodeTokenStore, "cannot remove credentials file", err)
	}
	return nil
}
