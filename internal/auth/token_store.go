package auth

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore keeps the session token in a file so a login survives
// between CLI invocations.
type TokenStore struct {
	path string
}

// NewTokenStore places the token under dir (typically the user config
// dir). An empty dir falls back to the current directory.
func NewTokenStore(dir string) *TokenStore {
	if dir == "" {
		dir = "."
	}
	return &TokenStore{path: filepath.Join(dir, "token")}
}

// Save writes the token, creating the directory if needed.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Get returns the stored token, or "" when no session exists.
func (s *TokenStore) Get() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Delete removes the stored token. Missing files are not an error.
func (s *TokenStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
