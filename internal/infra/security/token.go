package security

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenFile persists the session token on disk. It is deliberately dumb:
// token refresh protocols are outside this client's scope.
type TokenFile struct {
	path string
}

func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

func (t *TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(t.path, []byte(token), 0o600)
}

// Load returns the stored token, or "" when none is stored.
func (t *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (t *TokenFile) Clear() error {
	err := os.Remove(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Token implements the API client's token source. An expired token is
// treated as absent so stale sessions degrade to unauthenticated requests
// instead of guaranteed 401s.
func (t *TokenFile) Token() (string, error) {
	token, err := t.Load()
	if err != nil {
		return "", err
	}
	if token == "" || TokenExpired(token) {
		return "", nil
	}
	return token, nil
}
