package session

import (
	"os"
	"path/filepath"
	"strings"
)

const tokenFileName = "token"

// TokenFile persists the bearer token across runs. It is the only
// durable client-side state.
type TokenFile struct {
	path string
}

// NewTokenFile stores the token under the user config directory.
func NewTokenFile() *TokenFile {
	var dir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "linguatask")
	} else {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config", "linguatask")
	}
	return &TokenFile{path: filepath.Join(dir, tokenFileName)}
}

// NewTokenFileAt stores the token at an explicit path.
func NewTokenFileAt(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Read returns the stored token. A missing file is not an error; it
// means no session was persisted.
func (t *TokenFile) Read() (string, error) {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Write overwrites the stored token.
func (t *TokenFile) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(t.path, []byte(token+"\n"), 0o600)
}

// Remove deletes the stored token. Removing an absent token is a no-op.
func (t *TokenFile) Remove() error {
	err := os.Remove(t.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
