package tokenfile

// Package tokenfile persists the session token in a file, the durable
// local-storage analog for desktop and CI use.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Store keeps a single token in a 0600 file. Writes are atomic
// (temp file + rename) so a crash never leaves a torn token behind.
type Store struct {
	path string
}

var _ ports.TokenStore = (*Store)(nil)

// NewStore creates a file-backed token store at path. An empty path resolves
// to <user config dir>/paisawise/session_token.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "paisawise", "session_token")
	}
	return &Store{path: path}, nil
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrNoToken
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ports.ErrNoToken
	}
	return token, nil
}

func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session_token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.WriteString(token); err == nil {
		err = tmp.Chmod(0o600)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Cleanup of a failed write.
		return fmt.Errorf("write token file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Cleanup of a failed rename.
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
