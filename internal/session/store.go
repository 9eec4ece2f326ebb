// Package session persists the signed-in user's credentials between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/api"
)

// ErrNoSession is returned by Load when no session file exists.
var ErrNoSession = errors.New("no saved session")

const (
	configDirName   = "taskdeck"
	sessionFileName = "session.json"
)

type Store struct {
	path string
}

// NewStore places the session file under the user's config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate the config directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, configDirName, sessionFileName)}, nil
}

// NewStoreAt uses an explicit file path instead of the default location.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(creds *api.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create the session directory: %w", err)
	}

	encoded, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode the session: %w", err)
	}
	if err = os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write the session file: %w", err)
	}
	return nil
}

func (s *Store) Load() (*api.Credentials, error) {
	encoded, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read the session file: %w", err)
	}

	creds := new(api.Credentials)
	if err = json.Unmarshal(encoded, creds); err != nil {
		return nil, fmt.Errorf("failed to decode the session file: %w", err)
	}
	return creds, nil
}

func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove the session file: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session exists whose refresh token
// has not yet expired. An expired access token alone does not end the
// session because it can still be refreshed.
func (s *Store) IsAuthenticated() bool {
	creds, err := s.Load()
	if err != nil {
		return false
	}
	return creds.RefreshToken != "" && time.Now().Before(creds.RefreshTokenExpiresAt)
}
