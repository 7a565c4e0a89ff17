// Package session persists the login session (bearer token, identity,
// role) across invocations. The file plays the part browser local
// storage would: three values, no expiry metadata. An expired token is
// only discovered when the backend rejects it.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Session is the persisted login state. Zero value means logged out.
type Session struct {
	Token    string `yaml:"token,omitempty"`
	Identity string `yaml:"identity,omitempty"`
	Role     string `yaml:"role,omitempty"`
}

// Active reports whether the session carries a token.
func (s Session) Active() bool {
	return s.Token != ""
}

// Store reads and writes the session file. It is the single owner of
// session state; everything else receives a Session value or asks the
// store for the current token.
type Store struct {
	path string

	mu      sync.RWMutex
	current Session
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "helpdesk", "session.yaml"), nil
}

// Load reads the persisted session. A missing file is a logged-out
// session, not an error.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.current = Session{}
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	s.current = sess
	return sess, nil
}

// Save persists all three session fields and makes them current.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	// 0600: the token is a credential.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	s.current = sess
	return nil
}

// Clear removes the persisted session. Logout is purely local; the
// client never calls a revocation endpoint.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Current returns the in-memory session as of the last Load or Save.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer token, or empty when logged out.
// Satisfies the API client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}
