// Package credstore persists the auth token and identity snapshot across
// process restarts so a client can come back authenticated without hitting
// the identity service again.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

// Store holds one set of credentials.
type Store interface {
	// Save replaces the persisted token and identity.
	Save(token string, id *types.Identity) error
	// Load returns the persisted credentials. A missing or empty store
	// yields ("", nil, nil). A corrupted store is cleared and reported as a
	// *errors.ParseError so startup degrades to unauthenticated instead of
	// crashing.
	Load() (string, *types.Identity, error)
	// Clear erases the persisted credentials.
	Clear() error
}

type snapshot struct {
	Token string          `json:"token"`
	User  *types.Identity `json:"user"`
}

// FileStore keeps credentials in a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore ensures the parent directory exists and returns the store.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credstore: path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("credstore: ensure dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(token string, id *types.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(snapshot{Token: token, User: id})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStore) Load() (string, *types.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, nil
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Corrupted state is wiped, not fatal.
		_ = os.Remove(s.path)
		return "", nil, &errors.ParseError{Path: s.path, Underlying: err}
	}
	return snap.Token, snap.User, nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore keeps credentials in memory only. Useful in tests and for
// callers that manage persistence themselves.
type MemoryStore struct {
	mu   sync.Mutex
	snap snapshot
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(token string, id *types.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snapshot{Token: token, User: id}
	return nil
}

func (s *MemoryStore) Load() (string, *types.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Token, s.snap.User, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snapshot{}
	return nil
}
