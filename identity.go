package client

import (
	"context"
	"strconv"
	"sync"

	"github.com/studyforge/studyforge-client/internal/api"
	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

// IdentityStore holds the authenticated identity and keeps the durable
// credential store in step with it. On construction the client restores a
// persisted identity, so a previously logged-in user comes back
// authenticated without a network call.
type IdentityStore struct {
	c *Client

	mu       sync.Mutex
	identity *types.Identity
	err      error
}

func newIdentityStore(c *Client) *IdentityStore {
	return &IdentityStore{c: c}
}

// restore installs persisted credentials, if any. A corrupted snapshot has
// already been cleared by the credential store; it is logged and the client
// starts unauthenticated.
func (s *IdentityStore) restore() {
	token, id, err := s.c.creds.Load()
	if err != nil {
		s.c.log.Warn().Err(err).Msg("cleared corrupted credential snapshot")
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return
	}
	if token == "" || id == nil {
		return
	}
	s.c.setToken(token)
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

// Login authenticates with the identity service and persists the returned
// token and identity snapshot.
func (s *IdentityStore) Login(ctx context.Context, username, password string) (*Identity, error) {
	auth, err := api.Login(ctx, s.c.http, s.c.cfg.IdentityURL, types.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	return s.install(auth)
}

// Register creates an account and logs it in, persisting the credentials.
func (s *IdentityStore) Register(ctx context.Context, username, email, password string) (*Identity, error) {
	auth, err := api.Register(ctx, s.c.http, s.c.cfg.IdentityURL, types.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	return s.install(auth)
}

func (s *IdentityStore) install(auth *types.AuthResponse) (*Identity, error) {
	id := auth.User
	s.c.setToken(auth.Token)
	if err := s.c.creds.Save(auth.Token, &id); err != nil {
		// The session is still usable in memory; persistence failed.
		s.c.log.Warn().Err(err).Msg("could not persist credentials")
	}
	s.mu.Lock()
	s.identity = &id
	s.err = nil
	s.mu.Unlock()
	return &id, nil
}

// Logout clears the in-memory identity, the transport token, and the
// persisted copies.
func (s *IdentityStore) Logout() error {
	s.c.setToken("")
	s.mu.Lock()
	s.identity = nil
	s.err = nil
	s.mu.Unlock()
	return s.c.creds.Clear()
}

// Current returns the authenticated identity, or nil.
func (s *IdentityStore) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Authenticated reports whether an identity is held.
func (s *IdentityStore) Authenticated() bool { return s.Current() != nil }

// Err returns the last failure recorded by this store.
func (s *IdentityStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *IdentityStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// ownerID is the id every per-user endpoint keys on.
func (c *Client) ownerID() (string, error) {
	id := c.identity.Current()
	if id == nil {
		return "", &errors.ValidationError{Field: "user", Reason: "not authenticated"}
	}
	return id.ID, nil
}

// numericOwnerID adapts the identity id for the quiz service, which keys
// submissions on a numeric user id.
func (c *Client) numericOwnerID() (int64, error) {
	id, err := c.ownerID()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &errors.ValidationError{Field: "userId", Reason: "quiz service requires a numeric user id"}
	}
	return n, nil
}
