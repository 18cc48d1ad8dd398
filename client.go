// Package client is the Go SDK for the StudyForge learning-assistant
// backend. It keeps locally held identity, chat-session, document, and
// quiz state consistent with the remote services under optimistic updates,
// partial failure, and background status polling.
package client

import (
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyforge/studyforge-client/internal/credstore"
	"github.com/studyforge/studyforge-client/internal/poller"
)

// Client wires the per-service HTTP bindings to the four state stores.
// All stores share one http.Client whose transport attaches the bearer
// token held by the identity store.
type Client struct {
	cfg   Config
	http  *http.Client
	log   zerolog.Logger
	creds credstore.Store
	token atomic.Value // string

	identity  *IdentityStore
	sessions  *SessionStore
	documents *DocumentStore
	quizzes   *QuizStore

	polls *poller.Registry

	closedOnce uint32
}

// New constructs a Client for the given service endpoints. Persisted
// credentials, when present and parseable, are restored before New
// returns; a corrupted snapshot is cleared and the client starts
// unauthenticated.
func New(cfg Config, opts ...Option) *Client {
	if cfg.IdentityURL == "" || cfg.DocumentURL == "" || cfg.ChatURL == "" || cfg.QuizURL == "" {
		panic("client: all service URLs must be set")
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.HTTPTimeout},
		log:  zerolog.Nop(),
	}
	c.token.Store("")

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	if c.creds == nil {
		c.creds = defaultCredentialStore(cfg, c.log)
	}

	c.wrapTransportWithBearerToken()

	c.polls = poller.New(poller.Config{
		Interval:    c.cfg.PollInterval,
		MaxAttempts: c.cfg.PollMaxAttempts,
		Logger:      c.log,
	})

	c.identity = newIdentityStore(c)
	c.sessions = newSessionStore(c)
	c.documents = newDocumentStore(c)
	c.quizzes = newQuizStore(c)

	c.identity.restore()

	return c
}

// defaultCredentialStore prefers the configured file path and degrades to
// an in-memory store when the file location is unusable.
func defaultCredentialStore(cfg Config, log zerolog.Logger) credstore.Store {
	path := cfg.CredentialsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("no home directory, credentials will not persist")
			return credstore.NewMemoryStore()
		}
		path = filepath.Join(home, ".studyforge", "credentials.json")
	}
	fs, err := credstore.NewFileStore(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("credential store unavailable, credentials will not persist")
		return credstore.NewMemoryStore()
	}
	return fs
}

// wrapTransportWithBearerToken wraps the HTTP client's transport so every
// request carries the current bearer token when one is held.
func (c *Client) wrapTransportWithBearerToken() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{base: base, token: &c.token}
}

// bearerTransport wraps an http.RoundTripper to attach the Authorization
// header. The token is mutable: login installs it, logout clears it.
type bearerTransport struct {
	base  http.RoundTripper
	token *atomic.Value
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, _ := t.token.Load().(string)
	if tok == "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(cloned)
}

func (c *Client) setToken(tok string)  { c.token.Store(tok) }
func (c *Client) currentToken() string { tok, _ := c.token.Load().(string); return tok }

// Identity returns the identity store.
func (c *Client) Identity() *IdentityStore { return c.identity }

// Sessions returns the chat-session store.
func (c *Client) Sessions() *SessionStore { return c.sessions }

// Documents returns the document store.
func (c *Client) Documents() *DocumentStore { return c.documents }

// Quizzes returns the quiz store.
func (c *Client) Quizzes() *QuizStore { return c.quizzes }

// Close stops all background poll loops. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.polls != nil {
		c.polls.Stop()
	}
	return nil
}
