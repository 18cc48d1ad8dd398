package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	client "github.com/studyforge/studyforge-client"
)

// testUser is what the fake identity service hands out.
var testUser = client.Identity{ID: "42", DisplayName: "ada", Email: "ada@example.com"}

const testToken = "tok-test"

// handleLogin registers a stock login endpoint on mux.
func handleLogin(mux *http.ServeMux) {
	handleLoginAs(mux, testUser)
}

func handleLoginAs(mux *http.ServeMux, user client.Identity) {
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"token": testToken, "user": user})
	})
}

// newTestClient points every service URL at srv and disables persistence
// unless the caller supplies its own credential store.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...client.Option) *client.Client {
	t.Helper()
	cfg := client.Config{
		IdentityURL:     srv.URL,
		DocumentURL:     srv.URL,
		ChatURL:         srv.URL,
		QuizURL:         srv.URL,
		HTTPTimeout:     5 * time.Second,
		PollInterval:    5 * time.Millisecond,
		PollMaxAttempts: 20,
	}
	opts = append([]client.Option{client.WithCredentialStore(client.NewMemoryCredentialStore())}, opts...)
	c := client.New(cfg, opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// login authenticates the stock test user.
func login(t *testing.T, c *client.Client) {
	t.Helper()
	if _, err := c.Identity().Login(context.Background(), "ada", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}
