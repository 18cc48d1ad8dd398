package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer-token transport wrapper is
// installed, so transport-related options (like debug logging) end up
// underneath the token wrapper. Options must be deterministic and
// side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The bearer-token
// wrapper is still installed on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithPollInterval sets the delay between document status poll attempts.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be > 0")
		}
		c.cfg.PollInterval = d
		return nil
	}
}

// WithPollMaxAttempts bounds how many status polls run before a loop gives
// up on a document that never turns terminal.
func WithPollMaxAttempts(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("poll max attempts must be > 0")
		}
		c.cfg.PollMaxAttempts = n
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is logged when enabled is true. Not for production use: dumps may
// include headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithLogger sets the structured logger used by the stores and the
// document status poller. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithCredentialStore replaces the durable credential store. The default
// persists to CredentialsPath (or $HOME/.studyforge/credentials.json).
func WithCredentialStore(s CredentialStore) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("credential store must not be nil")
		}
		c.creds = s
		return nil
	}
}
