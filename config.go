package client

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the per-service base URLs and the knobs for the HTTP
// transport and the document status poller. The zero value is not usable;
// start from DefaultConfig or ConfigFromEnv.
type Config struct {
	IdentityURL string `envconfig:"IDENTITY_URL" default:"http://localhost:8080"`
	DocumentURL string `envconfig:"DOCUMENT_URL" default:"http://localhost:8081"`
	ChatURL     string `envconfig:"CHAT_URL" default:"http://localhost:8082"`
	QuizURL     string `envconfig:"QUIZ_URL" default:"http://localhost:8083"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	PollMaxAttempts int           `envconfig:"POLL_MAX_ATTEMPTS" default:"20"`

	// CredentialsPath is where the auth token and identity snapshot are
	// persisted. Empty means $HOME/.studyforge/credentials.json.
	CredentialsPath string `envconfig:"CREDENTIALS_PATH"`
}

// DefaultConfig returns the local-development defaults.
func DefaultConfig() Config {
	return Config{
		IdentityURL:     "http://localhost:8080",
		DocumentURL:     "http://localhost:8081",
		ChatURL:         "http://localhost:8082",
		QuizURL:         "http://localhost:8083",
		HTTPTimeout:     30 * time.Second,
		PollInterval:    2 * time.Second,
		PollMaxAttempts: 20,
	}
}

// ConfigFromEnv builds a Config from STUDYFORGE_* environment variables,
// falling back to the defaults for anything unset.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("studyforge", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
