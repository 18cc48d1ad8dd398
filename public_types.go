package client

import (
	"github.com/studyforge/studyforge-client/internal/credstore"
	"github.com/studyforge/studyforge-client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.

// Domain entities
type (
	Identity         = types.Identity
	Session          = types.Session
	Message          = types.Message
	Role             = types.Role
	Document         = types.Document
	ProcessingStatus = types.ProcessingStatus
	Quiz             = types.Quiz
	Question         = types.Question
	QuizResult       = types.QuizResult
	QuizSubmission   = types.QuizSubmission
	Feedback         = types.Feedback
)

// Message roles
const (
	RoleUser      = types.RoleUser
	RoleAssistant = types.RoleAssistant
)

// Document processing states
const (
	StatusPending    = types.StatusPending
	StatusProcessing = types.StatusProcessing
	StatusCompleted  = types.StatusCompleted
	StatusFailed     = types.StatusFailed
)

// CredentialStore persists the auth token and identity snapshot across
// restarts. FileCredentialStore and MemoryCredentialStore are the provided
// implementations.
type CredentialStore = credstore.Store

// FileCredentialStore persists credentials to a JSON file.
type FileCredentialStore = credstore.FileStore

// MemoryCredentialStore holds credentials in memory only.
type MemoryCredentialStore = credstore.MemoryStore

// NewFileCredentialStore opens (creating parent directories as needed) a
// file-backed credential store at path.
func NewFileCredentialStore(path string) (*FileCredentialStore, error) {
	return credstore.NewFileStore(path)
}

// NewMemoryCredentialStore returns a non-persisting credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return credstore.NewMemoryStore()
}
