package types

// ------------------------------
// Request Types
// ------------------------------

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSessionRequest opens a chat session over completed documents.
type CreateSessionRequest struct {
	UserID      string   `json:"userId"`
	DocumentIDs []string `json:"documentIds"`
	Title       string   `json:"title,omitempty"`
}

// ChatMessageRequest sends one user message to a session.
type ChatMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// CreateQuizRequest generates a quiz from either a completed document or
// raw text. Exactly one of DocumentID/DocumentText should be set.
type CreateQuizRequest struct {
	Title        string `json:"title"`
	UserID       int64  `json:"userId"`
	DocumentID   string `json:"documentId,omitempty"`
	DocumentText string `json:"documentText,omitempty"`
}

// SubmitQuizRequest carries the chosen option per question.
type SubmitQuizRequest struct {
	UserID  int64            `json:"userId"`
	Answers map[int64]string `json:"answers"`
}
