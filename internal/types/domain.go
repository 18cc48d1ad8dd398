package types

import (
	"encoding/json"
	"strings"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Identity is the authenticated user as returned by the identity service.
// The bearer token is held by the credential store, not on the entity.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"username"`
	Email       string `json:"email"`
}

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. PendingID is set only on the
// optimistic local copy of a user message so a later rollback can remove
// exactly that entry even when another message carries identical content.
type Message struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`

	PendingID string `json:"-"`
}

// Session is a chat session over one or more documents.
type Session struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	DocumentIDs []string  `json:"documentIds"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Messages    []Message `json:"messages"`
}

// UnmarshalJSON tolerates the chat service's unstable field casing: some
// deployments emit document_ids instead of documentIds.
func (s *Session) UnmarshalJSON(data []byte) error {
	type alias Session
	aux := struct {
		*alias
		SnakeDocumentIDs []string `json:"document_ids"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(s.DocumentIDs) == 0 && len(aux.SnakeDocumentIDs) > 0 {
		s.DocumentIDs = aux.SnakeDocumentIDs
	}
	return nil
}

// ProcessingStatus is the document pipeline state as observed from the
// server. The client never asserts a status itself.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// UnmarshalJSON normalizes the service's upper-case status values.
func (ps *ProcessingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*ps = ProcessingStatus(strings.ToLower(raw))
	return nil
}

// Terminal reports whether no further transition can occur.
func (ps ProcessingStatus) Terminal() bool {
	return ps == StatusCompleted || ps == StatusFailed
}

// rank orders statuses along the pipeline so poll results can never move a
// document backwards.
func (ps ProcessingStatus) rank() int {
	switch ps {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusCompleted, StatusFailed:
		return 2
	default:
		return -1
	}
}

// Before reports whether ps precedes other in the pipeline.
func (ps ProcessingStatus) Before(other ProcessingStatus) bool {
	return ps.rank() < other.rank()
}

// Document is an uploaded file and its processing state.
type Document struct {
	ID               string           `json:"documentId"`
	OwnerID          string           `json:"userId"`
	FileName         string           `json:"fileName"`
	FileType         string           `json:"fileType"`
	FileSize         int64            `json:"fileSize"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
	UploadedAt       time.Time        `json:"uploadedAt"`
	ProcessedAt      *time.Time       `json:"processedAt,omitempty"`
	ExtractedText    string           `json:"extractedText,omitempty"`
}

// Question is a single quiz question.
type Question struct {
	ID            int64    `json:"id"`
	Text          string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is immutable once generated.
type Quiz struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Feedback explains the grading of one answered question.
type Feedback struct {
	QuestionID    int64  `json:"questionId"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

// QuizResult is the authoritative server-side grading of a submission.
type QuizResult struct {
	QuizID         int64      `json:"quizId"`
	SubmissionID   int64      `json:"submissionId"`
	CorrectAnswers int        `json:"correctAnswers"`
	TotalQuestions int        `json:"totalQuestions"`
	Score          float64    `json:"score"`
	Feedback       []Feedback `json:"feedback"`
}

// QuizSubmission is a past submission as stored by the quiz service.
type QuizSubmission struct {
	ID      int64            `json:"id"`
	Quiz    Quiz             `json:"quiz"`
	OwnerID int64            `json:"userId"`
	Answers map[int64]string `json:"answers"`
	Score   float64          `json:"score"`
}
