package client

import (
	"context"
	"sync"

	"github.com/studyforge/studyforge-client/internal/api"
	"github.com/studyforge/studyforge-client/internal/types"
)

// QuizSource names what a quiz is generated from: a completed document or
// raw text. Exactly one field should be set.
type QuizSource struct {
	DocumentID   string
	DocumentText string
}

// QuizStore holds the active quiz, the last result, and the submission
// history. Plain request/response: no optimistic updates, scoring always
// reflects the server's computation.
type QuizStore struct {
	c *Client

	mu          sync.Mutex
	quiz        *types.Quiz
	result      *types.QuizResult
	submissions []types.QuizSubmission
	submitting  bool
	err         error
}

func newQuizStore(c *Client) *QuizStore {
	return &QuizStore{c: c}
}

// Create generates a quiz from the given source and makes it active.
// A source with neither a document id nor text fails client-side without a
// network call.
func (s *QuizStore) Create(ctx context.Context, title string, source QuizSource) (*Quiz, error) {
	if err := types.ValidateQuizSource(source.DocumentID, source.DocumentText); err != nil {
		s.setErr(err)
		return nil, err
	}
	owner, err := s.c.numericOwnerID()
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	quiz, err := api.CreateQuiz(ctx, s.c.http, s.c.cfg.QuizURL, types.CreateQuizRequest{
		Title:        title,
		UserID:       owner,
		DocumentID:   source.DocumentID,
		DocumentText: source.DocumentText,
	})
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.quiz = quiz
	s.result = nil
	s.err = nil
	s.mu.Unlock()
	return quiz, nil
}

// Load fetches a quiz by id and makes it active.
func (s *QuizStore) Load(ctx context.Context, quizID int64) (*Quiz, error) {
	quiz, err := api.GetQuiz(ctx, s.c.http, s.c.cfg.QuizURL, quizID)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.quiz = quiz
	s.result = nil
	s.err = nil
	s.mu.Unlock()
	return quiz, nil
}

// Submit posts the answers and stores the authoritative server result.
func (s *QuizStore) Submit(ctx context.Context, quizID int64, answers map[int64]string) (*QuizResult, error) {
	owner, err := s.c.numericOwnerID()
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.submitting = true
	s.err = nil
	s.mu.Unlock()

	result, err := api.SubmitQuiz(ctx, s.c.http, s.c.cfg.QuizURL, quizID, types.SubmitQuizRequest{
		UserID:  owner,
		Answers: answers,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.err = err
		return nil, err
	}
	s.result = result
	return result, nil
}

// LoadSubmissions replaces the submission history with the server's view.
func (s *QuizStore) LoadSubmissions(ctx context.Context) error {
	owner, err := s.c.numericOwnerID()
	if err != nil {
		s.setErr(err)
		return err
	}
	subs, err := api.ListSubmissions(ctx, s.c.http, s.c.cfg.QuizURL, owner)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	s.submissions = subs
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Reset clears the active quiz, last result, and error so a UI can return
// to its creation view.
func (s *QuizStore) Reset() {
	s.mu.Lock()
	s.quiz = nil
	s.result = nil
	s.err = nil
	s.mu.Unlock()
}

// Quiz returns the active quiz, or nil.
func (s *QuizStore) Quiz() *Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		return nil
	}
	q := *s.quiz
	return &q
}

// Result returns the last submission result, or nil.
func (s *QuizStore) Result() *QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Submissions returns a copy of the submission history.
func (s *QuizStore) Submissions() []QuizSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QuizSubmission(nil), s.submissions...)
}

// IsSubmitting reports whether a submission is in flight.
func (s *QuizStore) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Err returns the last failure recorded by this store.
func (s *QuizStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *QuizStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
