package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

// CreateQuiz generates a quiz from a document or raw text.
func CreateQuiz(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateQuizRequest) (*types.Quiz, error) {
	if err := types.ValidatePresent(req.Title, "title"); err != nil {
		return nil, err
	}
	if err := types.ValidateQuizSource(req.DocumentID, req.DocumentText); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/quizzes", baseURL)
	var quiz types.Quiz
	if err := doJSON(ctx, httpClient, http.MethodPost, endpoint, req, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetQuiz retrieves a quiz by ID.
func GetQuiz(ctx context.Context, httpClient *http.Client, baseURL string, quizID int64) (*types.Quiz, error) {
	endpoint := fmt.Sprintf("%s/api/quizzes/%d", baseURL, quizID)
	var quiz types.Quiz
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SubmitQuiz posts answers and returns the server-computed result.
func SubmitQuiz(ctx context.Context, httpClient *http.Client, baseURL string, quizID int64, req types.SubmitQuizRequest) (*types.QuizResult, error) {
	if len(req.Answers) == 0 {
		return nil, &errors.ValidationError{Field: "answers", Reason: "must not be empty"}
	}
	endpoint := fmt.Sprintf("%s/api/quizzes/%d/submit", baseURL, quizID)
	var result types.QuizResult
	if err := doJSON(ctx, httpClient, http.MethodPost, endpoint, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSubmissions retrieves a user's past submissions.
func ListSubmissions(ctx context.Context, httpClient *http.Client, baseURL string, ownerID int64) ([]types.QuizSubmission, error) {
	endpoint := fmt.Sprintf("%s/api/quizzes/submissions/user/%d", baseURL, ownerID)
	var subs []types.QuizSubmission
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
