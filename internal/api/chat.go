package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/studyforge/studyforge-client/internal/types"
)

// CreateSession opens a chat session over one or more completed documents.
func CreateSession(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateSessionRequest) (*types.Session, error) {
	if err := types.ValidatePresent(req.UserID, "userId"); err != nil {
		return nil, err
	}
	if err := types.ValidateDocumentIDs(req.DocumentIDs); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/chat/sessions", baseURL)
	var session types.Session
	if err := doJSON(ctx, httpClient, http.MethodPost, endpoint, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions retrieves all sessions owned by a user.
func ListSessions(ctx context.Context, httpClient *http.Client, baseURL, ownerID string) ([]types.Session, error) {
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/chat/sessions/user/%s", baseURL, url.PathEscape(ownerID))
	var sessions []types.Session
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession retrieves a single session including its message log.
func GetSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID, ownerID string) (*types.Session, error) {
	if err := types.ValidatePresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/chat/sessions/%s?userId=%s", baseURL, url.PathEscape(sessionID), url.QueryEscape(ownerID))
	var session types.Session
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SendMessage posts one user message and returns the confirmed exchange.
func SendMessage(ctx context.Context, httpClient *http.Client, baseURL, ownerID string, req types.ChatMessageRequest) (*types.ChatMessageResponse, error) {
	if err := types.ValidatePresent(req.SessionID, "sessionId"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(req.Message, "message"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/chat/messages?userId=%s", baseURL, url.QueryEscape(ownerID))
	var exchange types.ChatMessageResponse
	if err := doJSON(ctx, httpClient, http.MethodPost, endpoint, req, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// DeleteSession removes a session and its messages.
func DeleteSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID, ownerID string) error {
	if err := types.ValidatePresent(sessionID, "sessionId"); err != nil {
		return err
	}
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/api/chat/sessions/%s?userId=%s", baseURL, url.PathEscape(sessionID), url.QueryEscape(ownerID))
	return doJSON(ctx, httpClient, http.MethodDelete, endpoint, nil, nil)
}
