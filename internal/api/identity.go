package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/studyforge/studyforge-client/internal/types"
)

// Login authenticates an existing user and returns the token plus identity.
func Login(ctx context.Context, httpClient *http.Client, baseURL string, req types.LoginRequest) (*types.AuthResponse, error) {
	if err := types.ValidatePresent(req.Username, "username"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(req.Password, "password"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/users/login", baseURL)
	var auth types.AuthResponse
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates a new account and returns the token plus identity.
func Register(ctx context.Context, httpClient *http.Client, baseURL string, req types.RegisterRequest) (*types.AuthResponse, error) {
	if err := types.ValidatePresent(req.Username, "username"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(req.Email, "email"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(req.Password, "password"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/users/register", baseURL)
	var auth types.AuthResponse
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}
