package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/studyforge/studyforge-client/internal/types"
)

// UploadDocument posts a multipart upload (file + userId). The returned
// document usually starts out pending or processing; callers poll
// GetDocumentStatus for progress.
func UploadDocument(ctx context.Context, httpClient *http.Client, baseURL, ownerID, fileName string, file io.Reader) (*types.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return nil, err
	}
	if err := types.ValidatePresent(fileName, "fileName"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.WriteField("userId", ownerID); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/documents/upload", baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}
	var doc types.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments retrieves all documents owned by a user.
func ListDocuments(ctx context.Context, httpClient *http.Client, baseURL, ownerID string) ([]types.Document, error) {
	if err := types.ValidatePresent(ownerID, "userId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/documents/user/%s", baseURL, url.PathEscape(ownerID))
	var docs []types.Document
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument retrieves one document including its extracted text.
func GetDocument(ctx context.Context, httpClient *http.Client, baseURL, documentID string) (*types.Document, error) {
	if err := types.ValidatePresent(documentID, "documentId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/documents/%s", baseURL, url.PathEscape(documentID))
	var doc types.Document
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocumentStatus retrieves the current processing state of a document.
func GetDocumentStatus(ctx context.Context, httpClient *http.Client, baseURL, documentID string) (*types.Document, error) {
	if err := types.ValidatePresent(documentID, "documentId"); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/documents/%s/status", baseURL, url.PathEscape(documentID))
	var doc types.Document
	if err := doJSON(ctx, httpClient, http.MethodGet, endpoint, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document.
func DeleteDocument(ctx context.Context, httpClient *http.Client, baseURL, documentID string) error {
	if err := types.ValidatePresent(documentID, "documentId"); err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/api/documents/%s", baseURL, url.PathEscape(documentID))
	return doJSON(ctx, httpClient, http.MethodDelete, endpoint, nil, nil)
}
