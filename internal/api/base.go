// Package api holds the raw HTTP bindings for the four backend services.
// Functions are stateless: they take the caller's http.Client and base URL
// and translate every non-2xx response into a *errors.RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/studyforge/studyforge-client/internal/errors"
)

// statusError drains the body and wraps the response in a RequestError.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &errors.RequestError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// doJSON issues a request with an optional JSON payload and decodes the
// response into out when out is non-nil. Any 2xx counts as success; the
// services are not consistent about 200 vs 201 vs 204.
func doJSON(ctx context.Context, httpClient *http.Client, method, url string, payload, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
