package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

func TestUploadDocument_MultipartFields(t *testing.T) {
	t.Parallel()
	want := types.Document{ID: "d1", OwnerID: "42", FileName: "notes.pdf", ProcessingStatus: types.StatusPending}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/documents/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("userId"); got != "42" {
			t.Errorf("userId field = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file part missing: %v", err)
		}
		defer func() { _ = f.Close() }()
		if hdr.Filename != "notes.pdf" {
			t.Errorf("file name = %q", hdr.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := UploadDocument(context.Background(), srv.Client(), srv.URL, "42", "notes.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil || got == nil || got.ID != "d1" || got.ProcessingStatus != types.StatusPending {
		t.Fatalf("UploadDocument unexpected: got=%+v err=%v", got, err)
	}
}

func TestUploadDocument_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte("file too large"))
	}))
	defer srv.Close()
	_, err := UploadDocument(context.Background(), srv.Client(), srv.URL, "42", "big.pdf", strings.NewReader("x"))
	re, ok := errors.AsRequestError(err)
	if !ok || re.StatusCode != http.StatusRequestEntityTooLarge || re.Body != "file too large" {
		t.Fatalf("expected RequestError with body, got %v", err)
	}
}

func TestListDocuments_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/user/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]types.Document{{ID: "d1"}, {ID: "d2"}})
	}))
	defer srv.Close()
	docs, err := ListDocuments(context.Background(), srv.Client(), srv.URL, "42")
	if err != nil || len(docs) != 2 || docs[1].ID != "d2" {
		t.Fatalf("ListDocuments unexpected: %+v %v", docs, err)
	}
}

func TestGetDocumentStatus_NormalizesCase(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/d1/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"documentId":"d1","processingStatus":"COMPLETED","extractedText":"Hello"}`))
	}))
	defer srv.Close()
	doc, err := GetDocumentStatus(context.Background(), srv.Client(), srv.URL, "d1")
	if err != nil || doc.ProcessingStatus != types.StatusCompleted || doc.ExtractedText != "Hello" {
		t.Fatalf("GetDocumentStatus unexpected: %+v %v", doc, err)
	}
}

func TestGetDocument_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/d1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(types.Document{ID: "d1", ExtractedText: "full text"})
	}))
	defer srv.Close()
	doc, err := GetDocument(context.Background(), srv.Client(), srv.URL, "d1")
	if err != nil || doc.ExtractedText != "full text" {
		t.Fatalf("GetDocument unexpected: %+v %v", doc, err)
	}
}

func TestDeleteDocument_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/documents/d1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	if err := DeleteDocument(context.Background(), srv.Client(), srv.URL, "d1"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
}

func TestDocuments_ValidationNoNetwork(t *testing.T) {
	t.Parallel()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	if _, err := ListDocuments(context.Background(), srv.Client(), srv.URL, ""); !errors.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := GetDocumentStatus(context.Background(), srv.Client(), srv.URL, ""); !errors.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := DeleteDocument(context.Background(), srv.Client(), srv.URL, ""); !errors.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("validation failures must not reach the network; saw %d calls", calls)
	}
}
