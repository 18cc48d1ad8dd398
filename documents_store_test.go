package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	client "github.com/studyforge/studyforge-client"
)

func docJSON(id, status string, extra map[string]any) []byte {
	body := map[string]any{
		"documentId":       id,
		"userId":           "42",
		"fileName":         "notes.pdf",
		"fileType":         "application/pdf",
		"processingStatus": status,
	}
	for k, v := range extra {
		body[k] = v
	}
	raw, _ := json.Marshal(body)
	return raw
}

func TestUpload_PollsUntilCompleted(t *testing.T) {
	t.Parallel()
	var statusCalls int32
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
		}
		_, _ = w.Write(docJSON("d1", "PENDING", nil))
	})
	mux.HandleFunc("/api/documents/d1/status", func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&statusCalls, 1) {
		case 1, 2:
			_, _ = w.Write(docJSON("d1", "PROCESSING", nil))
		default:
			_, _ = w.Write(docJSON("d1", "COMPLETED", map[string]any{"extractedText": "Hello"}))
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)

	doc, err := c.Documents().Upload(context.Background(), "notes.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.ProcessingStatus != client.StatusPending {
		t.Fatalf("fresh upload should be pending, got %q", doc.ProcessingStatus)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Documents().AwaitProcessing(ctx, "d1"); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}

	docs := c.Documents().Documents()
	if len(docs) != 1 {
		t.Fatalf("poll must update the entry in place, got %d entries", len(docs))
	}
	if docs[0].ProcessingStatus != client.StatusCompleted {
		t.Fatalf("status %q, want completed", docs[0].ProcessingStatus)
	}
	if docs[0].ExtractedText != "Hello" {
		t.Fatalf("extracted text %q not carried over", docs[0].ExtractedText)
	}
	if c.Documents().Err() != nil {
		t.Fatalf("unexpected store error: %v", c.Documents().Err())
	}

	// A terminal status ends the loop; no further requests fire.
	settled := atomic.LoadInt32(&statusCalls)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&statusCalls); got != settled {
		t.Fatalf("poll kept running after completion: %d -> %d", settled, got)
	}
}

func TestUpload_PollSwallowsTransientFailure(t *testing.T) {
	t.Parallel()
	var statusCalls int32
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "PENDING", nil))
	})
	mux.HandleFunc("/api/documents/d1/status", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&statusCalls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(docJSON("d1", "COMPLETED", map[string]any{"extractedText": "ok"}))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)
	if _, err := c.Documents().Upload(context.Background(), "notes.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Documents().AwaitProcessing(ctx, "d1"); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	doc, ok := c.Documents().Get("d1")
	if !ok || doc.ProcessingStatus != client.StatusCompleted {
		t.Fatalf("transient failure should not end the loop: %+v %v", doc, ok)
	}
	if c.Documents().Err() != nil {
		t.Fatalf("transient poll failure must not surface: %v", c.Documents().Err())
	}
}

func TestUpload_PollBoundExhausted(t *testing.T) {
	t.Parallel()
	var statusCalls int32
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "PENDING", nil))
	})
	mux.HandleFunc("/api/documents/d1/status", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&statusCalls, 1)
		_, _ = w.Write(docJSON("d1", "PROCESSING", nil))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)
	if _, err := c.Documents().Upload(context.Background(), "notes.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Documents().AwaitProcessing(ctx, "d1"); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	if got := atomic.LoadInt32(&statusCalls); got != 20 {
		t.Fatalf("expected the attempt bound to stop the loop at 20, got %d", got)
	}
	doc, _ := c.Documents().Get("d1")
	if doc.ProcessingStatus != client.StatusProcessing {
		t.Fatalf("last observed status should stand, got %q", doc.ProcessingStatus)
	}
	if c.Documents().Err() != nil {
		t.Fatalf("bound exhaustion is not a store failure: %v", c.Documents().Err())
	}
}

func TestUpload_FailedStatusRecordsError(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "PENDING", nil))
	})
	mux.HandleFunc("/api/documents/d1/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "FAILED", nil))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)
	if _, err := c.Documents().Upload(context.Background(), "notes.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Documents().AwaitProcessing(ctx, "d1"); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	doc, _ := c.Documents().Get("d1")
	if doc.ProcessingStatus != client.StatusFailed {
		t.Fatalf("status %q, want failed", doc.ProcessingStatus)
	}
	if !errors.Is(c.Documents().Err(), client.ErrProcessingFailed) {
		t.Fatalf("expected ErrProcessingFailed, got %v", c.Documents().Err())
	}
}

func TestDelete_StopsTrackingDocument(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "PENDING", nil))
	})
	mux.HandleFunc("/api/documents/d1/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(docJSON("d1", "PROCESSING", nil))
	})
	mux.HandleFunc("/api/documents/d1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)
	if _, err := c.Documents().Upload(context.Background(), "notes.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := c.Documents().Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The poll's next attempt finds no list entry and winds down cleanly.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Documents().AwaitProcessing(ctx, "d1"); err != nil {
		t.Fatalf("AwaitProcessing: %v", err)
	}
	if _, ok := c.Documents().Get("d1"); ok {
		t.Fatal("deleted document reappeared")
	}
	if len(c.Documents().Documents()) != 0 {
		t.Fatal("document list not empty after delete")
	}
}

func TestLoadDocuments_ReplacesList(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	handleLogin(mux)
	mux.HandleFunc("/api/documents/user/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[` + string(docJSON("d1", "COMPLETED", nil)) + `,` + string(docJSON("d2", "PROCESSING", nil)) + `]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	login(t, c)
	if err := c.Documents().LoadDocuments(context.Background()); err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	docs := c.Documents().Documents()
	if len(docs) != 2 || docs[0].ID != "d1" || docs[1].ProcessingStatus != client.StatusProcessing {
		t.Fatalf("unexpected list: %+v", docs)
	}
	if c.Documents().IsUploading() {
		t.Fatal("uploading flag should be idle")
	}
}
