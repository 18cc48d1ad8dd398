package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/studyforge/studyforge-client/internal/api"
	"github.com/studyforge/studyforge-client/internal/poller"
	"github.com/studyforge/studyforge-client/internal/types"
)

// ErrProcessingFailed is recorded when a document's pipeline reports the
// failed terminal status.
var ErrProcessingFailed = fmt.Errorf("document processing failed")

// DocumentStore holds the uploaded-document list. Each successful upload
// starts a detached poll loop that tracks the document's processing status
// until it turns terminal or the attempt bound runs out. Status moves only
// forward (pending, processing, then completed or failed); a stale poll
// result can never regress it.
type DocumentStore struct {
	c *Client

	mu        sync.Mutex
	documents []types.Document
	uploading bool
	err       error
}

func newDocumentStore(c *Client) *DocumentStore {
	return &DocumentStore{c: c}
}

// LoadDocuments replaces the document list with the server's view.
func (s *DocumentStore) LoadDocuments(ctx context.Context) error {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return err
	}
	docs, err := api.ListDocuments(ctx, s.c.http, s.c.cfg.DocumentURL, owner)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	s.documents = docs
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Upload posts the file and, on success, starts a background status poll
// for the returned document. Upload returns as soon as the upload itself
// completes; the poll updates store state asynchronously. Use
// AwaitProcessing to join the poll when a caller needs the outcome.
func (s *DocumentStore) Upload(ctx context.Context, fileName string, file io.Reader) (*Document, error) {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.uploading = true
	s.err = nil
	s.mu.Unlock()

	doc, err := api.UploadDocument(ctx, s.c.http, s.c.cfg.DocumentURL, owner, fileName, file)

	s.mu.Lock()
	s.uploading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return nil, err
	}
	s.documents = append([]types.Document{*doc}, s.documents...)
	s.mu.Unlock()

	documentsUploadedTotal.Inc()
	s.startPoll(doc.ID)
	return doc, nil
}

// startPoll launches the bounded status loop for a document id.
func (s *DocumentStore) startPoll(documentID string) {
	err := s.c.polls.Start(documentID, func(ctx context.Context) (bool, error) {
		return s.pollOnce(ctx, documentID)
	})
	switch err {
	case nil:
	case poller.ErrAlreadyPolling:
		// A previous upload of the same id is still being tracked.
		s.c.log.Debug().Str("documentId", documentID).Msg("status poll already running")
	default:
		s.c.log.Warn().Err(err).Str("documentId", documentID).Msg("could not start status poll")
	}
}

// pollOnce is one attempt of the background loop. A returned error is
// swallowed by the poller and only counts against the attempt bound; a
// true result ends the loop.
func (s *DocumentStore) pollOnce(ctx context.Context, documentID string) (bool, error) {
	observed, err := api.GetDocumentStatus(ctx, s.c.http, s.c.cfg.DocumentURL, documentID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(documentID)
	if idx < 0 {
		// Deleted while the poll was in flight; discard the result.
		return true, nil
	}

	switch observed.ProcessingStatus {
	case types.StatusCompleted:
		// Full payload, including the extracted text.
		s.documents[idx] = *observed
		return true, nil
	case types.StatusFailed:
		s.documents[idx].ProcessingStatus = types.StatusFailed
		s.documents[idx].ProcessedAt = observed.ProcessedAt
		s.err = fmt.Errorf("%w: %s", ErrProcessingFailed, s.documents[idx].FileName)
		return true, nil
	default:
		if s.documents[idx].ProcessingStatus.Before(observed.ProcessingStatus) {
			s.documents[idx].ProcessingStatus = observed.ProcessingStatus
		}
		return false, nil
	}
}

// Delete removes a document. An in-flight poll for the id is not
// cancelled; its next result finds no matching list entry and is
// discarded.
func (s *DocumentStore) Delete(ctx context.Context, documentID string) error {
	if err := api.DeleteDocument(ctx, s.c.http, s.c.cfg.DocumentURL, documentID); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	if idx := s.indexOf(documentID); idx >= 0 {
		s.documents = append(s.documents[:idx], s.documents[idx+1:]...)
	}
	s.err = nil
	s.mu.Unlock()
	return nil
}

// AwaitProcessing blocks until the background poll for documentID ends
// (terminal status observed, bound exhausted, or the entry deleted), or
// until ctx does. A document with no live poll returns immediately.
func (s *DocumentStore) AwaitProcessing(ctx context.Context, documentID string) error {
	return s.c.polls.Await(ctx, documentID)
}

// Documents returns a copy of the document list.
func (s *DocumentStore) Documents() []Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Document(nil), s.documents...)
}

// Get returns the current list entry for id, if present.
func (s *DocumentStore) Get(documentID string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(documentID); idx >= 0 {
		doc := s.documents[idx]
		return &doc, true
	}
	return nil, false
}

// IsUploading reports whether an upload is in flight.
func (s *DocumentStore) IsUploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Err returns the last failure recorded by this store. An exhausted poll
// bound is not a failure and never sets it.
func (s *DocumentStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *DocumentStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// indexOf requires s.mu held.
func (s *DocumentStore) indexOf(documentID string) int {
	for i := range s.documents {
		if s.documents[i].ID == documentID {
			return i
		}
	}
	return -1
}
