package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge-client/internal/api"
	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

// SessionStore holds the chat-session list, the single active session, and
// its message log. Sends are optimistic: the user message is appended
// locally before the request goes out and reconciled (or rolled back)
// against the server's confirmed exchange.
//
// The store does not serialize sends; the UI is expected to gate its send
// affordance on IsSending. It does protect the log from a send that
// completes after the active session changed: a stale response is dropped
// instead of appended to the wrong log.
type SessionStore struct {
	c *Client

	mu       sync.Mutex
	sessions []types.Session
	active   *types.Session
	messages []types.Message
	sending  bool
	err      error
}

func newSessionStore(c *Client) *SessionStore {
	return &SessionStore{c: c}
}

// LoadSessions replaces the session list with the server's view. On
// failure the prior list is kept intact and the error recorded.
func (s *SessionStore) LoadSessions(ctx context.Context) error {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return err
	}
	list, err := api.ListSessions(ctx, s.c.http, s.c.cfg.ChatURL, owner)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	s.sessions = list
	s.err = nil
	s.mu.Unlock()
	return nil
}

// CreateSession opens a session over the given documents and makes it
// active. At least one document id is required; an empty slice fails
// client-side without a network call.
func (s *SessionStore) CreateSession(ctx context.Context, documentIDs []string, title string) (*Session, error) {
	if err := types.ValidateDocumentIDs(documentIDs); err != nil {
		s.setErr(err)
		return nil, err
	}
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	session, err := api.CreateSession(ctx, s.c.http, s.c.cfg.ChatURL, types.CreateSessionRequest{
		UserID:      owner,
		DocumentIDs: documentIDs,
		Title:       title,
	})
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.sessions = append([]types.Session{*session}, s.sessions...)
	s.active = session
	s.messages = append([]types.Message(nil), session.Messages...)
	s.err = nil
	s.mu.Unlock()
	return session, nil
}

// LoadSession fetches a session's message log and makes it active. Nothing
// changes unless the fetch succeeds.
func (s *SessionStore) LoadSession(ctx context.Context, sessionID string) error {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return err
	}
	session, err := api.GetSession(ctx, s.c.http, s.c.cfg.ChatURL, sessionID, owner)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	s.active = session
	s.messages = append([]types.Message(nil), session.Messages...)
	for i := range s.sessions {
		if s.sessions[i].ID == session.ID {
			s.sessions[i] = *session
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	return nil
}

// SendMessage appends an optimistic copy of the user message, issues the
// send, and reconciles the log with the server-confirmed exchange. On
// failure the optimistic entry is removed so the log is exactly what it
// was before the call.
func (s *SessionStore) SendMessage(ctx context.Context, content string) error {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if s.active == nil {
		verr := &errors.ValidationError{Field: "session", Reason: "no active session"}
		s.err = verr
		s.mu.Unlock()
		return verr
	}
	sessionID := s.active.ID
	// The pending id, not value equality, identifies the optimistic entry:
	// two messages can carry identical content.
	pending := types.Message{Role: types.RoleUser, Content: content, PendingID: uuid.NewString()}
	s.messages = append(s.messages, pending)
	s.sending = true
	s.err = nil
	s.mu.Unlock()

	exchange, err := api.SendMessage(ctx, s.c.http, s.c.cfg.ChatURL, owner, types.ChatMessageRequest{
		SessionID: sessionID,
		Message:   content,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	s.removePending(pending.PendingID)

	if err != nil {
		messagesRolledBackTotal.Inc()
		s.err = err
		return err
	}
	if s.active == nil || s.active.ID != exchange.SessionID {
		// The active session changed while the send was in flight; the
		// response belongs to a log we are no longer showing.
		staleResponsesDroppedTotal.Inc()
		s.c.log.Debug().Str("sessionId", exchange.SessionID).Msg("dropped stale send response")
		return nil
	}
	s.messages = append(s.messages, exchange.UserMessage, exchange.AssistantMessage)
	messagesSentTotal.Inc()
	now := time.Now().UTC()
	for i := range s.sessions {
		if s.sessions[i].ID == exchange.SessionID {
			s.sessions[i].UpdatedAt = now
			break
		}
	}
	return nil
}

// DeleteSession removes a session. Deleting the active session also clears
// the active pointer and the message log.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	owner, err := s.c.ownerID()
	if err != nil {
		s.setErr(err)
		return err
	}
	if err := api.DeleteSession(ctx, s.c.http, s.c.cfg.ChatURL, sessionID, owner); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.ID != sessionID {
			kept = append(kept, sess)
		}
	}
	s.sessions = kept
	if s.active != nil && s.active.ID == sessionID {
		s.active = nil
		s.messages = nil
	}
	s.err = nil
	s.mu.Unlock()
	return nil
}

// Sessions returns a copy of the session list.
func (s *SessionStore) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Session(nil), s.sessions...)
}

// Active returns the active session, or nil.
func (s *SessionStore) Active() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	sess := *s.active
	return &sess
}

// Messages returns a copy of the active session's message log, including
// any optimistic entry still awaiting confirmation.
func (s *SessionStore) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// IsSending reports whether a send is in flight. UIs should disable their
// send affordance while true; the store relies on that guard rather than
// serializing sends itself.
func (s *SessionStore) IsSending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Err returns the last failure recorded by this store.
func (s *SessionStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SessionStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// removePending deletes the optimistic entry by its synthetic id. A no-op
// when the log was replaced while the send was in flight.
func (s *SessionStore) removePending(pendingID string) {
	for i := range s.messages {
		if s.messages[i].PendingID == pendingID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}
