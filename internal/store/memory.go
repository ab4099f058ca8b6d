// Package store holds the in-memory session state shared by the request
// path and the background reaper.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hustlesynth/synth-backend/internal/model/chat"
)

// SessionStore is a concurrency-safe, in-memory map of chat sessions.
// All mutation happens under one read-write mutex, so an append can never
// interleave with a sweep, and a window snapshot taken inside Record
// always reflects that request's own append. The `now` function is
// injectable for deterministic testing.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	now func() time.Time
}

// NewSessionStore creates a ready-to-use empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*chat.Session),
		now:      time.Now,
	}
}

// Create provisions an empty session under a fresh unique id.
func (s *SessionStore) Create() chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.createLocked())
}

// Get retrieves a session snapshot by id.
func (s *SessionStore) Get(id string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return chat.Session{}, false
	}
	return snapshot(sess), true
}

// GetOrCreate returns the session stored under id, or a fresh one when
// the id is empty or unknown. The bool reports whether a session was
// created. A swept id counts as unknown: the store never resurrects it.
func (s *SessionStore) GetOrCreate(id string) (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return snapshot(sess), false
	}
	return snapshot(s.createLocked()), true
}

// Record resolves the session for id (creating one when id is empty or
// unknown), appends msg, and returns the session id together with a copy
// of the full history including msg. Resolution, append, and snapshot
// happen in one critical section so concurrent requests on the same
// session cannot lose an append or observe a torn history.
func (s *SessionStore) Record(id string, msg chat.Message) (string, []chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = s.createLocked()
	}

	sess.Messages = append(sess.Messages, msg)
	history := make([]chat.Message, len(sess.Messages))
	copy(history, sess.Messages)
	return sess.ID, history
}

// Append adds msg to an existing session. It reports false when the
// session is gone (for example swept mid-request), in which case the
// message is dropped rather than resurrecting the session.
func (s *SessionStore) Append(id string, msg chat.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Messages = append(sess.Messages, msg)
	return true
}

// History returns a copy of the session's messages, or nil when the
// session is unknown. An unknown id is not an error.
func (s *SessionStore) History(id string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	history := make([]chat.Message, len(sess.Messages))
	copy(history, sess.Messages)
	return history
}

// Touch updates the session's LastActiveAt to the current time. It is a
// no-op when the session does not exist.
func (s *SessionStore) Touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.LastActiveAt = s.now()
	}
}

// Delete removes the session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep removes every session whose idle time meets or exceeds maxIdle
// and returns the number removed.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActiveAt) >= maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// createLocked mints a session under the held write lock.
func (s *SessionStore) createLocked() *chat.Session {
	now := s.now()
	sess := &chat.Session{
		ID:           uuid.NewString(),
		Messages:     make([]chat.Message, 0, 16),
		CreatedAt:    now,
		LastActiveAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// snapshot copies a session, including its message slice, so callers can
// read it without holding the store lock.
func snapshot(sess *chat.Session) chat.Session {
	out := *sess
	out.Messages = make([]chat.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return out
}
