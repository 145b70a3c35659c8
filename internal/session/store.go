// Package session keeps the in-memory authenticated-state record per Telegram
// chat. Contents are volatile: the store is built once at process start and
// never persisted. Expiry is evaluated lazily on access — an expired entry
// lingers until the next IsValid touches it, consuming memory but never
// granting access.
package session

import (
	"sync"
	"time"
)

// Session is the per-chat authentication record.
type Session struct {
	ChatID        int64
	UserID        int64
	Username      string
	Authenticated bool
	LoginTime     time.Time
	State         string // free-text interaction state, e.g. a pending prompt
}

// Store maps chat ids to sessions. Handlers for different chats run on
// separate goroutines, so all access goes through the mutex.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	now      func() time.Time // overridable in tests
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session), now: time.Now}
}

// Create inserts or overwrites the session for chatID; last write wins.
func (s *Store) Create(chatID, userID int64, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		ChatID:        chatID,
		UserID:        userID,
		Username:      username,
		Authenticated: true,
		LoginTime:     s.now(),
	}
	s.sessions[chatID] = sess
	return sess
}

// Destroy removes the session if present; destroying twice is a no-op.
func (s *Store) Destroy(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// IsValid reports whether chatID holds an authenticated, unexpired session.
// A session older than timeout is destroyed as a side effect, making it
// indistinguishable from a logged-out one on the next check.
func (s *Store) IsValid(chatID int64, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok || !sess.Authenticated {
		return false
	}
	if s.now().Sub(sess.LoginTime) > timeout {
		delete(s.sessions, chatID)
		return false
	}
	return true
}

// Get returns a copy of the session for chatID, or false if absent.
func (s *Store) Get(chatID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// SetState records a free-text interaction state; no-op if the session is absent.
func (s *Store) SetState(chatID int64, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.State = state
	}
}

// ClearState drops the interaction state; no-op if the session is absent.
func (s *Store) ClearState(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.State = ""
	}
}

// Len reports how many sessions (live or stale) are currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
