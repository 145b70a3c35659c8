// Package auth verifies billing credentials and owns the chat session
// lifecycle. Every failure path comes back as a tagged Result with a
// user-facing message; nothing here panics or leaks raw errors to the chat.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/phoenixpbx/pbxbot/internal/model"
	"github.com/phoenixpbx/pbxbot/internal/session"
	"github.com/phoenixpbx/pbxbot/internal/utils"
)

// Failure taxonomy. NotFound and BadCredentials deliberately share one
// user-facing message so a probe cannot learn which usernames exist.
var (
	ErrNotFound       = errors.New("user not found")
	ErrInactive       = errors.New("account is inactive")
	ErrBadCredentials = errors.New("bad credentials")
)

// UserFinder is the slice of the query gateway the auth service needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// Result is the outcome of a login attempt. Message is safe to show to the
// user; Err carries the taxonomy value (possibly wrapped) for callers that
// need to branch.
type Result struct {
	OK      bool
	Message string
	Err     error
	User    *model.User
}

// Service authenticates users and tracks their chat sessions.
type Service struct {
	users    UserFinder
	sessions *session.Store
	timeout  time.Duration
}

// NewService wires the auth service. The session store is constructed once at
// process start and shared with the routing layer; timeout is the configured
// session lifetime.
func NewService(users UserFinder, sessions *session.Store, timeout time.Duration) *Service {
	return &Service{users: users, sessions: sessions, timeout: timeout}
}

// Login verifies username/password against the billing store and, on success,
// creates a session for chatID and returns the user with the credential
// digest stripped.
func (s *Service) Login(ctx context.Context, chatID int64, username, password string) Result {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{Message: "❌ Invalid username or password", Err: ErrNotFound}
		}
		return Result{
			Message: "❌ Authentication is temporarily unavailable, please try again",
			Err:     fmt.Errorf("user lookup: %w", err),
		}
	}
	if u.Active != 1 {
		return Result{Message: "❌ Account is inactive", Err: ErrInactive}
	}
	if !utils.VerifyPassword(u.Password, password) {
		return Result{Message: "❌ Invalid username or password", Err: ErrBadCredentials}
	}

	s.sessions.Create(chatID, u.ID, u.Username)

	u.Password = "" // never hand the digest back
	name := u.FirstName
	if name == "" {
		name = u.Username
	}
	return Result{OK: true, Message: fmt.Sprintf("✅ Welcome %s!", name), User: &u}
}

// Logout drops the chat session; calling it twice is a no-op the second time.
func (s *Service) Logout(chatID int64) {
	s.sessions.Destroy(chatID)
}

// IsAuthenticated reports whether chatID holds a live session, evicting it
// lazily when the configured timeout has elapsed.
func (s *Service) IsAuthenticated(chatID int64) bool {
	return s.sessions.IsValid(chatID, s.timeout)
}

// Session passes through to the store.
func (s *Service) Session(chatID int64) (session.Session, bool) {
	return s.sessions.Get(chatID)
}

// SetState passes through to the store.
func (s *Service) SetState(chatID int64, state string) {
	s.sessions.SetState(chatID, state)
}

// ClearState passes through to the store.
func (s *Service) ClearState(chatID int64) {
	s.sessions.ClearState(chatID)
}
