package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const timeout = time.Hour

func newTestStore(start time.Time) (*Store, *time.Time) {
	now := start
	s := NewStore()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestCreateAndGet(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestStore(start)

	s.Create(100, 7, "admin")

	sess, ok := s.Get(100)
	require.True(t, ok)
	require.Equal(t, int64(100), sess.ChatID)
	require.Equal(t, int64(7), sess.UserID)
	require.Equal(t, "admin", sess.Username)
	require.True(t, sess.Authenticated)
	require.Equal(t, start, sess.LoginTime)
}

func TestCreateOverwrites(t *testing.T) {
	s, now := newTestStore(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	s.Create(100, 7, "admin")
	*now = now.Add(30 * time.Minute)
	s.Create(100, 8, "other")

	sess, ok := s.Get(100)
	require.True(t, ok)
	require.Equal(t, int64(8), sess.UserID)
	require.Equal(t, "other", sess.Username)
	require.Equal(t, *now, sess.LoginTime, "login time resets on re-login")
	require.Equal(t, 1, s.Len())
}

func TestIsValidExpiry(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "fresh session", elapsed: 0, want: true},
		{name: "one second before timeout", elapsed: timeout - time.Second, want: true},
		{name: "exactly at timeout", elapsed: timeout, want: true},
		{name: "one second past timeout", elapsed: timeout + time.Second, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, now := newTestStore(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
			s.Create(100, 7, "admin")

			*now = now.Add(tt.elapsed)
			require.Equal(t, tt.want, s.IsValid(100, timeout))
		})
	}
}

func TestIsValidEvictsExpired(t *testing.T) {
	s, now := newTestStore(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.Create(100, 7, "admin")

	*now = now.Add(timeout + time.Minute)
	require.False(t, s.IsValid(100, timeout))

	_, ok := s.Get(100)
	require.False(t, ok, "expired session is gone after the check")
	require.Equal(t, 0, s.Len())
}

func TestIsValidUnknownChat(t *testing.T) {
	s, _ := newTestStore(time.Now())
	require.False(t, s.IsValid(999, timeout))
}

func TestDestroyIdempotent(t *testing.T) {
	s, _ := newTestStore(time.Now())
	s.Create(100, 7, "admin")

	s.Destroy(100)
	require.False(t, s.IsValid(100, timeout))

	s.Destroy(100) // second call must not panic or error
	require.Equal(t, 0, s.Len())
}

func TestStateLifecycle(t *testing.T) {
	s, _ := newTestStore(time.Now())
	s.Create(100, 7, "admin")

	s.SetState(100, "search_calls")
	sess, ok := s.Get(100)
	require.True(t, ok)
	require.Equal(t, "search_calls", sess.State)

	s.ClearState(100)
	sess, _ = s.Get(100)
	require.Empty(t, sess.State)
}

func TestStateNoSession(t *testing.T) {
	s, _ := newTestStore(time.Now())

	// Both are no-ops when the chat has no session.
	s.SetState(999, "search_calls")
	s.ClearState(999)
	require.Equal(t, 0, s.Len())
}

func TestGetReturnsCopy(t *testing.T) {
	s, _ := newTestStore(time.Now())
	s.Create(100, 7, "admin")

	sess, _ := s.Get(100)
	sess.State = "mutated"

	fresh, _ := s.Get(100)
	require.Empty(t, fresh.State, "mutating the copy must not touch the store")
}
