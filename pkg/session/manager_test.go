package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candlepilots/planguard/pkg/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)
	return session.NewManager(store, session.DefaultConfig())
}

func TestIssueAndAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()

		mgr := newManager(t)
		userID := uuid.New()

		sess, err := mgr.Issue(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, sess.Token)
		assert.Equal(t, userID, sess.UserID)
		assert.True(t, sess.ExpiresAt.After(time.Now()))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sess.Token)

		got, err := mgr.Authenticate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		t.Parallel()

		mgr := newManager(t)
		userID := uuid.New()

		sess, err := mgr.Issue(ctx, userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "cp_session", Value: sess.Token})

		got, err := mgr.Authenticate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		t.Parallel()

		mgr := newManager(t)
		headerUser := uuid.New()
		cookieUser := uuid.New()

		headerSess, err := mgr.Issue(ctx, headerUser)
		require.NoError(t, err)
		cookieSess, err := mgr.Issue(ctx, cookieUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+headerSess.Token)
		req.AddCookie(&http.Cookie{Name: "cp_session", Value: cookieSess.Token})

		got, err := mgr.Authenticate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, headerUser, got)
	})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()

		mgr := newManager(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		got, err := mgr.Authenticate(ctx, req)
		assert.ErrorIs(t, err, session.ErrNoToken)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		mgr := newManager(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")

		_, err := mgr.Authenticate(ctx, req)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)
		mgr := session.NewManager(store, session.Config{TTL: time.Nanosecond})

		sess, err := mgr.Issue(ctx, uuid.New())
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sess.Token)

		_, err = mgr.Authenticate(ctx, req)
		assert.ErrorIs(t, err, session.ErrSessionExpired)
	})
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr := newManager(t)

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	require.NoError(t, mgr.Revoke(ctx, req))

	_, err = mgr.Authenticate(ctx, req)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Revoking with no token is a no-op.
	assert.NoError(t, mgr.Revoke(ctx, httptest.NewRequest(http.MethodPost, "/logout", nil)))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create validates session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		userID := uuid.New()
		require.NoError(t, store.Create(ctx, &session.Session{
			Token:     "tok",
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		first, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		first.UserID = uuid.New()

		second, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, userID, second.UserID)
	})

	t.Run("delete missing token is not an error", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		assert.NoError(t, store.Delete(ctx, "missing"))
	})

	t.Run("cleanup sweeps expired sessions", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(time.Millisecond)
		t.Cleanup(store.Close)

		require.NoError(t, store.Create(ctx, &session.Session{
			Token:     "stale",
			UserID:    uuid.New(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		assert.Eventually(t, func() bool {
			_, err := store.Get(ctx, "stale")
			return err != nil
		}, time.Second, 5*time.Millisecond)
	})
}
