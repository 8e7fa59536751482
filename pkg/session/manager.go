package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config holds session manager settings.
type Config struct {
	HeaderName string        `env:"SESSION_HEADER_NAME" envDefault:"Authorization"` // HeaderName is the request header carrying the bearer token.
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"cp_session"`    // CookieName is the fallback cookie carrying the token.
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`                   // TTL is the session lifetime.
}

// DefaultConfig returns the settings used when none are provided.
func DefaultConfig() Config {
	return Config{
		HeaderName: "Authorization",
		CookieName: "cp_session",
		TTL:        24 * time.Hour,
	}
}

// Manager issues and resolves sessions. It is the external session
// collaborator of the gating engine: request handlers ask it only
// "which authenticated user sent this request".
type Manager struct {
	store Store
	cfg   Config
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, cfg Config) *Manager {
	if store == nil {
		store = NewMemoryStore(0)
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultConfig().HeaderName
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultConfig().CookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Manager{store: store, cfg: cfg}
}

// Issue creates a new authenticated session for the user and returns it.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(m.cfg.TTL),
		CreatedAt: now,
	}
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate resolves the request to an authenticated user ID.
// Returns ErrNoToken when the request carries no token, and the store's
// not-found/expired errors otherwise.
func (m *Manager) Authenticate(ctx context.Context, r *http.Request) (uuid.UUID, error) {
	token := m.extractToken(r)
	if token == "" {
		return uuid.Nil, ErrNoToken
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return session.UserID, nil
}

// Revoke deletes the session carried by the request, if any.
func (m *Manager) Revoke(ctx context.Context, r *http.Request) error {
	token := m.extractToken(r)
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// extractToken prefers the bearer header and falls back to the cookie.
func (m *Manager) extractToken(r *http.Request) string {
	if value := r.Header.Get(m.cfg.HeaderName); value != "" {
		return strings.TrimPrefix(value, "Bearer ")
	}
	if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
