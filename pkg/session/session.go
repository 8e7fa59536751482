package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated user session. Anonymous sessions are out of
// scope here: the gating engine only needs "who is the caller", so a
// session always carries a user ID.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}
