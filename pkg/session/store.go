package session

import "context"

// Store defines the interface for session persistence.
type Store interface {
	// Create stores a new session keyed by its token.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token.
	// Returns ErrSessionNotFound when no live session exists.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting a missing token is not
	// an error.
	Delete(ctx context.Context, token string) error
}
