package guard

import (
	"context"

	"github.com/google/uuid"
)

type userIDCtxKey struct{}

// WithUserID stores the authenticated user ID in the context for
// downstream handlers.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext retrieves the authenticated user ID, if present.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID)
	return id, ok
}
