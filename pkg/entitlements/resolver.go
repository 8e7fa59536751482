package entitlements

import (
	"context"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/plan"
)

// SubscriptionStatus is the raw billing state of a subscription. Beyond
// existence, the engine does not interpret it; it is carried through for
// callers that do.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Resolution is the effective subscription of a user's business.
type Resolution struct {
	BusinessID uuid.UUID
	Tier       plan.Tier
	Status     SubscriptionStatus
}

// Resolver maps a user ID to the owning business and its effective tier.
//
// A user without a business resolves to ErrBusinessNotFound. A business
// without a subscription row resolves to the free tier with an active
// status: unconfigured billing never blocks usage. The two cases are
// deliberately distinct so call sites never re-derive the difference.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (Resolution, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, userID uuid.UUID) (Resolution, error)

func (f ResolverFunc) Resolve(ctx context.Context, userID uuid.UUID) (Resolution, error) {
	return f(ctx, userID)
}
