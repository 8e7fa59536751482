package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/entitlements"
	"github.com/candlepilots/planguard/pkg/plan"
)

var (
	ErrBusinessNotFound = errors.New("store: business not found")
	ErrDuplicateOwner   = errors.New("store: owner already has a business")
)

// Business is the tenant entity. Each business is owned by exactly one
// user; it is created at signup and never deleted within this subsystem.
type Business struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Subscription is the billing state of a business. Its absence is not an
// error: a business without a row is treated as free/active by the
// resolver.
type Subscription struct {
	BusinessID uuid.UUID
	Tier       plan.Tier
	Status     entitlements.SubscriptionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BusinessWithSubscription is the joined read the resolver needs.
// Subscription is nil when no row exists.
type BusinessWithSubscription struct {
	Business     Business
	Subscription *Subscription
}

// Resource is one row of a quota-gated collection. Only the count matters
// to the engine; Name exists for the CRUD handlers.
type Resource struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Kind       plan.Resource
	Name       string
	CreatedAt  time.Time
}

// Store is the persistence collaborator contract: one joined read for the
// resolver, one count per resource kind, and the writes the CRUD
// handlers use.
type Store interface {
	// FindBusinessByOwner returns the business owned by the user together
	// with its subscription, if any. Returns ErrBusinessNotFound when the
	// user owns no business.
	FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (BusinessWithSubscription, error)

	// CountResources counts rows of one kind owned by the business.
	// An empty collection counts as zero, never an error.
	CountResources(ctx context.Context, businessID uuid.UUID, kind plan.Resource) (int64, error)

	CreateBusiness(ctx context.Context, b *Business) error
	UpsertSubscription(ctx context.Context, sub *Subscription) error
	InsertResource(ctx context.Context, res *Resource) error
}
