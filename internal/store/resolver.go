package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/entitlements"
	"github.com/candlepilots/planguard/pkg/plan"
)

// NewResolver adapts a Store to the entitlements.Resolver contract.
//
// A missing business maps to entitlements.ErrBusinessNotFound. A business
// without a subscription row resolves to the free tier with an active
// status: billing that was never configured must not block usage.
func NewResolver(s Store) entitlements.Resolver {
	return entitlements.ResolverFunc(func(ctx context.Context, userID uuid.UUID) (entitlements.Resolution, error) {
		found, err := s.FindBusinessByOwner(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrBusinessNotFound) {
				return entitlements.Resolution{}, entitlements.ErrBusinessNotFound
			}
			return entitlements.Resolution{}, err
		}

		resolution := entitlements.Resolution{
			BusinessID: found.Business.ID,
			Tier:       plan.TierFree,
			Status:     entitlements.StatusActive,
		}
		if found.Subscription != nil {
			resolution.Tier = found.Subscription.Tier
			resolution.Status = found.Subscription.Status
		}
		return resolution, nil
	})
}

// NewCounters builds a counter registry with one CounterFunc per resource
// kind, each backed by the store's count query.
func NewCounters(s Store) entitlements.CounterRegistry {
	registry := entitlements.NewRegistry()
	for _, kind := range plan.AllResources {
		registry.Register(kind, func(ctx context.Context, businessID uuid.UUID) (int64, error) {
			return s.CountResources(ctx, businessID, kind)
		})
	}
	return registry
}
