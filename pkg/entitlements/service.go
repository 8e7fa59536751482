package entitlements

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/plan"
)

// Service evaluates resource limits and feature access for a user's
// business. It performs reads only; the check-then-create pattern is an
// advisory soft quota, and two concurrent creations may both pass the
// check (see package doc).
type Service struct {
	// Immutable after construction; safe for concurrent use.
	catalog  *plan.Catalog
	resolver Resolver
	counters CounterRegistry
}

// NewService wires a catalog, resolver, and counter registry together.
// Panics on nil catalog or resolver: both are mandatory collaborators.
func NewService(catalog *plan.Catalog, resolver Resolver, counters CounterRegistry) *Service {
	if catalog == nil {
		panic("entitlements: catalog is required")
	}
	if resolver == nil {
		panic("entitlements: resolver is required")
	}
	if counters == nil {
		counters = NewRegistry()
	}
	return &Service{
		catalog:  catalog,
		resolver: resolver,
		counters: counters,
	}
}

// CanCreate decides whether the user's business may create one more
// resource of the given kind. An unresolvable business yields a denying
// result rather than an error so the client contract stays uniform; only
// infrastructure failures surface as errors.
//
// The call is idempotent: repeated invocations without an intervening
// creation return identical results.
func (s *Service) CanCreate(ctx context.Context, userID uuid.UUID, res plan.Resource) (plan.LimitCheckResult, error) {
	resolution, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			return plan.LimitCheckResult{
				Allowed: false,
				Current: 0,
				Limit:   0,
				Message: "Business not found",
			}, nil
		}
		return plan.LimitCheckResult{}, errors.Join(ErrFailedToResolveSubscription, err)
	}

	p, err := s.catalog.PlanFor(resolution.Tier)
	if err != nil {
		return plan.LimitCheckResult{}, err
	}
	limit, ok := p.LimitFor(res)
	if !ok {
		return plan.LimitCheckResult{}, fmt.Errorf("%w: %q", plan.ErrUnknownResource, res)
	}

	if limit.IsUnlimited() {
		// Count anyway for display parity with the usage dashboard, but a
		// counting failure must not block an unlimited tier.
		var current int64
		if counter, ok := s.counters[res]; ok {
			if n, err := counter(ctx, resolution.BusinessID); err == nil {
				current = n
			}
		}
		return plan.LimitCheckResult{Allowed: true, Current: current, Limit: plan.Unlimited}, nil
	}

	counter, ok := s.counters[res]
	if !ok {
		return plan.LimitCheckResult{}, fmt.Errorf("%w: %q", ErrNoCounterRegistered, res)
	}
	current, err := counter(ctx, resolution.BusinessID)
	if err != nil {
		return plan.LimitCheckResult{}, errors.Join(ErrFailedToCountUsage, err)
	}

	result := plan.LimitCheckResult{
		Allowed: current < int64(limit),
		Current: current,
		Limit:   limit,
	}
	if !result.Allowed {
		result.Message = fmt.Sprintf("You've reached your %s limit (%d). Please upgrade your plan.", res, limit)
	}
	return result, nil
}

// HasFeature reports whether the named capability is enabled for the
// user's tier. Fails closed: an unresolvable business or any read failure
// yields false, never an error.
func (s *Service) HasFeature(ctx context.Context, userID uuid.UUID, feature plan.Feature) bool {
	resolution, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return false
	}

	p, err := s.catalog.PlanFor(resolution.Tier)
	if err != nil {
		return false
	}
	return p.HasFeature(feature)
}

// Usage returns the current usage and limit for one resource kind.
func (s *Service) Usage(ctx context.Context, userID uuid.UUID, res plan.Resource) (plan.UsageInfo, error) {
	resolution, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return plan.UsageInfo{}, errors.Join(ErrFailedToResolveSubscription, err)
	}

	p, err := s.catalog.PlanFor(resolution.Tier)
	if err != nil {
		return plan.UsageInfo{}, err
	}
	limit, ok := p.LimitFor(res)
	if !ok {
		return plan.UsageInfo{}, fmt.Errorf("%w: %q", plan.ErrUnknownResource, res)
	}

	counter, ok := s.counters[res]
	if !ok {
		return plan.UsageInfo{}, fmt.Errorf("%w: %q", ErrNoCounterRegistered, res)
	}
	current, err := counter(ctx, resolution.BusinessID)
	if err != nil {
		return plan.UsageInfo{}, errors.Join(ErrFailedToCountUsage, err)
	}

	return plan.UsageInfo{Current: current, Limit: limit}, nil
}

// AllUsage returns usage for every resource kind in the user's plan.
// Intended for usage dashboards: counter failures leave the entry at zero
// instead of failing the whole aggregate.
func (s *Service) AllUsage(ctx context.Context, userID uuid.UUID) (map[plan.Resource]plan.UsageInfo, error) {
	resolution, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrFailedToResolveSubscription, err)
	}

	p, err := s.catalog.PlanFor(resolution.Tier)
	if err != nil {
		return nil, err
	}

	result := make(map[plan.Resource]plan.UsageInfo, len(p.Limits))
	for res, limit := range p.Limits {
		info := plan.UsageInfo{Limit: limit}
		if counter, ok := s.counters[res]; ok {
			if current, err := counter(ctx, resolution.BusinessID); err == nil {
				info.Current = current
			}
		}
		result[res] = info
	}
	return result, nil
}

// CanDowngrade checks whether the business fits within the target tier's
// ceilings at its current usage. Resources without a registered counter
// cannot be verified and are allowed through.
func (s *Service) CanDowngrade(ctx context.Context, userID uuid.UUID, target plan.Tier) error {
	targetPlan, err := s.catalog.PlanFor(target)
	if err != nil {
		return err
	}

	resolution, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return errors.Join(ErrFailedToResolveSubscription, err)
	}
	currentPlan, err := s.catalog.PlanFor(resolution.Tier)
	if err != nil {
		return err
	}

	for res, targetLimit := range targetPlan.Limits {
		if targetLimit.IsUnlimited() {
			continue
		}

		currentLimit, ok := currentPlan.Limits[res]
		if !ok {
			continue
		}
		if !currentLimit.IsUnlimited() && currentLimit <= targetLimit {
			continue
		}

		counter, ok := s.counters[res]
		if !ok {
			continue
		}
		usage, err := counter(ctx, resolution.BusinessID)
		if err != nil {
			return errors.Join(ErrFailedToCountUsage, err)
		}
		if usage > int64(targetLimit) {
			return fmt.Errorf("%w: %s usage %d exceeds %s limit %d",
				ErrDowngradeBlocked, res, usage, target, targetLimit)
		}
	}

	return nil
}
