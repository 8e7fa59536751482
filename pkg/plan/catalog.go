package plan

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Source defines how plans are loaded into a catalog.
type Source interface {
	Load(ctx context.Context) (map[Tier]Plan, error)
}

// Catalog is an immutable, validated plan lookup table. It is safe for
// concurrent use without synchronization because the maps are never
// modified after construction.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog loads plans from the source and validates the result.
// After successful construction, LimitsFor and PricingFor are total over
// AllTiers and every plan's limits map is total over AllResources.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validate(plans); err != nil {
		return nil, err
	}

	return &Catalog{plans: clonePlans(plans)}, nil
}

// PlanFor returns the full plan definition for a tier. The returned plan
// owns its limits map and features slice; mutating them cannot corrupt
// the catalog.
func (c *Catalog) PlanFor(tier Tier) (Plan, error) {
	p, ok := c.plans[tier]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return clonePlan(p), nil
}

// LimitsFor returns the resource ceilings for a tier.
func (c *Catalog) LimitsFor(tier Tier) (map[Resource]Limit, error) {
	p, err := c.PlanFor(tier)
	if err != nil {
		return nil, err
	}
	return maps.Clone(p.Limits), nil
}

// PricingFor returns the billing amounts for a tier.
func (c *Catalog) PricingFor(tier Tier) (Pricing, error) {
	p, err := c.PlanFor(tier)
	if err != nil {
		return Pricing{}, err
	}
	return p.Pricing, nil
}

// Plans returns all plans ordered by increasing entitlement.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(AllTiers))
	for _, tier := range AllTiers {
		out = append(out, clonePlan(c.plans[tier]))
	}
	return out
}

func validate(plans map[Tier]Plan) error {
	for _, tier := range AllTiers {
		p, ok := plans[tier]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingTier, tier)
		}

		for _, res := range AllResources {
			limit, ok := p.Limits[res]
			if !ok {
				return fmt.Errorf("%w: tier %q resource %q", ErrMissingResourceLimit, tier, res)
			}
			if !limit.Valid() {
				return fmt.Errorf("%w: tier %q resource %q limit %d", ErrInvalidLimit, tier, res, limit)
			}
		}

		// Yearly billing is a discount, never a markup.
		if p.Pricing.Yearly.Amount > 12*p.Pricing.Monthly.Amount {
			return fmt.Errorf("%w: tier %q", ErrInvalidPricing, tier)
		}
	}
	return nil
}

func clonePlan(p Plan) Plan {
	p.Limits = maps.Clone(p.Limits)
	p.Features = slices.Clone(p.Features)
	return p
}

func clonePlans(plans map[Tier]Plan) map[Tier]Plan {
	out := make(map[Tier]Plan, len(plans))
	for tier, p := range plans {
		out[tier] = clonePlan(p)
	}
	return out
}
