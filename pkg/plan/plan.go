package plan

import "slices"

// Plan describes a subscription tier and its resource/feature constraints.
type Plan struct {
	Tier        Tier               `json:"tier" yaml:"tier"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Limits      map[Resource]Limit `json:"limits" yaml:"limits"`
	Features    []Feature          `json:"features" yaml:"features"`
	Pricing     Pricing            `json:"pricing" yaml:"pricing"`
}

// HasFeature reports whether the plan enables the given capability.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// LimitFor returns the ceiling for a resource. The catalog guarantees the
// limits map is total over AllResources, so a missing key means the Plan
// was constructed outside a validated catalog.
func (p Plan) LimitFor(r Resource) (Limit, bool) {
	l, ok := p.Limits[r]
	return l, ok
}

// Comparison contains the differences between two plans. Used to validate
// downgrades and to communicate changes to users.
type Comparison struct {
	NewFeatures     []Feature
	LostFeatures    []Feature
	IncreasedLimits map[Resource]LimitChange
	DecreasedLimits map[Resource]LimitChange
}

// LimitChange records an old-to-new ceiling transition.
type LimitChange struct {
	From Limit `json:"from"`
	To   Limit `json:"to"`
}

// HasLimitDecreases reports whether any resource ceiling shrinks.
func (c *Comparison) HasLimitDecreases() bool {
	return len(c.DecreasedLimits) > 0
}

// Compare returns the differences between current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	cmp := &Comparison{
		NewFeatures:     make([]Feature, 0),
		LostFeatures:    make([]Feature, 0),
		IncreasedLimits: make(map[Resource]LimitChange),
		DecreasedLimits: make(map[Resource]LimitChange),
	}

	for _, f := range target.Features {
		if !slices.Contains(current.Features, f) {
			cmp.NewFeatures = append(cmp.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !slices.Contains(target.Features, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	for res, targetLimit := range target.Limits {
		currentLimit, ok := current.Limits[res]
		if !ok || targetLimit == currentLimit {
			continue
		}

		change := LimitChange{From: currentLimit, To: targetLimit}

		// Leaving unlimited is always a decrease, entering it always an increase.
		switch {
		case currentLimit.IsUnlimited():
			cmp.DecreasedLimits[res] = change
		case targetLimit.IsUnlimited():
			cmp.IncreasedLimits[res] = change
		case targetLimit > currentLimit:
			cmp.IncreasedLimits[res] = change
		default:
			cmp.DecreasedLimits[res] = change
		}
	}

	return cmp
}
