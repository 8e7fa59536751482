package plan

import "errors"

var (
	ErrUnknownTier     = errors.New("unknown plan tier")
	ErrUnknownResource = errors.New("unknown resource kind")
	ErrUnknownFeature  = errors.New("unknown feature flag")

	ErrMissingTier          = errors.New("plan catalog is missing a tier")
	ErrMissingResourceLimit = errors.New("plan is missing a resource limit")
	ErrInvalidLimit         = errors.New("plan resource limit is negative")
	ErrInvalidPricing       = errors.New("plan yearly price exceeds 12x monthly")

	ErrFailedToLoadPlans = errors.New("failed to load plan catalog")
)
