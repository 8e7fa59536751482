package plan

import "fmt"

// Tier identifies a subscription level.
type Tier string

const (
	TierFree     Tier = "free"
	TierStarter  Tier = "starter"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// AllTiers lists every shipped tier. The catalog is validated to be total
// over this set.
var AllTiers = []Tier{TierFree, TierStarter, TierPro, TierBusiness}

// ParseTier validates a raw tier string.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	switch t {
	case TierFree, TierStarter, TierPro, TierBusiness:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Resource represents a countable business resource type.
type Resource string

const (
	ResourceRecipes   Resource = "recipes"
	ResourceOrders    Resource = "orders"
	ResourceCustomers Resource = "customers"
	ResourceProducts  Resource = "products"
)

// AllResources lists every quota-gated resource kind.
var AllResources = []Resource{ResourceRecipes, ResourceOrders, ResourceCustomers, ResourceProducts}

// ParseResource validates a raw resource string.
func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	switch r {
	case ResourceRecipes, ResourceOrders, ResourceCustomers, ResourceProducts:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// Feature is a plan-specific capability that can be enabled per tier.
type Feature string

const (
	FeatureAI                Feature = "ai"
	FeatureAdvancedAnalytics Feature = "advanced_analytics"
	FeatureMultipleUsers     Feature = "multiple_users"
	FeaturePrioritySupport   Feature = "priority_support"
	FeatureAPIAccess         Feature = "api_access"
	FeatureAutomation        Feature = "automation"
	FeatureWhiteLabel        Feature = "white_label"
)

// AllFeatures lists every gated capability.
var AllFeatures = []Feature{
	FeatureAI,
	FeatureAdvancedAnalytics,
	FeatureMultipleUsers,
	FeaturePrioritySupport,
	FeatureAPIAccess,
	FeatureAutomation,
	FeatureWhiteLabel,
}

// ParseFeature validates a raw feature string.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	for _, known := range AllFeatures {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// Limit is an inclusive resource ceiling. The Unlimited sentinel serializes
// as -1 both on the wire and in SQL.
type Limit int64

// Unlimited indicates no ceiling for a resource.
const Unlimited Limit = -1

// IsUnlimited reports whether the limit is the unlimited sentinel.
func (l Limit) IsUnlimited() bool { return l == Unlimited }

// Valid reports whether the limit is either unlimited or non-negative.
func (l Limit) Valid() bool { return l == Unlimited || l >= 0 }

// Money represents a monetary amount in the smallest currency unit.
// $9.00 USD is Amount: 900, Currency: "USD".
type Money struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
}

// Pricing holds the billing amounts for a plan.
type Pricing struct {
	Monthly Money `json:"monthly" yaml:"monthly"`
	Yearly  Money `json:"yearly" yaml:"yearly"`
}

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   Limit `json:"limit"`
}

// LimitCheckResult is the outcome of a resource limit evaluation.
// Allowed is always true when Limit is unlimited; otherwise it holds
// exactly when Current < Limit. Message is set only on denial.
type LimitCheckResult struct {
	Allowed bool   `json:"allowed"`
	Current int64  `json:"current"`
	Limit   Limit  `json:"limit"`
	Message string `json:"message,omitempty"`
}
