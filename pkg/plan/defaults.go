package plan

// DefaultPlans returns the shipped CandlePilots plan table.
func DefaultPlans() map[Tier]Plan {
	usd := func(cents int64) Money { return Money{Amount: cents, Currency: "USD"} }

	return map[Tier]Plan{
		TierFree: {
			Tier:        TierFree,
			Name:        "Free",
			Description: "Try CandlePilots with a handful of recipes and orders.",
			Limits: map[Resource]Limit{
				ResourceRecipes:   3,
				ResourceOrders:    10,
				ResourceCustomers: 10,
				ResourceProducts:  5,
			},
			Features: []Feature{},
			Pricing:  Pricing{Monthly: usd(0), Yearly: usd(0)},
		},
		TierStarter: {
			Tier:        TierStarter,
			Name:        "Starter",
			Description: "For makers selling at markets and small shops.",
			Limits: map[Resource]Limit{
				ResourceRecipes:   25,
				ResourceOrders:    100,
				ResourceCustomers: 100,
				ResourceProducts:  50,
			},
			Features: []Feature{FeatureAI},
			Pricing:  Pricing{Monthly: usd(900), Yearly: usd(9000)},
		},
		TierPro: {
			Tier:        TierPro,
			Name:        "Pro",
			Description: "For growing studios with a steady order book.",
			Limits: map[Resource]Limit{
				ResourceRecipes:   Unlimited,
				ResourceOrders:    Unlimited,
				ResourceCustomers: Unlimited,
				ResourceProducts:  500,
			},
			Features: []Feature{
				FeatureAI,
				FeatureAdvancedAnalytics,
				FeatureMultipleUsers,
				FeatureAPIAccess,
				FeatureAutomation,
			},
			Pricing: Pricing{Monthly: usd(2900), Yearly: usd(29000)},
		},
		TierBusiness: {
			Tier:        TierBusiness,
			Name:        "Business",
			Description: "Everything unlimited, white-label, priority support.",
			Limits: map[Resource]Limit{
				ResourceRecipes:   Unlimited,
				ResourceOrders:    Unlimited,
				ResourceCustomers: Unlimited,
				ResourceProducts:  Unlimited,
			},
			Features: []Feature{
				FeatureAI,
				FeatureAdvancedAnalytics,
				FeatureMultipleUsers,
				FeaturePrioritySupport,
				FeatureAPIAccess,
				FeatureAutomation,
				FeatureWhiteLabel,
			},
			Pricing: Pricing{Monthly: usd(7900), Yearly: usd(79000)},
		},
	}
}
